package repository

import (
	"context"

	"heladopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsumoRepository defines data access for supplies and their per-branch stock.
type InsumoRepository interface {
	Create(ctx context.Context, i *model.Insumo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Insumo, error)
	List(ctx context.Context) ([]model.Insumo, error)
	Delete(ctx context.Context, id uuid.UUID) error

	FindStockTx(tx *gorm.DB, insumoID uuid.UUID, sucursal string) (*model.InsumoStock, error)
	CreateStockTx(tx *gorm.DB, st *model.InsumoStock) error
	UpdateStockUnidadesTx(tx *gorm.DB, id uuid.UUID, unidades int) error

	DB() *gorm.DB
}

type insumoRepo struct{ db *gorm.DB }

func NewInsumoRepository(db *gorm.DB) InsumoRepository { return &insumoRepo{db: db} }

func (r *insumoRepo) DB() *gorm.DB { return r.db }

func (r *insumoRepo) Create(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *insumoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).First(&i, id).Error
	return &i, err
}

func (r *insumoRepo) FindByNombre(ctx context.Context, nombre string) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&i).Error
	return &i, err
}

func (r *insumoRepo) List(ctx context.Context) ([]model.Insumo, error) {
	var insumos []model.Insumo
	err := r.db.WithContext(ctx).Preload("Stocks").Order("nombre ASC").Find(&insumos).Error
	return insumos, err
}

func (r *insumoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("insumo_id = ?", id).Delete(&model.InsumoStock{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&model.Insumo{}, id).Error
}

func (r *insumoRepo) FindStockTx(tx *gorm.DB, insumoID uuid.UUID, sucursal string) (*model.InsumoStock, error) {
	var st model.InsumoStock
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("insumo_id = ? AND sucursal = ?", insumoID, sucursal).
		First(&st).Error
	return &st, err
}

func (r *insumoRepo) CreateStockTx(tx *gorm.DB, st *model.InsumoStock) error {
	return tx.Create(st).Error
}

func (r *insumoRepo) UpdateStockUnidadesTx(tx *gorm.DB, id uuid.UUID, unidades int) error {
	return tx.Model(&model.InsumoStock{}).Where("id = ?", id).Update("unidades", unidades).Error
}
