package repository

import (
	"context"

	"heladopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SaborRepository defines data access for flavors and their per-branch stock.
// The *Tx methods run inside a caller-owned transaction; FindStockTx takes a
// row-level lock so concurrent carts debiting the same flavor serialize
// instead of losing updates.
type SaborRepository interface {
	Create(ctx context.Context, s *model.Sabor) error
	FindByNombre(ctx context.Context, nombre string) (*model.Sabor, error)
	List(ctx context.Context, soloActivos bool) ([]model.Sabor, error)
	Update(ctx context.Context, s *model.Sabor) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListStocks(ctx context.Context, saborID uuid.UUID) ([]model.SaborStock, error)

	FindStockTx(tx *gorm.DB, saborID uuid.UUID, sucursal string) (*model.SaborStock, error)
	CreateStockTx(tx *gorm.DB, st *model.SaborStock) error
	UpdateStockGramosTx(tx *gorm.DB, id uuid.UUID, gramos float64) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type saborRepo struct{ db *gorm.DB }

func NewSaborRepository(db *gorm.DB) SaborRepository { return &saborRepo{db: db} }

func (r *saborRepo) DB() *gorm.DB { return r.db }

func (r *saborRepo) Create(ctx context.Context, s *model.Sabor) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *saborRepo) FindByNombre(ctx context.Context, nombre string) (*model.Sabor, error) {
	var s model.Sabor
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&s).Error
	return &s, err
}

func (r *saborRepo) List(ctx context.Context, soloActivos bool) ([]model.Sabor, error) {
	var sabores []model.Sabor
	q := r.db.WithContext(ctx).Preload("Stocks").Order("nombre ASC")
	if soloActivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&sabores).Error
	return sabores, err
}

func (r *saborRepo) Update(ctx context.Context, s *model.Sabor) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *saborRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Sale history references flavors by name, so removing the row cannot
	// corrupt past ventas. Stock rows go with it.
	if err := r.db.WithContext(ctx).Where("sabor_id = ?", id).Delete(&model.SaborStock{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&model.Sabor{}, id).Error
}

func (r *saborRepo) ListStocks(ctx context.Context, saborID uuid.UUID) ([]model.SaborStock, error) {
	var stocks []model.SaborStock
	err := r.db.WithContext(ctx).Where("sabor_id = ?", saborID).Find(&stocks).Error
	return stocks, err
}

func (r *saborRepo) FindStockTx(tx *gorm.DB, saborID uuid.UUID, sucursal string) (*model.SaborStock, error) {
	var st model.SaborStock
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sabor_id = ? AND sucursal = ?", saborID, sucursal).
		First(&st).Error
	return &st, err
}

func (r *saborRepo) CreateStockTx(tx *gorm.DB, st *model.SaborStock) error {
	return tx.Create(st).Error
}

func (r *saborRepo) UpdateStockGramosTx(tx *gorm.DB, id uuid.UUID, gramos float64) error {
	return tx.Model(&model.SaborStock{}).Where("id = ?", id).Update("gramos", gramos).Error
}
