package repository

import (
	"context"

	"heladopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for the price list and
// combo recipes. Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Producto, error)
	List(ctx context.Context) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	CountByInsumoID(ctx context.Context, insumoID uuid.UUID) (int64, error)

	// Combo recipe
	CreateItem(ctx context.Context, item *model.ComboItem) error
	FindItemByID(ctx context.Context, id uuid.UUID) (*model.ComboItem, error)
	ListItems(ctx context.Context, comboID uuid.UUID) ([]model.ComboItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) FindByNombre(ctx context.Context, nombre string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&p).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *productoRepo) CountByInsumoID(ctx context.Context, insumoID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("insumo_id = ? AND activo = true", insumoID).Count(&count).Error
	return count, err
}

func (r *productoRepo) CreateItem(ctx context.Context, item *model.ComboItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *productoRepo) FindItemByID(ctx context.Context, id uuid.UUID) (*model.ComboItem, error) {
	var item model.ComboItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	return &item, err
}

func (r *productoRepo) ListItems(ctx context.Context, comboID uuid.UUID) ([]model.ComboItem, error) {
	var items []model.ComboItem
	err := r.db.WithContext(ctx).Preload("Item").
		Where("combo_id = ?", comboID).
		Order("posicion ASC").
		Find(&items).Error
	return items, err
}

func (r *productoRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ComboItem{}, id).Error
}
