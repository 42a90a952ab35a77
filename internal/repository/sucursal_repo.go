package repository

import (
	"context"

	"heladopos/internal/model"

	"gorm.io/gorm"
)

type SucursalRepository interface {
	Create(ctx context.Context, s *model.Sucursal) error
	FindByNombre(ctx context.Context, nombre string) (*model.Sucursal, error)
	List(ctx context.Context) ([]model.Sucursal, error)
}

type sucursalRepo struct{ db *gorm.DB }

func NewSucursalRepository(db *gorm.DB) SucursalRepository { return &sucursalRepo{db: db} }

func (r *sucursalRepo) Create(ctx context.Context, s *model.Sucursal) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sucursalRepo) FindByNombre(ctx context.Context, nombre string) (*model.Sucursal, error) {
	var s model.Sucursal
	err := r.db.WithContext(ctx).Where("nombre = ? AND activa = true", nombre).First(&s).Error
	return &s, err
}

func (r *sucursalRepo) List(ctx context.Context) ([]model.Sucursal, error) {
	var sucursales []model.Sucursal
	err := r.db.WithContext(ctx).Where("activa = true").Order("nombre ASC").Find(&sucursales).Error
	return sucursales, err
}
