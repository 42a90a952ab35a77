package repository

import (
	"context"

	"heladopos/internal/model"

	"gorm.io/gorm"
)

type CierreRepository interface {
	Create(ctx context.Context, c *model.Cierre) error
	// FindUltimo returns the most recent cierre of a branch;
	// gorm.ErrRecordNotFound when the branch has never closed.
	FindUltimo(ctx context.Context, sucursal string) (*model.Cierre, error)
	List(ctx context.Context, sucursal string) ([]model.Cierre, error)
}

type cierreRepo struct{ db *gorm.DB }

func NewCierreRepository(db *gorm.DB) CierreRepository { return &cierreRepo{db: db} }

func (r *cierreRepo) Create(ctx context.Context, c *model.Cierre) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cierreRepo) FindUltimo(ctx context.Context, sucursal string) (*model.Cierre, error) {
	var c model.Cierre
	err := r.db.WithContext(ctx).
		Where("sucursal = ?", sucursal).
		Order("fecha DESC").
		First(&c).Error
	return &c, err
}

func (r *cierreRepo) List(ctx context.Context, sucursal string) ([]model.Cierre, error) {
	var cierres []model.Cierre
	q := r.db.WithContext(ctx).Order("fecha DESC")
	if sucursal != "" {
		q = q.Where("sucursal = ?", sucursal)
	}
	err := q.Find(&cierres).Error
	return cierres, err
}
