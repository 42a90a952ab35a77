package repository

import (
	"context"
	"time"

	"heladopos/internal/dto"
	"heladopos/internal/model"

	"gorm.io/gorm"
)

type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	// ListDesde returns a branch's sales with fecha STRICTLY after desde,
	// oldest first. desde == nil means every sale the branch ever made.
	ListDesde(ctx context.Context, sucursal string, desde *time.Time) ([]model.Venta, error)
	ListRango(ctx context.Context, desde, hasta time.Time, sucursal string) ([]model.Venta, error)
	// DB exposes the DB for transaction creation in the service layer.
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.Sucursal != "" {
		q = q.Where("sucursal = ?", filter.Sucursal)
	}
	if filter.Desde != "" {
		q = q.Where("DATE(fecha) >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("DATE(fecha) <= ?", filter.Hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("fecha DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) ListDesde(ctx context.Context, sucursal string, desde *time.Time) ([]model.Venta, error) {
	var ventas []model.Venta
	q := r.db.WithContext(ctx).Preload("Items").Where("sucursal = ?", sucursal)
	if desde != nil {
		q = q.Where("fecha > ?", *desde)
	}
	err := q.Order("fecha ASC").Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) ListRango(ctx context.Context, desde, hasta time.Time, sucursal string) ([]model.Venta, error) {
	var ventas []model.Venta
	q := r.db.WithContext(ctx).Preload("Items").
		Where("fecha >= ? AND fecha <= ?", desde, hasta)
	if sucursal != "" {
		q = q.Where("sucursal = ?", sucursal)
	}
	err := q.Order("fecha ASC").Find(&ventas).Error
	return ventas, err
}
