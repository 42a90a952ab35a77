package repository

import (
	"context"

	"heladopos/internal/model"

	"gorm.io/gorm"
)

type MovimientoStockRepository interface {
	// CreateTx runs inside the transaction that mutates the stock itself,
	// so the audit row and the change commit or roll back together.
	CreateTx(tx *gorm.DB, m *model.MovimientoStock) error
	List(ctx context.Context, sucursal string, limit int) ([]model.MovimientoStock, error)
}

type movimientoStockRepo struct{ db *gorm.DB }

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

func (r *movimientoStockRepo) CreateTx(tx *gorm.DB, m *model.MovimientoStock) error {
	return tx.Create(m).Error
}

func (r *movimientoStockRepo) List(ctx context.Context, sucursal string, limit int) ([]model.MovimientoStock, error) {
	if limit <= 0 {
		limit = 100
	}
	var movs []model.MovimientoStock
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if sucursal != "" {
		q = q.Where("sucursal = ?", sucursal)
	}
	err := q.Find(&movs).Error
	return movs, err
}
