package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Venta is an immutable sale record — the system of record for all reporting.
// Total is the sum of the TOP-LEVEL product prices in the cart; combos are
// priced as a whole, never as the sum of their leaves.
// Detalle is a human-readable rendering baked at creation time and kept for
// tickets and dashboards; reporting reads the structured Items instead.
type Venta struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha     time.Time       `gorm:"not null;index"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MedioPago string          `gorm:"type:varchar(30);not null"`
	Detalle   string          `gorm:"type:text;not null"`
	Sucursal  string          `gorm:"not null;index"`
	CreatedAt time.Time

	Items []VentaItem `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem is one structured cart line. Products and flavors are referenced
// by name, not foreign key, so catalog deletions never corrupt history.
// GramosDebitados is the total flavor mass the line removed from stock.
type VentaItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Producto        string          `gorm:"not null"`
	Precio          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Sabores         pq.StringArray  `gorm:"type:text[]"`
	GramosDebitados float64         `gorm:"not null;default:0"`
	CreatedAt       time.Time
}

func (VentaItem) TableName() string { return "venta_items" }
