package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cierre is a register-closing snapshot for one branch: the monetary total and
// count of the sales window it closed. Rows are append-only and reference no
// individual Venta — the Fecha acts as a monotonic high-water mark that
// defines where the next open window starts. Venta rows are kept forever.
type Cierre struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Sucursal       string          `gorm:"not null;index"`
	Fecha          time.Time       `gorm:"not null;index"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CantidadVentas int             `gorm:"not null"`
	CreatedAt      time.Time
}

func (Cierre) TableName() string { return "cierres" }
