package model

import (
	"time"

	"github.com/google/uuid"
)

// Sabor is an ice-cream flavor tracked by mass. Stock lives in SaborStock,
// one row per branch — branches never share a pool.
// Inactive flavors are hidden from the sale UI but keep stock and history.
type Sabor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Activo    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Stocks []SaborStock `gorm:"foreignKey:SaborID"`
}

func (Sabor) TableName() string { return "sabores" }

// SaborStock holds one branch's stock of one flavor, in grams.
type SaborStock struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaborID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_sabor_sucursal;not null"`
	Sucursal  string    `gorm:"uniqueIndex:idx_sabor_sucursal;not null"`
	Gramos    float64   `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (SaborStock) TableName() string { return "sabor_stocks" }
