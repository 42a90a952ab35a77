package model

import (
	"time"

	"github.com/google/uuid"
)

// Insumo is a packaging consumable (cones, tubs) tracked by unit count,
// stocked per branch via InsumoStock rows.
type Insumo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Stocks []InsumoStock `gorm:"foreignKey:InsumoID"`
}

func (Insumo) TableName() string { return "insumos" }

// InsumoStock holds one branch's unit count of one supply.
type InsumoStock struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InsumoID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_insumo_sucursal;not null"`
	Sucursal  string    `gorm:"uniqueIndex:idx_insumo_sucursal;not null"`
	Unidades  int       `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (InsumoStock) TableName() string { return "insumo_stocks" }
