package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a sellable item on the price list. A leaf product may consume
// one Insumo unit per sale and, when EsHelado, PesoGramos of chosen flavors.
// A combo (EsCombo=true) carries no mass or insumo of its own — only its
// resolved leaves do — and owns a recipe of ComboItem rows.
type Producto struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string          `gorm:"uniqueIndex;not null"`
	Precio decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// EsHelado marks frozen-dessert items whose sale debits flavor grams.
	EsHelado   bool `gorm:"not null;default:false"`
	PesoGramos int  `gorm:"not null;default:0"`
	// MaxGustos limits how many flavors a customer may pick; 0 = no limit.
	MaxGustos int        `gorm:"not null;default:0"`
	InsumoID  *uuid.UUID `gorm:"type:uuid;index"`
	EsCombo   bool       `gorm:"not null;default:false"`
	Activo    bool       `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Insumo *Insumo     `gorm:"foreignKey:InsumoID"`
	Items  []ComboItem `gorm:"foreignKey:ComboID"`
}

func (Producto) TableName() string { return "productos" }

// ComboItem is one line of a combo's recipe: Cantidad units of the child
// product per combo sold. The child may itself be a combo; direct
// self-reference is rejected at creation, deeper cycles are caught by the
// depth bound during expansion.
type ComboItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComboID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null"`
	Cantidad int       `gorm:"not null;default:1"`
	// Posicion preserves insertion order for expansion and display.
	Posicion  int `gorm:"not null;default:0"`
	CreatedAt time.Time

	Item *Producto `gorm:"foreignKey:ItemID"`
}

func (ComboItem) TableName() string { return "combo_items" }
