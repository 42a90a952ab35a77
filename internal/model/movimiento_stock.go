package model

import (
	"time"

	"github.com/google/uuid"
)

// Recurso values for MovimientoStock.
const (
	RecursoSabor  = "sabor"
	RecursoInsumo = "insumo"
)

// MovimientoStock records every stock change of a flavor or supply.
// Created automatically on sale, replenishment and manual correction.
// Quantities are grams for sabores and units for insumos;
// positive = entrada, negative = salida.
type MovimientoStock struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Recurso  string    `gorm:"type:varchar(10);not null"`
	Nombre   string    `gorm:"not null;index"`
	Sucursal string    `gorm:"not null;index"`
	Tipo     string    `gorm:"not null"` // "venta" | "reposicion" | "correccion"
	Cantidad float64   `gorm:"not null"`
	StockAnterior float64 `gorm:"not null"`
	StockNuevo    float64 `gorm:"not null"`
	// ReferenciaID links to the originating Venta when Tipo = "venta".
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
}

// TableName overrides GORM's default pluralization (movimiento_stocks → movimientos_stock).
func (MovimientoStock) TableName() string { return "movimientos_stock" }
