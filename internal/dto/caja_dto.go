package dto

import "github.com/shopspring/decimal"

// ─── Response DTOs ───────────────────────────────────────────────────────────

// VentanaResponse describes a branch's open sales window: everything sold
// strictly after the last cierre.
type VentanaResponse struct {
	Sucursal       string          `json:"sucursal"`
	Desde          *string         `json:"desde"` // fecha del último cierre; nil = sin cierres previos
	CantidadVentas int             `json:"cantidad_ventas"`
	Total          decimal.Decimal `json:"total"`
	Ventas         []VentaResponse `json:"ventas"`
}

type CierreResponse struct {
	ID             string          `json:"id"`
	Sucursal       string          `json:"sucursal"`
	Fecha          string          `json:"fecha"`
	Total          decimal.Decimal `json:"total"`
	CantidadVentas int             `json:"cantidad_ventas"`
}
