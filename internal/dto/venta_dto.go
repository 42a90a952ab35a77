package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LineaCarrito is one requested item: a product name plus the chosen flavors.
// Every frozen-dessert leaf the line expands to draws from this one flavor
// list — there is no per-sub-item selection inside a combo.
type LineaCarrito struct {
	Producto string   `json:"producto" validate:"required"`
	Sabores  []string `json:"sabores"`
}

// CarritoRequest is the body of POST /v1/ventas.
// Items is deliberately not tagged min=1: an empty cart is a domain error
// with its own message, not a validation failure.
type CarritoRequest struct {
	Items     []LineaCarrito `json:"items"      validate:"dive"`
	MedioPago string         `json:"medio_pago" validate:"required,oneof=efectivo debito credito transferencia"`
}

// ─── Filter / List ───────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Desde    string `form:"desde"` // YYYY-MM-DD; empty = sin límite inferior
	Hasta    string `form:"hasta"` // YYYY-MM-DD; empty = sin límite superior
	Sucursal string `form:"sucursal"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	Producto        string          `json:"producto"`
	Precio          decimal.Decimal `json:"precio"`
	Sabores         []string        `json:"sabores"`
	GramosDebitados float64         `json:"gramos_debitados"`
}

type VentaResponse struct {
	ID        string              `json:"id"`
	Fecha     string              `json:"fecha"`
	Total     decimal.Decimal     `json:"total"`
	MedioPago string              `json:"medio_pago"`
	Detalle   string              `json:"detalle"`
	Sucursal  string              `json:"sucursal"`
	Items     []ItemVentaResponse `json:"items"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
