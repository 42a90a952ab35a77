package dto

import "github.com/shopspring/decimal"

// ─── Sabores ─────────────────────────────────────────────────────────────────

type CrearSaborRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=100"`
}

type SaborResponse struct {
	ID     string             `json:"id"`
	Nombre string             `json:"nombre"`
	Activo bool               `json:"activo"`
	Stocks map[string]float64 `json:"stocks"` // sucursal → gramos
}

// ─── Insumos ─────────────────────────────────────────────────────────────────

type CrearInsumoRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=100"`
}

type InsumoResponse struct {
	ID     string         `json:"id"`
	Nombre string         `json:"nombre"`
	Stocks map[string]int `json:"stocks"` // sucursal → unidades
}

// ─── Productos ───────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre     string          `json:"nombre"      validate:"required,min=2,max=120"`
	Precio     decimal.Decimal `json:"precio"      validate:"required"`
	EsHelado   bool            `json:"es_helado"`
	PesoGramos int             `json:"peso_gramos" validate:"min=0"`
	MaxGustos  int             `json:"max_gustos"  validate:"min=0"`
	InsumoID   *string         `json:"insumo_id"   validate:"omitempty,uuid"`
	EsCombo    bool            `json:"es_combo"`
}

type ActualizarPrecioRequest struct {
	Precio decimal.Decimal `json:"precio" validate:"required"`
}

type ProductoResponse struct {
	ID         string          `json:"id"`
	Nombre     string          `json:"nombre"`
	Precio     decimal.Decimal `json:"precio"`
	EsHelado   bool            `json:"es_helado"`
	PesoGramos int             `json:"peso_gramos"`
	MaxGustos  int             `json:"max_gustos"`
	InsumoID   *string         `json:"insumo_id"`
	EsCombo    bool            `json:"es_combo"`
	Activo     bool            `json:"activo"`
}

// ─── Combos ──────────────────────────────────────────────────────────────────

type AgregarItemComboRequest struct {
	ItemID   string `json:"item_id"  validate:"required,uuid"`
	Cantidad int    `json:"cantidad" validate:"required,min=1"`
}

type ItemComboResponse struct {
	ID       string `json:"id"`
	ItemID   string `json:"item_id"`
	Producto string `json:"producto"`
	Cantidad int    `json:"cantidad"`
}

// ─── Historial de precios ────────────────────────────────────────────────────

type HistorialPrecioResponse struct {
	ProductoID    string          `json:"producto_id"`
	PrecioAntes   decimal.Decimal `json:"precio_antes"`
	PrecioDespues decimal.Decimal `json:"precio_despues"`
	Fecha         string          `json:"fecha"`
}
