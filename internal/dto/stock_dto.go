package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ReponerSaborRequest struct {
	Sabor    string  `json:"sabor"    validate:"required"`
	Gramos   float64 `json:"gramos"   validate:"required,gt=0"`
	Sucursal string  `json:"sucursal" validate:"required"`
}

type CorregirSaborRequest struct {
	Sabor    string  `json:"sabor"    validate:"required"`
	Gramos   float64 `json:"gramos"   validate:"min=0"` // absolute value from physical count
	Sucursal string  `json:"sucursal" validate:"required"`
}

type ReponerInsumoRequest struct {
	InsumoID string `json:"insumo_id" validate:"required,uuid"`
	Unidades int    `json:"unidades"  validate:"required,gt=0"`
	Sucursal string `json:"sucursal"  validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type StockSaborResponse struct {
	Sabor    string  `json:"sabor"`
	Sucursal string  `json:"sucursal"`
	Gramos   float64 `json:"gramos"`
}

type StockInsumoResponse struct {
	Insumo   string `json:"insumo"`
	Sucursal string `json:"sucursal"`
	Unidades int    `json:"unidades"`
}

type MovimientoStockResponse struct {
	Recurso       string  `json:"recurso"`
	Nombre        string  `json:"nombre"`
	Sucursal      string  `json:"sucursal"`
	Tipo          string  `json:"tipo"`
	Cantidad      float64 `json:"cantidad"`
	StockAnterior float64 `json:"stock_anterior"`
	StockNuevo    float64 `json:"stock_nuevo"`
	Fecha         string  `json:"fecha"`
}
