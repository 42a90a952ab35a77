package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ReporteFilter is bound from the query string of GET /v1/reportes/excel.
type ReporteFilter struct {
	Desde    string `form:"desde"    validate:"required"` // YYYY-MM-DD
	Hasta    string `form:"hasta"    validate:"required"` // YYYY-MM-DD
	Sucursal string `form:"sucursal"`                     // empty = todas
}

// ReporteAsyncRequest enqueues background rendering; when Email is set the
// resulting spreadsheet is mailed as an attachment.
type ReporteAsyncRequest struct {
	Desde    string  `json:"desde"    validate:"required"`
	Hasta    string  `json:"hasta"    validate:"required"`
	Sucursal string  `json:"sucursal"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TopSaborResponse struct {
	Sabor    string `json:"sabor"`
	Cantidad int    `json:"cantidad"`
}

type ResumenReporteResponse struct {
	TotalRecaudado string             `json:"total_recaudado"`
	KilosVendidos  float64            `json:"kilos_vendidos"`
	CantidadVentas int                `json:"cantidad_ventas"`
	TopSabores     []TopSaborResponse `json:"top_sabores"`
}
