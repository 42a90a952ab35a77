package service

import (
	"errors"
	"fmt"
)

// Domain errors. Handlers map these to HTTP status codes; anything not in
// this list surfaces as a 500.
var (
	ErrCarritoVacio         = errors.New("el carrito está vacío")
	ErrProductoDesconocido  = errors.New("producto desconocido")
	ErrSaborDesconocido     = errors.New("sabor desconocido")
	ErrInsumoDesconocido    = errors.New("insumo desconocido")
	ErrSucursalDesconocida  = errors.New("sucursal desconocida")
	ErrComboCircular        = errors.New("la promo se referencia a sí misma (directa o indirectamente)")
	ErrNadaQueCerrar        = errors.New("no hay ventas nuevas desde el último cierre")
	ErrNombreDuplicado      = errors.New("ya existe un registro con ese nombre")
	ErrConflictoReferencial = errors.New("el registro está referenciado por otros y no puede eliminarse")
	ErrAlmacenNoDisponible  = errors.New("almacenamiento no disponible")

	ErrCredencialesInvalidas = errors.New("usuario o contraseña incorrectos")
	ErrUsuarioInactivo       = errors.New("el usuario está desactivado")
	ErrMaxGustosExcedido     = errors.New("la cantidad de gustos supera el máximo del producto")
)

// StockInsuficienteError carries enough detail for the caller to tell the
// vendedor exactly which resource ran short and by how much. Necesario and
// Disponible are grams for sabores and units for insumos.
type StockInsuficienteError struct {
	Recurso    string // "sabor" | "insumo"
	Nombre     string
	Sucursal   string
	Necesario  float64
	Disponible float64
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s %q en %s: se necesitan %.0f y hay %.0f",
		e.Recurso, e.Nombre, e.Sucursal, e.Necesario, e.Disponible)
}
