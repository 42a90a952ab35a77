package handler

import (
	"net/http"

	"heladopos/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct{ svc service.CierreService }

func NewCajaHandler(svc service.CierreService) *CajaHandler { return &CajaHandler{svc: svc} }

// VentanaActual godoc
// @Summary Ventana de caja abierta
// @Description Devuelve las ventas registradas estrictamente después del último cierre de la sucursal, con su total acumulado.
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param sucursal query string false "Sucursal (obligatoria para admin)"
// @Success 200 {object} dto.VentanaResponse
// @Router /v1/caja [get]
func (h *CajaHandler) VentanaActual(c *gin.Context) {
	sucursal, ok := resolveSucursal(c)
	if !ok {
		return
	}
	resp, err := h.svc.VentanaActual(c.Request.Context(), sucursal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar godoc
// @Summary Cerrar caja
// @Description Cierra la ventana abierta de la sucursal. Falla con 409 si no hay ventas nuevas desde el último cierre.
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param sucursal query string false "Sucursal (obligatoria para admin)"
// @Success 201 {object} dto.CierreResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/cierre [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	sucursal, ok := resolveSucursal(c)
	if !ok {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), sucursal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CajaHandler) ListarCierres(c *gin.Context) {
	resp, err := h.svc.ListarCierres(c.Request.Context(), c.Query("sucursal"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
