package handler

import (
	"net/http"

	"heladopos/internal/apierror"
	"heladopos/internal/dto"
	"heladopos/internal/middleware"
	"heladopos/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// resolveSucursal determines which branch a request operates on. A vendedor
// bound to a branch by their token always operates there; admins pass
// ?sucursal= explicitly.
func resolveSucursal(c *gin.Context) (string, bool) {
	claims := middleware.GetClaims(c)
	if claims != nil && claims.Sucursal != nil && *claims.Sucursal != "" {
		return *claims.Sucursal, true
	}
	s := c.Query("sucursal")
	if s == "" {
		c.JSON(http.StatusBadRequest, apierror.New("sucursal requerida"))
		return "", false
	}
	return s, true
}

// RegistrarVenta godoc
// @Summary      Registrar una venta
// @Description  Procesa el carrito de forma atómica: valida productos y gustos, expande promos, descuenta stock de sabores e insumos y persiste la venta. Todo o nada.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sucursal query string false "Sucursal (obligatoria para admin)"
// @Param        body body dto.CarritoRequest true "Carrito"
// @Success      201 {object} dto.VentaResponse
// @Failure      400 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) RegistrarVenta(c *gin.Context) {
	sucursal, ok := resolveSucursal(c)
	if !ok {
		return
	}
	var req dto.CarritoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.ProcesarCarrito(c.Request.Context(), req, sucursal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarVentas returns a paginated, filtered list of sales.
func (h *VentasHandler) ListarVentas(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	claims := middleware.GetClaims(c)
	if claims != nil && claims.Sucursal != nil && *claims.Sucursal != "" {
		filter.Sucursal = *claims.Sucursal
	}

	resp, err := h.svc.ListarVentas(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
