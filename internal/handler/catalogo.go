package handler

import (
	"net/http"

	"heladopos/internal/apierror"
	"heladopos/internal/dto"
	"heladopos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// ── Sabores ──────────────────────────────────────────────────────────────────

func (h *CatalogoHandler) CrearSabor(c *gin.Context) {
	var req dto.CrearSaborRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearSabor(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarSabores godoc
// @Summary Listar sabores con stock por sucursal
// @Tags catalogo
// @Produce json
// @Security BearerAuth
// @Param todos query bool false "Incluir sabores inactivos"
// @Success 200 {array} dto.SaborResponse
// @Router /v1/sabores [get]
func (h *CatalogoHandler) ListarSabores(c *gin.Context) {
	soloActivos := c.Query("todos") != "true"
	resp, err := h.svc.ListarSabores(c.Request.Context(), soloActivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) DesactivarSabor(c *gin.Context) {
	if err := h.svc.CambiarEstadoSabor(c.Request.Context(), c.Param("nombre"), false); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogoHandler) ReactivarSabor(c *gin.Context) {
	if err := h.svc.CambiarEstadoSabor(c.Request.Context(), c.Param("nombre"), true); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Insumos ──────────────────────────────────────────────────────────────────

func (h *CatalogoHandler) CrearInsumo(c *gin.Context) {
	var req dto.CrearInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearInsumo(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarInsumos(c *gin.Context) {
	resp, err := h.svc.ListarInsumos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) EliminarInsumo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarInsumo(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Productos ────────────────────────────────────────────────────────────────

func (h *CatalogoHandler) CrearProducto(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearProducto(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarProductos(c *gin.Context) {
	resp, err := h.svc.ListarProductos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarPrecio godoc
// @Summary Actualizar precio de un producto
// @Description Cambia el precio y deja constancia en el historial. Las ventas ya registradas conservan el precio al que se vendieron.
// @Tags catalogo
// @Security BearerAuth
// @Param id path string true "UUID del producto"
// @Param body body dto.ActualizarPrecioRequest true "Nuevo precio"
// @Success 200 {object} dto.ProductoResponse
// @Router /v1/productos/{id}/precio [put]
func (h *CatalogoHandler) ActualizarPrecio(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarPrecioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPrecio(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) DesactivarProducto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DesactivarProducto(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogoHandler) ReactivarProducto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.ReactivarProducto(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogoHandler) ListarHistorialPrecios(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarHistorialPrecios(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Promos ───────────────────────────────────────────────────────────────────

func (h *CatalogoHandler) AgregarItemCombo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AgregarItemComboRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarItemCombo(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogoHandler) ListarItemsCombo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarItemsCombo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogoHandler) EliminarItemCombo(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.EliminarItemCombo(c.Request.Context(), itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Sucursales ───────────────────────────────────────────────────────────────

type crearSucursalRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2,max=100"`
}

func (h *CatalogoHandler) CrearSucursal(c *gin.Context) {
	var req crearSucursalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sucursal, err := h.svc.CrearSucursal(c.Request.Context(), req.Nombre)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": sucursal.ID.String(), "nombre": sucursal.Nombre})
}

func (h *CatalogoHandler) ListarSucursales(c *gin.Context) {
	sucursales, err := h.svc.ListarSucursales(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]gin.H, 0, len(sucursales))
	for _, s := range sucursales {
		out = append(out, gin.H{"id": s.ID.String(), "nombre": s.Nombre})
	}
	c.JSON(http.StatusOK, out)
}
