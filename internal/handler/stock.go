package handler

import (
	"net/http"
	"strconv"

	"heladopos/internal/dto"
	"heladopos/internal/service"

	"github.com/gin-gonic/gin"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler { return &StockHandler{svc: svc} }

// ReponerSabor godoc
// @Summary Reponer stock de un sabor
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ReponerSaborRequest true "Reposición"
// @Success 200 {object} dto.StockSaborResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/stock/sabores/reponer [post]
func (h *StockHandler) ReponerSabor(c *gin.Context) {
	var req dto.ReponerSaborRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ReponerSabor(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CorregirSabor sets the absolute stock of a flavor after a physical count.
func (h *StockHandler) CorregirSabor(c *gin.Context) {
	var req dto.CorregirSaborRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CorregirSabor(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) ReponerInsumo(c *gin.Context) {
	var req dto.ReponerInsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ReponerInsumo(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) ListarMovimientos(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), c.Query("sucursal"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
