package handler

import (
	"fmt"
	"net/http"
	"time"

	"heladopos/internal/apierror"
	"heladopos/internal/dto"
	"heladopos/internal/service"
	"heladopos/internal/worker"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct {
	svc        service.ReporteService
	dispatcher *worker.Dispatcher
}

func NewReportesHandler(svc service.ReporteService, dispatcher *worker.Dispatcher) *ReportesHandler {
	return &ReportesHandler{svc: svc, dispatcher: dispatcher}
}

func bindReporteFilter(c *gin.Context) (dto.ReporteFilter, bool) {
	var filter dto.ReporteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return filter, false
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("desde y hasta son obligatorios (YYYY-MM-DD)"))
		return filter, false
	}
	return filter, true
}

// Resumen godoc
// @Summary Resumen de ventas por rango
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string true "YYYY-MM-DD"
// @Param hasta query string true "YYYY-MM-DD"
// @Param sucursal query string false "Sucursal; vacía = todas"
// @Success 200 {object} dto.ResumenReporteResponse
// @Router /v1/reportes/resumen [get]
func (h *ReportesHandler) Resumen(c *gin.Context) {
	filter, ok := bindReporteFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportesHandler) Ventas(c *gin.Context) {
	filter, ok := bindReporteFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.VentasPorRango(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Excel streams the rendered spreadsheet as a download.
func (h *ReportesHandler) Excel(c *gin.Context) {
	filter, ok := bindReporteFilter(c)
	if !ok {
		return
	}
	f, err := h.svc.GenerarExcel(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	name := fmt.Sprintf("ventas_%s_%s.xlsx", filter.Desde, filter.Hasta)
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// GenerarAsync enqueues background rendering; heavy ranges never block the
// request. When an email is given the finished file is mailed.
func (h *ReportesHandler) GenerarAsync(c *gin.Context) {
	var req dto.ReporteAsyncRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if _, err := time.Parse("2006-01-02", req.Desde); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("fecha desde inválida (YYYY-MM-DD)"))
		return
	}
	if _, err := time.Parse("2006-01-02", req.Hasta); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("fecha hasta inválida (YYYY-MM-DD)"))
		return
	}

	payload := worker.ReporteJobPayload{
		Desde:    req.Desde,
		Hasta:    req.Hasta,
		Sucursal: req.Sucursal,
		Email:    req.Email,
	}
	if err := h.dispatcher.EnqueueReporte(c.Request.Context(), payload); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "encolado"})
}
