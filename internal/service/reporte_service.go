package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"heladopos/internal/dto"
	"heladopos/internal/model"
	"heladopos/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ReporteService agrega ventas por rango de fechas y las exporta a Excel.
// Every metric comes from the structured VentaItems; the Detalle text is
// display-only and never parsed back.
type ReporteService interface {
	Resumen(ctx context.Context, filter dto.ReporteFilter) (*dto.ResumenReporteResponse, error)
	VentasPorRango(ctx context.Context, filter dto.ReporteFilter) ([]dto.VentaResponse, error)
	GenerarExcel(ctx context.Context, filter dto.ReporteFilter) (*excelize.File, error)
}

type reporteService struct {
	ventaRepo repository.VentaRepository
}

func NewReporteService(ventaRepo repository.VentaRepository) ReporteService {
	return &reporteService{ventaRepo: ventaRepo}
}

func parseRango(filter dto.ReporteFilter) (time.Time, time.Time, error) {
	desde, err := time.ParseInLocation("2006-01-02", filter.Desde, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("fecha desde inválida: %w", err)
	}
	hasta, err := time.ParseInLocation("2006-01-02", filter.Hasta, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("fecha hasta inválida: %w", err)
	}
	// hasta is inclusive: cover the whole day.
	return desde, hasta.AddDate(0, 0, 1).Add(-time.Second), nil
}

func (s *reporteService) ventasEnRango(ctx context.Context, filter dto.ReporteFilter) ([]model.Venta, error) {
	desde, hasta, err := parseRango(filter)
	if err != nil {
		return nil, err
	}
	return s.ventaRepo.ListRango(ctx, desde, hasta, filter.Sucursal)
}

func (s *reporteService) VentasPorRango(ctx context.Context, filter dto.ReporteFilter) ([]dto.VentaResponse, error) {
	ventas, err := s.ventasEnRango(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		out = append(out, *ventaToResponse(&ventas[i]))
	}
	return out, nil
}

type resumen struct {
	total  decimal.Decimal
	kilos  float64
	ventas int
	top    []dto.TopSaborResponse
}

func (s *reporteService) calcular(ventas []model.Venta) resumen {
	total := decimal.Zero
	kilos := 0.0
	porSabor := make(map[string]int)
	for i := range ventas {
		total = total.Add(ventas[i].Total)
		for _, item := range ventas[i].Items {
			kilos += item.GramosDebitados / 1000.0
			for _, sabor := range item.Sabores {
				porSabor[sabor]++
			}
		}
	}

	top := make([]dto.TopSaborResponse, 0, len(porSabor))
	for sabor, n := range porSabor {
		top = append(top, dto.TopSaborResponse{Sabor: sabor, Cantidad: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Cantidad != top[j].Cantidad {
			return top[i].Cantidad > top[j].Cantidad
		}
		return top[i].Sabor < top[j].Sabor
	})
	if len(top) > 3 {
		top = top[:3]
	}
	return resumen{total: total, kilos: kilos, ventas: len(ventas), top: top}
}

func (s *reporteService) Resumen(ctx context.Context, filter dto.ReporteFilter) (*dto.ResumenReporteResponse, error) {
	ventas, err := s.ventasEnRango(ctx, filter)
	if err != nil {
		return nil, err
	}
	r := s.calcular(ventas)
	return &dto.ResumenReporteResponse{
		TotalRecaudado: r.total.StringFixed(2),
		KilosVendidos:  r.kilos,
		CantidadVentas: r.ventas,
		TopSabores:     r.top,
	}, nil
}

func (s *reporteService) GenerarExcel(ctx context.Context, filter dto.ReporteFilter) (*excelize.File, error) {
	ventas, err := s.ventasEnRango(ctx, filter)
	if err != nil {
		return nil, err
	}
	r := s.calcular(ventas)

	f := excelize.NewFile()
	resumenSheet := "Resumen General"
	f.SetSheetName("Sheet1", resumenSheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})

	f.SetCellValue(resumenSheet, "A1", "Reporte de Ventas")
	f.SetCellValue(resumenSheet, "A2", fmt.Sprintf("Período: %s a %s", filter.Desde, filter.Hasta))
	if filter.Sucursal != "" {
		f.SetCellValue(resumenSheet, "A3", "Sucursal: "+filter.Sucursal)
	} else {
		f.SetCellValue(resumenSheet, "A3", "Sucursal: todas")
	}
	f.SetCellStyle(resumenSheet, "A1", "A1", boldStyle)

	fila := 5
	metricas := [][2]interface{}{
		{"Total Recaudado", r.total.StringFixed(2)},
		{"Total Kilos Vendidos", r.kilos},
		{"Cant. Ventas", r.ventas},
	}
	for i, t := range r.top {
		metricas = append(metricas, [2]interface{}{fmt.Sprintf("Top %d Sabor", i+1), fmt.Sprintf("%s (%d)", t.Sabor, t.Cantidad)})
	}
	for _, m := range metricas {
		f.SetCellValue(resumenSheet, fmt.Sprintf("A%d", fila), m[0])
		f.SetCellValue(resumenSheet, fmt.Sprintf("B%d", fila), m[1])
		f.SetCellStyle(resumenSheet, fmt.Sprintf("A%d", fila), fmt.Sprintf("A%d", fila), boldStyle)
		fila++
	}
	f.SetColWidth(resumenSheet, "A", "A", 24)
	f.SetColWidth(resumenSheet, "B", "B", 24)

	detalleSheet := "Detalle Ventas"
	if _, err := f.NewSheet(detalleSheet); err != nil {
		return nil, err
	}
	encabezados := []string{"Fecha", "Sucursal", "Medio de Pago", "Detalle", "Total"}
	for i, h := range encabezados {
		celda, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(detalleSheet, celda, h)
		f.SetCellStyle(detalleSheet, celda, celda, boldStyle)
	}
	for i := range ventas {
		v := &ventas[i]
		fila := i + 2
		f.SetCellValue(detalleSheet, fmt.Sprintf("A%d", fila), v.Fecha.Format("2006-01-02 15:04"))
		f.SetCellValue(detalleSheet, fmt.Sprintf("B%d", fila), v.Sucursal)
		f.SetCellValue(detalleSheet, fmt.Sprintf("C%d", fila), v.MedioPago)
		f.SetCellValue(detalleSheet, fmt.Sprintf("D%d", fila), v.Detalle)
		f.SetCellValue(detalleSheet, fmt.Sprintf("E%d", fila), v.Total.InexactFloat64())
	}
	f.SetColWidth(detalleSheet, "A", "A", 18)
	f.SetColWidth(detalleSheet, "D", "D", 50)

	return f, nil
}
