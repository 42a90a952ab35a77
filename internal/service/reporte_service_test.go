package service_test

import (
	"context"
	"testing"
	"time"

	"heladopos/internal/dto"
	"heladopos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) ventaConItems(sucursal string, fecha time.Time, total int64, items ...model.VentaItem) {
	f.t.Helper()
	require.NoError(f.t, f.ventas.CreateTx(nil, &model.Venta{
		Fecha:     fecha,
		Total:     decimal.NewFromInt(total),
		MedioPago: "efectivo",
		Detalle:   "detalle",
		Sucursal:  sucursal,
		Items:     items,
	}))
}

func seedVentasDeReporte(f *fixture) {
	dia := time.Date(2026, 8, 15, 12, 0, 0, 0, time.Local)
	f.ventaConItems(sucursalMP, dia, 12000, model.VentaItem{
		Producto: "1 kg", Precio: decimal.NewFromInt(12000),
		Sabores: []string{"Chocolate", "Vainilla"}, GramosDebitados: 1000,
	})
	f.ventaConItems(sucursalMP, dia.Add(time.Hour), 4000, model.VentaItem{
		Producto: "1/4 kg", Precio: decimal.NewFromInt(4000),
		Sabores: []string{"Chocolate"}, GramosDebitados: 250,
	})
	f.ventaConItems(sucursalTS, dia.Add(2*time.Hour), 2000, model.VentaItem{
		Producto: "Vasito", Precio: decimal.NewFromInt(2000),
		Sabores: []string{"Dulce de Leche"}, GramosDebitados: 100,
	})
	// Outside the queried range.
	f.ventaConItems(sucursalMP, dia.AddDate(0, 1, 0), 99999, model.VentaItem{
		Producto: "1 kg", Precio: decimal.NewFromInt(99999),
		Sabores: []string{"Tramontana"}, GramosDebitados: 1000,
	})
}

func TestResumenAgregaDesdeItems(t *testing.T) {
	f := newFixture(t)
	seedVentasDeReporte(f)

	resp, err := f.reporteSvc.Resumen(context.Background(), dto.ReporteFilter{
		Desde: "2026-08-01", Hasta: "2026-08-31",
	})
	require.NoError(t, err)

	assert.Equal(t, "18000.00", resp.TotalRecaudado)
	assert.InDelta(t, 1.35, resp.KilosVendidos, 0.0001)
	assert.Equal(t, 3, resp.CantidadVentas)

	require.NotEmpty(t, resp.TopSabores)
	assert.Equal(t, "Chocolate", resp.TopSabores[0].Sabor)
	assert.Equal(t, 2, resp.TopSabores[0].Cantidad)
	assert.LessOrEqual(t, len(resp.TopSabores), 3)
}

func TestResumenFiltraPorSucursal(t *testing.T) {
	f := newFixture(t)
	seedVentasDeReporte(f)

	resp, err := f.reporteSvc.Resumen(context.Background(), dto.ReporteFilter{
		Desde: "2026-08-01", Hasta: "2026-08-31", Sucursal: sucursalTS,
	})
	require.NoError(t, err)
	assert.Equal(t, "2000.00", resp.TotalRecaudado)
	assert.Equal(t, 1, resp.CantidadVentas)
}

func TestResumenFechaInvalida(t *testing.T) {
	f := newFixture(t)
	_, err := f.reporteSvc.Resumen(context.Background(), dto.ReporteFilter{
		Desde: "15/08/2026", Hasta: "2026-08-31",
	})
	require.Error(t, err)
}

func TestVentasPorRangoIncluyeElUltimoDia(t *testing.T) {
	f := newFixture(t)
	f.ventaConItems(sucursalMP, time.Date(2026, 8, 31, 23, 30, 0, 0, time.Local), 4000)

	ventas, err := f.reporteSvc.VentasPorRango(context.Background(), dto.ReporteFilter{
		Desde: "2026-08-31", Hasta: "2026-08-31",
	})
	require.NoError(t, err)
	assert.Len(t, ventas, 1)
}

func TestGenerarExcel(t *testing.T) {
	f := newFixture(t)
	seedVentasDeReporte(f)

	file, err := f.reporteSvc.GenerarExcel(context.Background(), dto.ReporteFilter{
		Desde: "2026-08-01", Hasta: "2026-08-31",
	})
	require.NoError(t, err)
	defer file.Close()

	assert.Contains(t, file.GetSheetList(), "Resumen General")
	assert.Contains(t, file.GetSheetList(), "Detalle Ventas")

	titulo, err := file.GetCellValue("Resumen General", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Reporte de Ventas", titulo)

	total, err := file.GetCellValue("Resumen General", "B5")
	require.NoError(t, err)
	assert.Equal(t, "18000.00", total)

	// Header row plus one row per sale in range.
	filas, err := file.GetRows("Detalle Ventas")
	require.NoError(t, err)
	assert.Len(t, filas, 4)
	assert.Equal(t, []string{"Fecha", "Sucursal", "Medio de Pago", "Detalle", "Total"}, filas[0])
}
