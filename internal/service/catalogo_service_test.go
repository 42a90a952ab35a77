package service_test

import (
	"context"
	"testing"

	"heladopos/internal/dto"
	"heladopos/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearSaborDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.catalogoSvc.CrearSabor(ctx, dto.CrearSaborRequest{Nombre: "Frutilla"})
	require.NoError(t, err)
	assert.True(t, resp.Activo)

	_, err = f.catalogoSvc.CrearSabor(ctx, dto.CrearSaborRequest{Nombre: "Frutilla"})
	require.ErrorIs(t, err, service.ErrNombreDuplicado)
}

func TestCambiarEstadoSabor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.catalogoSvc.CambiarEstadoSabor(ctx, "Chocolate", false))

	activos, err := f.catalogoSvc.ListarSabores(ctx, true)
	require.NoError(t, err)
	for _, sb := range activos {
		assert.NotEqual(t, "Chocolate", sb.Nombre)
	}

	todos, err := f.catalogoSvc.ListarSabores(ctx, false)
	require.NoError(t, err)
	assert.Greater(t, len(todos), len(activos))

	require.ErrorIs(t, f.catalogoSvc.CambiarEstadoSabor(ctx, "Inexistente", false), service.ErrSaborDesconocido)
}

func TestEliminarInsumoReferenciado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// "Vasito Colegial" backs the "Vasito" product.
	insumo, err := f.insumos.FindByNombre(ctx, "Vasito Colegial")
	require.NoError(t, err)
	require.ErrorIs(t, f.catalogoSvc.EliminarInsumo(ctx, insumo.ID), service.ErrConflictoReferencial)

	// Unreferenced supplies delete cleanly.
	libre, err := f.catalogoSvc.CrearInsumo(ctx, dto.CrearInsumoRequest{Nombre: "Cuchara de Degustación"})
	require.NoError(t, err)
	nuevo, err := f.insumos.FindByNombre(ctx, libre.Nombre)
	require.NoError(t, err)
	require.NoError(t, f.catalogoSvc.EliminarInsumo(ctx, nuevo.ID))
}

func TestCrearProductoComboNormaliza(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	insumo, err := f.insumos.FindByNombre(ctx, "Vasito Colegial")
	require.NoError(t, err)
	insumoID := insumo.ID.String()

	// A combo carries no mass, flavor limit or supply of its own.
	resp, err := f.catalogoSvc.CrearProducto(ctx, dto.CrearProductoRequest{
		Nombre:     "Promo Cumpleaños",
		Precio:     decimal.NewFromInt(30000),
		EsHelado:   true,
		PesoGramos: 500,
		MaxGustos:  4,
		InsumoID:   &insumoID,
		EsCombo:    true,
	})
	require.NoError(t, err)
	assert.True(t, resp.EsCombo)
	assert.False(t, resp.EsHelado)
	assert.Zero(t, resp.PesoGramos)
	assert.Zero(t, resp.MaxGustos)
	assert.Nil(t, resp.InsumoID)
}

func TestCrearProductoInsumoInexistente(t *testing.T) {
	f := newFixture(t)
	fantasma := "00000000-0000-0000-0000-0000000000aa"
	_, err := f.catalogoSvc.CrearProducto(context.Background(), dto.CrearProductoRequest{
		Nombre:   "Cucurucho Triple",
		Precio:   decimal.NewFromInt(4500),
		EsHelado: true,
		InsumoID: &fantasma,
	})
	require.ErrorIs(t, err, service.ErrInsumoDesconocido)
}

func TestActualizarPrecioDejaHistorial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.productos.FindByNombre(ctx, "1 kg")
	require.NoError(t, err)

	resp, err := f.catalogoSvc.ActualizarPrecio(ctx, p.ID, dto.ActualizarPrecioRequest{Precio: decimal.NewFromInt(13500)})
	require.NoError(t, err)
	assert.True(t, resp.Precio.Equal(decimal.NewFromInt(13500)))

	historial, err := f.catalogoSvc.ListarHistorialPrecios(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, historial, 1)
	assert.True(t, historial[0].PrecioAntes.Equal(decimal.NewFromInt(12000)))
	assert.True(t, historial[0].PrecioDespues.Equal(decimal.NewFromInt(13500)))
}

func TestAgregarItemComboRechazaNoCombo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hoja, err := f.productos.FindByNombre(ctx, "1 kg")
	require.NoError(t, err)
	vasito, err := f.productos.FindByNombre(ctx, "Vasito")
	require.NoError(t, err)

	_, err = f.catalogoSvc.AgregarItemCombo(ctx, hoja.ID, dto.AgregarItemComboRequest{
		ItemID: vasito.ID.String(), Cantidad: 1,
	})
	require.Error(t, err)
}

func TestAgregarItemComboAutoReferencia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	promo, err := f.productos.FindByNombre(ctx, "Promo 2 Kilos")
	require.NoError(t, err)

	_, err = f.catalogoSvc.AgregarItemCombo(ctx, promo.ID, dto.AgregarItemComboRequest{
		ItemID: promo.ID.String(), Cantidad: 1,
	})
	require.ErrorIs(t, err, service.ErrComboCircular)
}

func TestAgregarYEliminarItemCombo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	promo, err := f.productos.FindByNombre(ctx, "Promo 2 Kilos")
	require.NoError(t, err)
	cuarto, err := f.productos.FindByNombre(ctx, "1/4 kg")
	require.NoError(t, err)

	agregado, err := f.catalogoSvc.AgregarItemCombo(ctx, promo.ID, dto.AgregarItemComboRequest{
		ItemID: cuarto.ID.String(), Cantidad: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "1/4 kg", agregado.Producto)

	items, err := f.catalogoSvc.ListarItemsCombo(ctx, promo.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	itemID := items[1].ID
	require.NoError(t, f.catalogoSvc.EliminarItemCombo(ctx, mustParseUUID(t, itemID)))

	items, err = f.catalogoSvc.ListarItemsCombo(ctx, promo.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCrearSucursalDuplicada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	nueva, err := f.catalogoSvc.CrearSucursal(ctx, "Cañuelas")
	require.NoError(t, err)
	assert.True(t, nueva.Activa)

	_, err = f.catalogoSvc.CrearSucursal(ctx, "Cañuelas")
	require.ErrorIs(t, err, service.ErrNombreDuplicado)

	// A fresh branch can sell right away: the set is open.
	require.NoError(t, f.stockSvc.ValidarSucursal(ctx, "Cañuelas"))
}
