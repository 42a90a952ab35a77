package service_test

// In-memory repository stubs. DB() returns nil so services run their
// transactional closures directly; the two-phase debit logic must therefore
// guarantee all-or-nothing behavior on its own, which is exactly what the
// venta tests assert.

import (
	"context"
	"testing"
	"time"

	"heladopos/internal/config"
	"heladopos/internal/dto"
	"heladopos/internal/model"
	"heladopos/internal/repository"
	"heladopos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Sucursales ───────────────────────────────────────────────────────────────

type stubSucursalRepo struct {
	sucursales []*model.Sucursal
}

var _ repository.SucursalRepository = (*stubSucursalRepo)(nil)

func (r *stubSucursalRepo) Create(_ context.Context, s *model.Sucursal) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sucursales = append(r.sucursales, s)
	return nil
}

func (r *stubSucursalRepo) FindByNombre(_ context.Context, nombre string) (*model.Sucursal, error) {
	for _, s := range r.sucursales {
		if s.Nombre == nombre && s.Activa {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSucursalRepo) List(_ context.Context) ([]model.Sucursal, error) {
	out := make([]model.Sucursal, 0, len(r.sucursales))
	for _, s := range r.sucursales {
		out = append(out, *s)
	}
	return out, nil
}

// ── Sabores ──────────────────────────────────────────────────────────────────

type stubSaborRepo struct {
	sabores []*model.Sabor
	stocks  []*model.SaborStock
}

var _ repository.SaborRepository = (*stubSaborRepo)(nil)

func (r *stubSaborRepo) DB() *gorm.DB { return nil }

func (r *stubSaborRepo) Create(_ context.Context, s *model.Sabor) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sabores = append(r.sabores, s)
	return nil
}

func (r *stubSaborRepo) FindByNombre(_ context.Context, nombre string) (*model.Sabor, error) {
	for _, s := range r.sabores {
		if s.Nombre == nombre {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSaborRepo) List(_ context.Context, soloActivos bool) ([]model.Sabor, error) {
	var out []model.Sabor
	for _, s := range r.sabores {
		if soloActivos && !s.Activo {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSaborRepo) Update(_ context.Context, s *model.Sabor) error { return nil }

func (r *stubSaborRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, s := range r.sabores {
		if s.ID == id {
			r.sabores = append(r.sabores[:i], r.sabores[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubSaborRepo) ListStocks(_ context.Context, saborID uuid.UUID) ([]model.SaborStock, error) {
	var out []model.SaborStock
	for _, st := range r.stocks {
		if st.SaborID == saborID {
			out = append(out, *st)
		}
	}
	return out, nil
}

// FindStockTx returns a detached copy, like a real row scan would.
func (r *stubSaborRepo) FindStockTx(_ *gorm.DB, saborID uuid.UUID, sucursal string) (*model.SaborStock, error) {
	for _, st := range r.stocks {
		if st.SaborID == saborID && st.Sucursal == sucursal {
			c := *st
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSaborRepo) CreateStockTx(_ *gorm.DB, st *model.SaborStock) error {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	r.stocks = append(r.stocks, st)
	return nil
}

func (r *stubSaborRepo) UpdateStockGramosTx(_ *gorm.DB, id uuid.UUID, gramos float64) error {
	for _, st := range r.stocks {
		if st.ID == id {
			st.Gramos = gramos
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Insumos ──────────────────────────────────────────────────────────────────

type stubInsumoRepo struct {
	insumos []*model.Insumo
	stocks  []*model.InsumoStock
}

var _ repository.InsumoRepository = (*stubInsumoRepo)(nil)

func (r *stubInsumoRepo) DB() *gorm.DB { return nil }

func (r *stubInsumoRepo) Create(_ context.Context, i *model.Insumo) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.insumos = append(r.insumos, i)
	return nil
}

func (r *stubInsumoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Insumo, error) {
	for _, i := range r.insumos {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInsumoRepo) FindByNombre(_ context.Context, nombre string) (*model.Insumo, error) {
	for _, i := range r.insumos {
		if i.Nombre == nombre {
			return i, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInsumoRepo) List(_ context.Context) ([]model.Insumo, error) {
	out := make([]model.Insumo, 0, len(r.insumos))
	for _, i := range r.insumos {
		out = append(out, *i)
	}
	return out, nil
}

func (r *stubInsumoRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, in := range r.insumos {
		if in.ID == id {
			r.insumos = append(r.insumos[:i], r.insumos[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubInsumoRepo) FindStockTx(_ *gorm.DB, insumoID uuid.UUID, sucursal string) (*model.InsumoStock, error) {
	for _, st := range r.stocks {
		if st.InsumoID == insumoID && st.Sucursal == sucursal {
			c := *st
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInsumoRepo) CreateStockTx(_ *gorm.DB, st *model.InsumoStock) error {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	r.stocks = append(r.stocks, st)
	return nil
}

func (r *stubInsumoRepo) UpdateStockUnidadesTx(_ *gorm.DB, id uuid.UUID, unidades int) error {
	for _, st := range r.stocks {
		if st.ID == id {
			st.Unidades = unidades
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Productos ────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos []*model.Producto
	items     []*model.ComboItem
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos = append(r.productos, p)
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) FindByNombre(_ context.Context, nombre string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.Nombre == nombre {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context) ([]model.Producto, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error { return nil }

func (r *stubProductoRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	for _, p := range r.productos {
		if p.ID == id {
			p.Activo = false
		}
	}
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	for _, p := range r.productos {
		if p.ID == id {
			p.Activo = true
		}
	}
	return nil
}

func (r *stubProductoRepo) CountByInsumoID(_ context.Context, insumoID uuid.UUID) (int64, error) {
	var count int64
	for _, p := range r.productos {
		if p.InsumoID != nil && *p.InsumoID == insumoID && p.Activo {
			count++
		}
	}
	return count, nil
}

func (r *stubProductoRepo) CreateItem(_ context.Context, item *model.ComboItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items = append(r.items, item)
	return nil
}

func (r *stubProductoRepo) FindItemByID(_ context.Context, id uuid.UUID) (*model.ComboItem, error) {
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) ListItems(_ context.Context, comboID uuid.UUID) ([]model.ComboItem, error) {
	var out []model.ComboItem
	for _, it := range r.items {
		if it.ComboID == comboID {
			item := *it
			for _, p := range r.productos {
				if p.ID == it.ItemID {
					item.Item = p
				}
			}
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) DeleteItem(_ context.Context, id uuid.UUID) error {
	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			break
		}
	}
	return nil
}

// ── Ventas ───────────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas []*model.Venta
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ventas = append(r.ventas, v)
	return nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if filter.Sucursal != "" && v.Sucursal != filter.Sucursal {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) ListDesde(_ context.Context, sucursal string, desde *time.Time) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if v.Sucursal != sucursal {
			continue
		}
		if desde != nil && !v.Fecha.After(*desde) {
			continue
		}
		out = append(out, *v)
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Fecha.Before(out[i].Fecha) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *stubVentaRepo) ListRango(_ context.Context, desde, hasta time.Time, sucursal string) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if sucursal != "" && v.Sucursal != sucursal {
			continue
		}
		if v.Fecha.Before(desde) || v.Fecha.After(hasta) {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

// ── Cierres ──────────────────────────────────────────────────────────────────

type stubCierreRepo struct {
	cierres []*model.Cierre
}

var _ repository.CierreRepository = (*stubCierreRepo)(nil)

func (r *stubCierreRepo) Create(_ context.Context, c *model.Cierre) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cierres = append(r.cierres, c)
	return nil
}

func (r *stubCierreRepo) FindUltimo(_ context.Context, sucursal string) (*model.Cierre, error) {
	var ultimo *model.Cierre
	for _, c := range r.cierres {
		if c.Sucursal != sucursal {
			continue
		}
		if ultimo == nil || c.Fecha.After(ultimo.Fecha) {
			ultimo = c
		}
	}
	if ultimo == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return ultimo, nil
}

func (r *stubCierreRepo) List(_ context.Context, sucursal string) ([]model.Cierre, error) {
	var out []model.Cierre
	for _, c := range r.cierres {
		if sucursal != "" && c.Sucursal != sucursal {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

// ── Movimientos de stock ─────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []*model.MovimientoStock
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, sucursal string, limit int) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if sucursal != "" && m.Sucursal != sucursal {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

// ── Historial de precios ─────────────────────────────────────────────────────

type stubHistorialRepo struct {
	registros []*model.HistorialPrecio
}

var _ repository.HistorialPrecioRepository = (*stubHistorialRepo)(nil)

func (r *stubHistorialRepo) Create(_ context.Context, h *model.HistorialPrecio) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	h.CreatedAt = time.Now()
	r.registros = append(r.registros, h)
	return nil
}

func (r *stubHistorialRepo) ListByProducto(_ context.Context, productoID uuid.UUID) ([]model.HistorialPrecio, error) {
	var out []model.HistorialPrecio
	for _, h := range r.registros {
		if h.ProductoID == productoID {
			out = append(out, *h)
		}
	}
	return out, nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

const (
	sucursalMP = "Máximo Paz"
	sucursalTS = "Tristán Suárez"
)

type fixture struct {
	t *testing.T

	sucursales *stubSucursalRepo
	sabores    *stubSaborRepo
	insumos    *stubInsumoRepo
	productos  *stubProductoRepo
	ventas     *stubVentaRepo
	cierres    *stubCierreRepo
	movs       *stubMovimientoRepo
	historial  *stubHistorialRepo

	stockSvc    service.StockService
	comboSvc    service.ComboService
	ventaSvc    service.VentaService
	cierreSvc   service.CierreService
	catalogoSvc service.CatalogoService
	reporteSvc  service.ReporteService
}

// newFixture wires every service over in-memory repos and seeds the demo
// catalog: two branches, the standard price list and a handful of flavors
// with generous stock in Máximo Paz.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		t:          t,
		sucursales: &stubSucursalRepo{},
		sabores:    &stubSaborRepo{},
		insumos:    &stubInsumoRepo{},
		productos:  &stubProductoRepo{},
		ventas:     &stubVentaRepo{},
		cierres:    &stubCierreRepo{},
		movs:       &stubMovimientoRepo{},
		historial:  &stubHistorialRepo{},
	}

	f.stockSvc = service.NewStockService(f.sabores, f.insumos, f.sucursales, f.movs)
	f.comboSvc = service.NewComboService(f.productos)
	f.ventaSvc = service.NewVentaService(f.ventas, f.productos, f.sabores, f.insumos, f.comboSvc, f.stockSvc)
	f.cierreSvc = service.NewCierreService(f.cierres, f.ventas, f.stockSvc)
	f.catalogoSvc = service.NewCatalogoService(f.sabores, f.insumos, f.productos, f.sucursales, f.historial)
	f.reporteSvc = service.NewReporteService(f.ventas)

	ctx := context.Background()
	for _, nombre := range []string{sucursalMP, sucursalTS} {
		require.NoError(t, f.sucursales.Create(ctx, &model.Sucursal{Nombre: nombre, Activa: true}))
	}

	vaso1kg := f.seedInsumo("Vaso Térmico 1kg", 50)
	vaso14 := f.seedInsumo("Vaso Térmico 1/4kg", 80)
	vasito := f.seedInsumo("Vasito Colegial", 300)

	f.seedProducto(&model.Producto{Nombre: "1 kg", Precio: decimal.NewFromInt(12000), EsHelado: true, PesoGramos: 1000, InsumoID: &vaso1kg, Activo: true})
	f.seedProducto(&model.Producto{Nombre: "1/4 kg", Precio: decimal.NewFromInt(4000), EsHelado: true, PesoGramos: 250, InsumoID: &vaso14, Activo: true})
	f.seedProducto(&model.Producto{Nombre: "Vasito", Precio: decimal.NewFromInt(2000), EsHelado: true, PesoGramos: 100, MaxGustos: 2, InsumoID: &vasito, Activo: true})
	f.seedProducto(&model.Producto{Nombre: "Baño de Chocolate", Precio: decimal.NewFromInt(1500), Activo: true})
	promo := f.seedProducto(&model.Producto{Nombre: "Promo 2 Kilos", Precio: decimal.NewFromInt(22000), EsCombo: true, Activo: true})
	unKilo, err := f.productos.FindByNombre(ctx, "1 kg")
	require.NoError(t, err)
	require.NoError(t, f.productos.CreateItem(ctx, &model.ComboItem{ComboID: promo, ItemID: unKilo.ID, Cantidad: 2, Posicion: 0}))

	for _, nombre := range []string{"Chocolate", "Vainilla", "Dulce de Leche"} {
		require.NoError(t, f.sabores.Create(ctx, &model.Sabor{Nombre: nombre, Activo: true}))
		f.setSaborStock(nombre, sucursalMP, 5000)
	}

	return f
}

func (f *fixture) seedInsumo(nombre string, unidades int) uuid.UUID {
	f.t.Helper()
	insumo := &model.Insumo{Nombre: nombre}
	require.NoError(f.t, f.insumos.Create(context.Background(), insumo))
	for _, sucursal := range []string{sucursalMP, sucursalTS} {
		require.NoError(f.t, f.insumos.CreateStockTx(nil, &model.InsumoStock{
			InsumoID: insumo.ID, Sucursal: sucursal, Unidades: unidades,
		}))
	}
	return insumo.ID
}

func (f *fixture) seedProducto(p *model.Producto) uuid.UUID {
	f.t.Helper()
	require.NoError(f.t, f.productos.Create(context.Background(), p))
	return p.ID
}

func (f *fixture) setSaborStock(nombre, sucursal string, gramos float64) {
	f.t.Helper()
	sabor, err := f.sabores.FindByNombre(context.Background(), nombre)
	require.NoError(f.t, err)
	st, err := f.sabores.FindStockTx(nil, sabor.ID, sucursal)
	if err != nil {
		require.NoError(f.t, f.sabores.CreateStockTx(nil, &model.SaborStock{
			SaborID: sabor.ID, Sucursal: sucursal, Gramos: gramos,
		}))
		return
	}
	require.NoError(f.t, f.sabores.UpdateStockGramosTx(nil, st.ID, gramos))
}

func (f *fixture) saborGramos(nombre, sucursal string) float64 {
	f.t.Helper()
	sabor, err := f.sabores.FindByNombre(context.Background(), nombre)
	require.NoError(f.t, err)
	st, err := f.sabores.FindStockTx(nil, sabor.ID, sucursal)
	require.NoError(f.t, err)
	return st.Gramos
}

func (f *fixture) insumoUnidades(nombre, sucursal string) int {
	f.t.Helper()
	insumo, err := f.insumos.FindByNombre(context.Background(), nombre)
	require.NoError(f.t, err)
	st, err := f.insumos.FindStockTx(nil, insumo.ID, sucursal)
	require.NoError(f.t, err)
	return st.Unidades
}

func mustParseUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

// testConfig returns a config good enough for token generation in tests.
func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}
