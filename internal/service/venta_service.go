package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"heladopos/internal/dto"
	"heladopos/internal/model"
	"heladopos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaService procesa carritos y consulta el historial de ventas.
//
// ProcesarCarrito is all-or-nothing: every lookup and the complete debit
// plan are validated before anything is written, and the writes themselves
// run in one transaction. A failing line leaves no trace of the others.
type VentaService interface {
	ProcesarCarrito(ctx context.Context, req dto.CarritoRequest, sucursal string) (*dto.VentaResponse, error)
	ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	ventaRepo    repository.VentaRepository
	productoRepo repository.ProductoRepository
	saborRepo    repository.SaborRepository
	insumoRepo   repository.InsumoRepository
	comboService ComboService
	stockService StockService
}

func NewVentaService(
	ventaRepo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	saborRepo repository.SaborRepository,
	insumoRepo repository.InsumoRepository,
	comboService ComboService,
	stockService StockService,
) VentaService {
	return &ventaService{
		ventaRepo:    ventaRepo,
		productoRepo: productoRepo,
		saborRepo:    saborRepo,
		insumoRepo:   insumoRepo,
		comboService: comboService,
		stockService: stockService,
	}
}

// lineaResuelta is a fully validated cart line, ready to price and debit.
type lineaResuelta struct {
	producto *model.Producto
	hojas    []*model.Producto
	sabores  []*model.Sabor
	detalle  string
	gramos   float64
}

func (s *ventaService) ProcesarCarrito(ctx context.Context, req dto.CarritoRequest, sucursal string) (*dto.VentaResponse, error) {
	if err := s.stockService.ValidarSucursal(ctx, sucursal); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, ErrCarritoVacio
	}

	// Resolve every line before touching stock. Flavor and product caches
	// avoid repeated lookups for repetitive carts.
	saborCache := make(map[string]*model.Sabor)
	insumoCache := make(map[uuid.UUID]*model.Insumo)

	lineas := make([]*lineaResuelta, 0, len(req.Items))
	plan := NewDebitoPlan()
	total := decimal.Zero

	for _, item := range req.Items {
		p, err := s.productoRepo.FindByNombre(ctx, item.Producto)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductoDesconocido, item.Producto)
			}
			return nil, err
		}
		if !p.Activo {
			return nil, fmt.Errorf("%w: %s", ErrProductoDesconocido, item.Producto)
		}

		hojas, err := s.comboService.Expandir(ctx, p)
		if err != nil {
			return nil, err
		}

		sabores := make([]*model.Sabor, 0, len(item.Sabores))
		for _, nombre := range item.Sabores {
			sabor, ok := saborCache[nombre]
			if !ok {
				sabor, err = s.saborRepo.FindByNombre(ctx, nombre)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, fmt.Errorf("%w: %s", ErrSaborDesconocido, nombre)
					}
					return nil, err
				}
				if !sabor.Activo {
					return nil, fmt.Errorf("%w: %s", ErrSaborDesconocido, nombre)
				}
				saborCache[nombre] = sabor
			}
			sabores = append(sabores, sabor)
		}

		linea := &lineaResuelta{producto: p, hojas: hojas, sabores: sabores}

		esHeladoCapaz := false
		for _, hoja := range hojas {
			if hoja.EsHelado {
				esHeladoCapaz = true
			}
			if hoja.EsHelado && hoja.MaxGustos > 0 && len(sabores) > hoja.MaxGustos {
				return nil, fmt.Errorf("%w: %s admite hasta %d gustos", ErrMaxGustosExcedido, hoja.Nombre, hoja.MaxGustos)
			}

			if hoja.InsumoID != nil {
				insumo, ok := insumoCache[*hoja.InsumoID]
				if !ok {
					insumo, err = s.insumoRepo.FindByID(ctx, *hoja.InsumoID)
					if err != nil {
						return nil, fmt.Errorf("buscando insumo de %q: %w", hoja.Nombre, err)
					}
					insumoCache[*hoja.InsumoID] = insumo
				}
				plan.AgregarInsumo(insumo.ID, insumo.Nombre, 1)
			}

			if hoja.EsHelado && len(sabores) > 0 && hoja.PesoGramos > 0 {
				porSabor := float64(hoja.PesoGramos) / float64(len(sabores))
				for _, sabor := range sabores {
					plan.AgregarSabor(sabor.ID, sabor.Nombre, porSabor)
				}
				linea.gramos += float64(hoja.PesoGramos)
			}
		}

		detalle, err := s.renderDetalle(ctx, p, item.Sabores, esHeladoCapaz)
		if err != nil {
			return nil, err
		}
		linea.detalle = detalle

		total = total.Add(p.Precio)
		lineas = append(lineas, linea)
	}

	partes := make([]string, 0, len(lineas))
	for _, l := range lineas {
		partes = append(partes, l.detalle)
	}

	venta := &model.Venta{
		ID:        uuid.New(),
		Fecha:     time.Now(),
		Total:     total,
		MedioPago: req.MedioPago,
		Detalle:   strings.Join(partes, "; "),
		Sucursal:  sucursal,
	}
	for _, l := range lineas {
		nombres := make([]string, 0, len(l.sabores))
		for _, sb := range l.sabores {
			nombres = append(nombres, sb.Nombre)
		}
		venta.Items = append(venta.Items, model.VentaItem{
			VentaID:         venta.ID,
			Producto:        l.producto.Nombre,
			Precio:          l.producto.Precio,
			Sabores:         nombres,
			GramosDebitados: l.gramos,
		})
	}

	err := runTx(ctx, s.ventaRepo.DB(), func(tx *gorm.DB) error {
		if err := s.stockService.AplicarDebitosTx(tx, plan, sucursal, venta.ID); err != nil {
			return err
		}
		return s.ventaRepo.CreateTx(tx, venta)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("sucursal", sucursal).
		Str("total", total.StringFixed(2)).
		Int("items", len(lineas)).
		Msg("venta registrada")
	return ventaToResponse(venta), nil
}

// renderDetalle bakes the human-readable line: the product name, the direct
// recipe of a combo in brackets, and the chosen flavors in parentheses. A
// frozen-dessert line sold without flavors gets an explicit marker so the
// ticket shows the omission was deliberate.
func (s *ventaService) renderDetalle(ctx context.Context, p *model.Producto, sabores []string, esHeladoCapaz bool) (string, error) {
	var b strings.Builder
	b.WriteString(p.Nombre)

	if p.EsCombo {
		items, err := s.productoRepo.ListItems(ctx, p.ID)
		if err != nil {
			return "", err
		}
		hijos := make([]string, 0, len(items))
		for _, it := range items {
			nombre := ""
			if it.Item != nil {
				nombre = it.Item.Nombre
			} else {
				hijo, err := s.productoRepo.FindByID(ctx, it.ItemID)
				if err != nil {
					return "", err
				}
				nombre = hijo.Nombre
			}
			hijos = append(hijos, fmt.Sprintf("%dx %s", it.Cantidad, nombre))
		}
		if len(hijos) > 0 {
			b.WriteString(" [" + strings.Join(hijos, ", ") + "]")
		}
	}

	switch {
	case len(sabores) > 0:
		b.WriteString(" (" + strings.Join(sabores, ", ") + ")")
	case esHeladoCapaz:
		b.WriteString(" (sin gustos)")
	}
	return b.String(), nil
}

func (s *ventaService) ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.ventaRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, dto.ItemVentaResponse{
			Producto:        it.Producto,
			Precio:          it.Precio,
			Sabores:         it.Sabores,
			GramosDebitados: it.GramosDebitados,
		})
	}
	return &dto.VentaResponse{
		ID:        v.ID.String(),
		Fecha:     v.Fecha.Format(time.RFC3339),
		Total:     v.Total,
		MedioPago: v.MedioPago,
		Detalle:   v.Detalle,
		Sucursal:  v.Sucursal,
		Items:     items,
	}
}
