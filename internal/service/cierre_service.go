package service

import (
	"context"
	"errors"
	"time"

	"heladopos/internal/dto"
	"heladopos/internal/model"
	"heladopos/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CierreService maneja el cierre de caja por sucursal. The last cierre's
// Fecha is a high-water mark: the open window is every sale STRICTLY after
// it, and closing never mutates the sales themselves.
type CierreService interface {
	VentanaActual(ctx context.Context, sucursal string) (*dto.VentanaResponse, error)
	Cerrar(ctx context.Context, sucursal string) (*dto.CierreResponse, error)
	ListarCierres(ctx context.Context, sucursal string) ([]dto.CierreResponse, error)
}

type cierreService struct {
	cierreRepo   repository.CierreRepository
	ventaRepo    repository.VentaRepository
	stockService StockService
}

func NewCierreService(cierreRepo repository.CierreRepository, ventaRepo repository.VentaRepository, stockService StockService) CierreService {
	return &cierreService{cierreRepo: cierreRepo, ventaRepo: ventaRepo, stockService: stockService}
}

// ventanaAbierta returns the sales of the branch's open window and the start
// mark (nil when the branch has never closed).
func (s *cierreService) ventanaAbierta(ctx context.Context, sucursal string) ([]model.Venta, *time.Time, error) {
	var desde *time.Time
	ultimo, err := s.cierreRepo.FindUltimo(ctx, sucursal)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
	} else {
		desde = &ultimo.Fecha
	}

	ventas, err := s.ventaRepo.ListDesde(ctx, sucursal, desde)
	if err != nil {
		return nil, nil, err
	}
	return ventas, desde, nil
}

func (s *cierreService) VentanaActual(ctx context.Context, sucursal string) (*dto.VentanaResponse, error) {
	if err := s.stockService.ValidarSucursal(ctx, sucursal); err != nil {
		return nil, err
	}
	ventas, desde, err := s.ventanaAbierta(ctx, sucursal)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		total = total.Add(ventas[i].Total)
		data = append(data, *ventaToResponse(&ventas[i]))
	}

	resp := &dto.VentanaResponse{
		Sucursal:       sucursal,
		CantidadVentas: len(ventas),
		Total:          total,
		Ventas:         data,
	}
	if desde != nil {
		f := desde.Format(time.RFC3339)
		resp.Desde = &f
	}
	return resp, nil
}

func (s *cierreService) Cerrar(ctx context.Context, sucursal string) (*dto.CierreResponse, error) {
	if err := s.stockService.ValidarSucursal(ctx, sucursal); err != nil {
		return nil, err
	}
	ventas, _, err := s.ventanaAbierta(ctx, sucursal)
	if err != nil {
		return nil, err
	}
	if len(ventas) == 0 {
		return nil, ErrNadaQueCerrar
	}

	total := decimal.Zero
	for i := range ventas {
		total = total.Add(ventas[i].Total)
	}

	// The mark is the newest sale's Fecha, not now(): a sale registered
	// while the cierre runs stays outside this window and opens the next one.
	cierre := &model.Cierre{
		Sucursal:       sucursal,
		Fecha:          ventas[len(ventas)-1].Fecha,
		Total:          total,
		CantidadVentas: len(ventas),
	}
	if err := s.cierreRepo.Create(ctx, cierre); err != nil {
		return nil, err
	}

	log.Info().
		Str("sucursal", sucursal).
		Str("total", total.StringFixed(2)).
		Int("ventas", len(ventas)).
		Msg("caja cerrada")
	return cierreToResponse(cierre), nil
}

func (s *cierreService) ListarCierres(ctx context.Context, sucursal string) ([]dto.CierreResponse, error) {
	cierres, err := s.cierreRepo.List(ctx, sucursal)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CierreResponse, 0, len(cierres))
	for i := range cierres {
		out = append(out, *cierreToResponse(&cierres[i]))
	}
	return out, nil
}

func cierreToResponse(c *model.Cierre) *dto.CierreResponse {
	return &dto.CierreResponse{
		ID:             c.ID.String(),
		Sucursal:       c.Sucursal,
		Fecha:          c.Fecha.Format(time.RFC3339),
		Total:          c.Total,
		CantidadVentas: c.CantidadVentas,
	}
}
