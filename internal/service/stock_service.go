package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"heladopos/internal/dto"
	"heladopos/internal/model"
	"heladopos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DebitoPlan accumulates everything a cart needs to remove from one branch's
// stock: grams per flavor and units per supply. It is built in full before a
// single row is touched, so a shortfall anywhere aborts with nothing written.
type DebitoPlan struct {
	Sabores map[uuid.UUID]*DebitoSabor
	Insumos map[uuid.UUID]*DebitoInsumo
}

type DebitoSabor struct {
	SaborID uuid.UUID
	Nombre  string
	Gramos  float64
}

type DebitoInsumo struct {
	InsumoID uuid.UUID
	Nombre   string
	Unidades int
}

func NewDebitoPlan() *DebitoPlan {
	return &DebitoPlan{
		Sabores: make(map[uuid.UUID]*DebitoSabor),
		Insumos: make(map[uuid.UUID]*DebitoInsumo),
	}
}

func (p *DebitoPlan) AgregarSabor(saborID uuid.UUID, nombre string, gramos float64) {
	if d, ok := p.Sabores[saborID]; ok {
		d.Gramos += gramos
		return
	}
	p.Sabores[saborID] = &DebitoSabor{SaborID: saborID, Nombre: nombre, Gramos: gramos}
}

func (p *DebitoPlan) AgregarInsumo(insumoID uuid.UUID, nombre string, unidades int) {
	if d, ok := p.Insumos[insumoID]; ok {
		d.Unidades += unidades
		return
	}
	p.Insumos[insumoID] = &DebitoInsumo{InsumoID: insumoID, Nombre: nombre, Unidades: unidades}
}

func (p *DebitoPlan) Vacio() bool { return len(p.Sabores) == 0 && len(p.Insumos) == 0 }

// StockService maneja reposiciones, correcciones y los débitos de venta
// sobre el stock por sucursal, dejando un MovimientoStock por cada cambio.
type StockService interface {
	ReponerSabor(ctx context.Context, req dto.ReponerSaborRequest) (*dto.StockSaborResponse, error)
	CorregirSabor(ctx context.Context, req dto.CorregirSaborRequest) (*dto.StockSaborResponse, error)
	ReponerInsumo(ctx context.Context, req dto.ReponerInsumoRequest) (*dto.StockInsumoResponse, error)
	ListarMovimientos(ctx context.Context, sucursal string, limit int) ([]dto.MovimientoStockResponse, error)
	ValidarSucursal(ctx context.Context, nombre string) error

	// AplicarDebitosTx validates the ENTIRE plan against current stock —
	// taking row locks as it reads — and only then writes. Runs inside the
	// sale's transaction; ventaID links the audit rows to the sale.
	AplicarDebitosTx(tx *gorm.DB, plan *DebitoPlan, sucursal string, ventaID uuid.UUID) error
}

type stockService struct {
	saborRepo      repository.SaborRepository
	insumoRepo     repository.InsumoRepository
	sucursalRepo   repository.SucursalRepository
	movimientoRepo repository.MovimientoStockRepository
}

func NewStockService(
	saborRepo repository.SaborRepository,
	insumoRepo repository.InsumoRepository,
	sucursalRepo repository.SucursalRepository,
	movimientoRepo repository.MovimientoStockRepository,
) StockService {
	return &stockService{
		saborRepo:      saborRepo,
		insumoRepo:     insumoRepo,
		sucursalRepo:   sucursalRepo,
		movimientoRepo: movimientoRepo,
	}
}

func (s *stockService) ValidarSucursal(ctx context.Context, nombre string) error {
	if _, err := s.sucursalRepo.FindByNombre(ctx, nombre); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrSucursalDesconocida, nombre)
		}
		return err
	}
	return nil
}

func (s *stockService) ReponerSabor(ctx context.Context, req dto.ReponerSaborRequest) (*dto.StockSaborResponse, error) {
	if err := s.ValidarSucursal(ctx, req.Sucursal); err != nil {
		return nil, err
	}
	sabor, err := s.saborRepo.FindByNombre(ctx, req.Sabor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSaborDesconocido, req.Sabor)
		}
		return nil, err
	}

	var nuevo float64
	err = runTx(ctx, s.saborRepo.DB(), func(tx *gorm.DB) error {
		st, err := s.saborRepo.FindStockTx(tx, sabor.ID, req.Sucursal)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			st = &model.SaborStock{SaborID: sabor.ID, Sucursal: req.Sucursal}
			if err := s.saborRepo.CreateStockTx(tx, st); err != nil {
				return err
			}
		}
		nuevo = st.Gramos + req.Gramos
		if err := s.saborRepo.UpdateStockGramosTx(tx, st.ID, nuevo); err != nil {
			return err
		}
		return s.movimientoRepo.CreateTx(tx, &model.MovimientoStock{
			Recurso:       model.RecursoSabor,
			Nombre:        sabor.Nombre,
			Sucursal:      req.Sucursal,
			Tipo:          "reposicion",
			Cantidad:      req.Gramos,
			StockAnterior: st.Gramos,
			StockNuevo:    nuevo,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("sabor", sabor.Nombre).Str("sucursal", req.Sucursal).
		Float64("gramos", req.Gramos).Msg("stock de sabor repuesto")
	return &dto.StockSaborResponse{Sabor: sabor.Nombre, Sucursal: req.Sucursal, Gramos: nuevo}, nil
}

func (s *stockService) CorregirSabor(ctx context.Context, req dto.CorregirSaborRequest) (*dto.StockSaborResponse, error) {
	if err := s.ValidarSucursal(ctx, req.Sucursal); err != nil {
		return nil, err
	}
	sabor, err := s.saborRepo.FindByNombre(ctx, req.Sabor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSaborDesconocido, req.Sabor)
		}
		return nil, err
	}

	err = runTx(ctx, s.saborRepo.DB(), func(tx *gorm.DB) error {
		st, err := s.saborRepo.FindStockTx(tx, sabor.ID, req.Sucursal)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			st = &model.SaborStock{SaborID: sabor.ID, Sucursal: req.Sucursal}
			if err := s.saborRepo.CreateStockTx(tx, st); err != nil {
				return err
			}
		}
		if err := s.saborRepo.UpdateStockGramosTx(tx, st.ID, req.Gramos); err != nil {
			return err
		}
		return s.movimientoRepo.CreateTx(tx, &model.MovimientoStock{
			Recurso:       model.RecursoSabor,
			Nombre:        sabor.Nombre,
			Sucursal:      req.Sucursal,
			Tipo:          "correccion",
			Cantidad:      req.Gramos - st.Gramos,
			StockAnterior: st.Gramos,
			StockNuevo:    req.Gramos,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("sabor", sabor.Nombre).Str("sucursal", req.Sucursal).
		Float64("gramos", req.Gramos).Msg("stock de sabor corregido por conteo físico")
	return &dto.StockSaborResponse{Sabor: sabor.Nombre, Sucursal: req.Sucursal, Gramos: req.Gramos}, nil
}

func (s *stockService) ReponerInsumo(ctx context.Context, req dto.ReponerInsumoRequest) (*dto.StockInsumoResponse, error) {
	if err := s.ValidarSucursal(ctx, req.Sucursal); err != nil {
		return nil, err
	}
	insumoID, err := uuid.Parse(req.InsumoID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInsumoDesconocido, req.InsumoID)
	}
	insumo, err := s.insumoRepo.FindByID(ctx, insumoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInsumoDesconocido, req.InsumoID)
		}
		return nil, err
	}

	var nuevo int
	err = runTx(ctx, s.insumoRepo.DB(), func(tx *gorm.DB) error {
		st, err := s.insumoRepo.FindStockTx(tx, insumo.ID, req.Sucursal)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			st = &model.InsumoStock{InsumoID: insumo.ID, Sucursal: req.Sucursal}
			if err := s.insumoRepo.CreateStockTx(tx, st); err != nil {
				return err
			}
		}
		nuevo = st.Unidades + req.Unidades
		if err := s.insumoRepo.UpdateStockUnidadesTx(tx, st.ID, nuevo); err != nil {
			return err
		}
		return s.movimientoRepo.CreateTx(tx, &model.MovimientoStock{
			Recurso:       model.RecursoInsumo,
			Nombre:        insumo.Nombre,
			Sucursal:      req.Sucursal,
			Tipo:          "reposicion",
			Cantidad:      float64(req.Unidades),
			StockAnterior: float64(st.Unidades),
			StockNuevo:    float64(nuevo),
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("insumo", insumo.Nombre).Str("sucursal", req.Sucursal).
		Int("unidades", req.Unidades).Msg("stock de insumo repuesto")
	return &dto.StockInsumoResponse{Insumo: insumo.Nombre, Sucursal: req.Sucursal, Unidades: nuevo}, nil
}

func (s *stockService) ListarMovimientos(ctx context.Context, sucursal string, limit int) ([]dto.MovimientoStockResponse, error) {
	movs, err := s.movimientoRepo.List(ctx, sucursal, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoStockResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovimientoStockResponse{
			Recurso:       m.Recurso,
			Nombre:        m.Nombre,
			Sucursal:      m.Sucursal,
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Fecha:         m.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// saborPendiente / insumoPendiente hold the validated new values between the
// read phase and the write phase of AplicarDebitosTx.
type saborPendiente struct {
	stockID  uuid.UUID
	nombre   string
	anterior float64
	nuevo    float64
	debito   float64
}

type insumoPendiente struct {
	stockID  uuid.UUID
	nombre   string
	anterior int
	nuevo    int
	debito   int
}

func (s *stockService) AplicarDebitosTx(tx *gorm.DB, plan *DebitoPlan, sucursal string, ventaID uuid.UUID) error {
	// Phase 1: lock and validate every row. Iteration follows sorted UUIDs
	// so two concurrent carts take locks in the same order.
	saborIDs := make([]uuid.UUID, 0, len(plan.Sabores))
	for id := range plan.Sabores {
		saborIDs = append(saborIDs, id)
	}
	sort.Slice(saborIDs, func(i, j int) bool { return saborIDs[i].String() < saborIDs[j].String() })

	insumoIDs := make([]uuid.UUID, 0, len(plan.Insumos))
	for id := range plan.Insumos {
		insumoIDs = append(insumoIDs, id)
	}
	sort.Slice(insumoIDs, func(i, j int) bool { return insumoIDs[i].String() < insumoIDs[j].String() })

	sabPend := make([]saborPendiente, 0, len(saborIDs))
	for _, id := range saborIDs {
		d := plan.Sabores[id]
		st, err := s.saborRepo.FindStockTx(tx, id, sucursal)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &StockInsuficienteError{
					Recurso: model.RecursoSabor, Nombre: d.Nombre, Sucursal: sucursal,
					Necesario: d.Gramos, Disponible: 0,
				}
			}
			return err
		}
		if st.Gramos < d.Gramos {
			return &StockInsuficienteError{
				Recurso: model.RecursoSabor, Nombre: d.Nombre, Sucursal: sucursal,
				Necesario: d.Gramos, Disponible: st.Gramos,
			}
		}
		sabPend = append(sabPend, saborPendiente{
			stockID: st.ID, nombre: d.Nombre,
			anterior: st.Gramos, nuevo: st.Gramos - d.Gramos, debito: d.Gramos,
		})
	}

	insPend := make([]insumoPendiente, 0, len(insumoIDs))
	for _, id := range insumoIDs {
		d := plan.Insumos[id]
		st, err := s.insumoRepo.FindStockTx(tx, id, sucursal)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &StockInsuficienteError{
					Recurso: model.RecursoInsumo, Nombre: d.Nombre, Sucursal: sucursal,
					Necesario: float64(d.Unidades), Disponible: 0,
				}
			}
			return err
		}
		if st.Unidades < d.Unidades {
			return &StockInsuficienteError{
				Recurso: model.RecursoInsumo, Nombre: d.Nombre, Sucursal: sucursal,
				Necesario: float64(d.Unidades), Disponible: float64(st.Unidades),
			}
		}
		insPend = append(insPend, insumoPendiente{
			stockID: st.ID, nombre: d.Nombre,
			anterior: st.Unidades, nuevo: st.Unidades - d.Unidades, debito: d.Unidades,
		})
	}

	// Phase 2: nothing can fail for domain reasons past this point.
	for _, p := range sabPend {
		if err := s.saborRepo.UpdateStockGramosTx(tx, p.stockID, p.nuevo); err != nil {
			return err
		}
		if err := s.movimientoRepo.CreateTx(tx, &model.MovimientoStock{
			Recurso:       model.RecursoSabor,
			Nombre:        p.nombre,
			Sucursal:      sucursal,
			Tipo:          "venta",
			Cantidad:      -p.debito,
			StockAnterior: p.anterior,
			StockNuevo:    p.nuevo,
			ReferenciaID:  &ventaID,
		}); err != nil {
			return err
		}
	}
	for _, p := range insPend {
		if err := s.insumoRepo.UpdateStockUnidadesTx(tx, p.stockID, p.nuevo); err != nil {
			return err
		}
		if err := s.movimientoRepo.CreateTx(tx, &model.MovimientoStock{
			Recurso:       model.RecursoInsumo,
			Nombre:        p.nombre,
			Sucursal:      sucursal,
			Tipo:          "venta",
			Cantidad:      -float64(p.debito),
			StockAnterior: float64(p.anterior),
			StockNuevo:    float64(p.nuevo),
			ReferenciaID:  &ventaID,
		}); err != nil {
			return err
		}
	}
	return nil
}
