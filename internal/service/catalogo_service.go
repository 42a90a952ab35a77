package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"heladopos/internal/dto"
	"heladopos/internal/model"
	"heladopos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CatalogoService administra sabores, insumos, productos, promos y
// sucursales. Names are unique per entity kind; duplicates are rejected
// before hitting the database constraint so the caller gets a clean error.
type CatalogoService interface {
	// Sabores
	CrearSabor(ctx context.Context, req dto.CrearSaborRequest) (*dto.SaborResponse, error)
	ListarSabores(ctx context.Context, soloActivos bool) ([]dto.SaborResponse, error)
	CambiarEstadoSabor(ctx context.Context, nombre string, activo bool) error

	// Insumos
	CrearInsumo(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error)
	ListarInsumos(ctx context.Context) ([]dto.InsumoResponse, error)
	EliminarInsumo(ctx context.Context, id uuid.UUID) error

	// Productos
	CrearProducto(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ListarProductos(ctx context.Context) ([]dto.ProductoResponse, error)
	ActualizarPrecio(ctx context.Context, id uuid.UUID, req dto.ActualizarPrecioRequest) (*dto.ProductoResponse, error)
	DesactivarProducto(ctx context.Context, id uuid.UUID) error
	ReactivarProducto(ctx context.Context, id uuid.UUID) error
	ListarHistorialPrecios(ctx context.Context, productoID uuid.UUID) ([]dto.HistorialPrecioResponse, error)

	// Promos
	AgregarItemCombo(ctx context.Context, comboID uuid.UUID, req dto.AgregarItemComboRequest) (*dto.ItemComboResponse, error)
	ListarItemsCombo(ctx context.Context, comboID uuid.UUID) ([]dto.ItemComboResponse, error)
	EliminarItemCombo(ctx context.Context, itemID uuid.UUID) error

	// Sucursales
	CrearSucursal(ctx context.Context, nombre string) (*model.Sucursal, error)
	ListarSucursales(ctx context.Context) ([]model.Sucursal, error)
}

type catalogoService struct {
	saborRepo     repository.SaborRepository
	insumoRepo    repository.InsumoRepository
	productoRepo  repository.ProductoRepository
	sucursalRepo  repository.SucursalRepository
	historialRepo repository.HistorialPrecioRepository
}

func NewCatalogoService(
	saborRepo repository.SaborRepository,
	insumoRepo repository.InsumoRepository,
	productoRepo repository.ProductoRepository,
	sucursalRepo repository.SucursalRepository,
	historialRepo repository.HistorialPrecioRepository,
) CatalogoService {
	return &catalogoService{
		saborRepo:     saborRepo,
		insumoRepo:    insumoRepo,
		productoRepo:  productoRepo,
		sucursalRepo:  sucursalRepo,
		historialRepo: historialRepo,
	}
}

// ─── Sabores ─────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearSabor(ctx context.Context, req dto.CrearSaborRequest) (*dto.SaborResponse, error) {
	if _, err := s.saborRepo.FindByNombre(ctx, req.Nombre); err == nil {
		return nil, fmt.Errorf("%w: sabor %s", ErrNombreDuplicado, req.Nombre)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sabor := &model.Sabor{Nombre: req.Nombre, Activo: true}
	if err := s.saborRepo.Create(ctx, sabor); err != nil {
		return nil, err
	}
	log.Info().Str("sabor", sabor.Nombre).Msg("sabor creado")
	return saborToResponse(sabor), nil
}

func (s *catalogoService) ListarSabores(ctx context.Context, soloActivos bool) ([]dto.SaborResponse, error) {
	sabores, err := s.saborRepo.List(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaborResponse, 0, len(sabores))
	for i := range sabores {
		out = append(out, *saborToResponse(&sabores[i]))
	}
	return out, nil
}

func (s *catalogoService) CambiarEstadoSabor(ctx context.Context, nombre string, activo bool) error {
	sabor, err := s.saborRepo.FindByNombre(ctx, nombre)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrSaborDesconocido, nombre)
		}
		return err
	}
	sabor.Activo = activo
	return s.saborRepo.Update(ctx, sabor)
}

// ─── Insumos ─────────────────────────────────────────────────────────────────

func (s *catalogoService) CrearInsumo(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error) {
	if _, err := s.insumoRepo.FindByNombre(ctx, req.Nombre); err == nil {
		return nil, fmt.Errorf("%w: insumo %s", ErrNombreDuplicado, req.Nombre)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	insumo := &model.Insumo{Nombre: req.Nombre}
	if err := s.insumoRepo.Create(ctx, insumo); err != nil {
		return nil, err
	}
	log.Info().Str("insumo", insumo.Nombre).Msg("insumo creado")
	return insumoToResponse(insumo), nil
}

func (s *catalogoService) ListarInsumos(ctx context.Context) ([]dto.InsumoResponse, error) {
	insumos, err := s.insumoRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InsumoResponse, 0, len(insumos))
	for i := range insumos {
		out = append(out, *insumoToResponse(&insumos[i]))
	}
	return out, nil
}

func (s *catalogoService) EliminarInsumo(ctx context.Context, id uuid.UUID) error {
	if _, err := s.insumoRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrInsumoDesconocido, id)
		}
		return err
	}
	count, err := s.productoRepo.CountByInsumoID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d productos activos usan el insumo", ErrConflictoReferencial, count)
	}
	return s.insumoRepo.Delete(ctx, id)
}

// ─── Productos ───────────────────────────────────────────────────────────────

func (s *catalogoService) CrearProducto(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if _, err := s.productoRepo.FindByNombre(ctx, req.Nombre); err == nil {
		return nil, fmt.Errorf("%w: producto %s", ErrNombreDuplicado, req.Nombre)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := &model.Producto{
		Nombre:     req.Nombre,
		Precio:     req.Precio,
		EsHelado:   req.EsHelado,
		PesoGramos: req.PesoGramos,
		MaxGustos:  req.MaxGustos,
		EsCombo:    req.EsCombo,
		Activo:     true,
	}

	// A combo carries no mass or supply of its own; only its leaves do.
	if p.EsCombo {
		p.EsHelado = false
		p.PesoGramos = 0
		p.MaxGustos = 0
	} else if req.InsumoID != nil {
		insumoID, err := uuid.Parse(*req.InsumoID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInsumoDesconocido, *req.InsumoID)
		}
		if _, err := s.insumoRepo.FindByID(ctx, insumoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrInsumoDesconocido, *req.InsumoID)
			}
			return nil, err
		}
		p.InsumoID = &insumoID
	}

	if err := s.productoRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	log.Info().Str("producto", p.Nombre).Bool("combo", p.EsCombo).Msg("producto creado")
	return productoToResponse(p), nil
}

func (s *catalogoService) ListarProductos(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.productoRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, *productoToResponse(&productos[i]))
	}
	return out, nil
}

func (s *catalogoService) ActualizarPrecio(ctx context.Context, id uuid.UUID, req dto.ActualizarPrecioRequest) (*dto.ProductoResponse, error) {
	p, err := s.productoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductoDesconocido, id)
		}
		return nil, err
	}

	anterior := p.Precio
	p.Precio = req.Precio
	if err := s.productoRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	if err := s.historialRepo.Create(ctx, &model.HistorialPrecio{
		ProductoID:    p.ID,
		PrecioAntes:   anterior,
		PrecioDespues: req.Precio,
	}); err != nil {
		return nil, err
	}

	log.Info().Str("producto", p.Nombre).
		Str("antes", anterior.StringFixed(2)).
		Str("despues", req.Precio.StringFixed(2)).
		Msg("precio actualizado")
	return productoToResponse(p), nil
}

func (s *catalogoService) DesactivarProducto(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productoRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrProductoDesconocido, id)
		}
		return err
	}
	return s.productoRepo.Desactivar(ctx, id)
}

func (s *catalogoService) ReactivarProducto(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productoRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrProductoDesconocido, id)
		}
		return err
	}
	return s.productoRepo.Reactivar(ctx, id)
}

func (s *catalogoService) ListarHistorialPrecios(ctx context.Context, productoID uuid.UUID) ([]dto.HistorialPrecioResponse, error) {
	historial, err := s.historialRepo.ListByProducto(ctx, productoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistorialPrecioResponse, 0, len(historial))
	for _, h := range historial {
		out = append(out, dto.HistorialPrecioResponse{
			ProductoID:    h.ProductoID.String(),
			PrecioAntes:   h.PrecioAntes,
			PrecioDespues: h.PrecioDespues,
			Fecha:         h.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// ─── Promos ──────────────────────────────────────────────────────────────────

func (s *catalogoService) AgregarItemCombo(ctx context.Context, comboID uuid.UUID, req dto.AgregarItemComboRequest) (*dto.ItemComboResponse, error) {
	combo, err := s.productoRepo.FindByID(ctx, comboID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductoDesconocido, comboID)
		}
		return nil, err
	}
	if !combo.EsCombo {
		return nil, fmt.Errorf("%q no es una promo", combo.Nombre)
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProductoDesconocido, req.ItemID)
	}
	if itemID == comboID {
		return nil, fmt.Errorf("%w: no puedes agregar la promo dentro de sí misma", ErrComboCircular)
	}
	hijo, err := s.productoRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductoDesconocido, req.ItemID)
		}
		return nil, err
	}

	existentes, err := s.productoRepo.ListItems(ctx, comboID)
	if err != nil {
		return nil, err
	}

	item := &model.ComboItem{
		ComboID:  comboID,
		ItemID:   hijo.ID,
		Cantidad: req.Cantidad,
		Posicion: len(existentes),
	}
	if err := s.productoRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	log.Info().Str("promo", combo.Nombre).Str("item", hijo.Nombre).
		Int("cantidad", req.Cantidad).Msg("item agregado a la promo")
	return &dto.ItemComboResponse{
		ID:       item.ID.String(),
		ItemID:   hijo.ID.String(),
		Producto: hijo.Nombre,
		Cantidad: item.Cantidad,
	}, nil
}

func (s *catalogoService) ListarItemsCombo(ctx context.Context, comboID uuid.UUID) ([]dto.ItemComboResponse, error) {
	items, err := s.productoRepo.ListItems(ctx, comboID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemComboResponse, 0, len(items))
	for _, it := range items {
		nombre := ""
		if it.Item != nil {
			nombre = it.Item.Nombre
		}
		out = append(out, dto.ItemComboResponse{
			ID:       it.ID.String(),
			ItemID:   it.ItemID.String(),
			Producto: nombre,
			Cantidad: it.Cantidad,
		})
	}
	return out, nil
}

func (s *catalogoService) EliminarItemCombo(ctx context.Context, itemID uuid.UUID) error {
	if _, err := s.productoRepo.FindItemByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: item %s", ErrProductoDesconocido, itemID)
		}
		return err
	}
	return s.productoRepo.DeleteItem(ctx, itemID)
}

// ─── Sucursales ──────────────────────────────────────────────────────────────

func (s *catalogoService) CrearSucursal(ctx context.Context, nombre string) (*model.Sucursal, error) {
	if _, err := s.sucursalRepo.FindByNombre(ctx, nombre); err == nil {
		return nil, fmt.Errorf("%w: sucursal %s", ErrNombreDuplicado, nombre)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	sucursal := &model.Sucursal{Nombre: nombre, Activa: true}
	if err := s.sucursalRepo.Create(ctx, sucursal); err != nil {
		return nil, err
	}
	log.Info().Str("sucursal", nombre).Msg("sucursal creada")
	return sucursal, nil
}

func (s *catalogoService) ListarSucursales(ctx context.Context) ([]model.Sucursal, error) {
	return s.sucursalRepo.List(ctx)
}

// ─── Mappers ─────────────────────────────────────────────────────────────────

func saborToResponse(sb *model.Sabor) *dto.SaborResponse {
	stocks := make(map[string]float64, len(sb.Stocks))
	for _, st := range sb.Stocks {
		stocks[st.Sucursal] = st.Gramos
	}
	return &dto.SaborResponse{ID: sb.ID.String(), Nombre: sb.Nombre, Activo: sb.Activo, Stocks: stocks}
}

func insumoToResponse(i *model.Insumo) *dto.InsumoResponse {
	stocks := make(map[string]int, len(i.Stocks))
	for _, st := range i.Stocks {
		stocks[st.Sucursal] = st.Unidades
	}
	return &dto.InsumoResponse{ID: i.ID.String(), Nombre: i.Nombre, Stocks: stocks}
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:         p.ID.String(),
		Nombre:     p.Nombre,
		Precio:     p.Precio,
		EsHelado:   p.EsHelado,
		PesoGramos: p.PesoGramos,
		MaxGustos:  p.MaxGustos,
		EsCombo:    p.EsCombo,
		Activo:     p.Activo,
	}
	if p.InsumoID != nil {
		id := p.InsumoID.String()
		resp.InsumoID = &id
	}
	return resp
}
