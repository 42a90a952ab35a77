package service

import (
	"context"
	"fmt"

	"heladopos/internal/model"
	"heladopos/internal/repository"
)

// maxProfundidadCombo bounds recipe recursion. Legitimate promos nest two or
// three levels at most; anything deeper is treated as a cycle.
const maxProfundidadCombo = 8

// ComboService resolves a product into the leaf products a sale actually
// consumes. Leaves expand to themselves; combos expand to their recipe,
// recursively, repeating each child Cantidad times in recipe order.
type ComboService interface {
	Expandir(ctx context.Context, p *model.Producto) ([]*model.Producto, error)
}

type comboService struct {
	productoRepo repository.ProductoRepository
}

func NewComboService(productoRepo repository.ProductoRepository) ComboService {
	return &comboService{productoRepo: productoRepo}
}

func (s *comboService) Expandir(ctx context.Context, p *model.Producto) ([]*model.Producto, error) {
	return s.expandir(ctx, p, 0)
}

func (s *comboService) expandir(ctx context.Context, p *model.Producto, profundidad int) ([]*model.Producto, error) {
	if profundidad > maxProfundidadCombo {
		return nil, ErrComboCircular
	}
	if !p.EsCombo {
		return []*model.Producto{p}, nil
	}

	items, err := s.productoRepo.ListItems(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("listando receta de %q: %w", p.Nombre, err)
	}

	var hojas []*model.Producto
	for _, item := range items {
		hijo := item.Item
		if hijo == nil {
			hijo, err = s.productoRepo.FindByID(ctx, item.ItemID)
			if err != nil {
				return nil, fmt.Errorf("buscando item de receta de %q: %w", p.Nombre, err)
			}
		}
		for i := 0; i < item.Cantidad; i++ {
			sub, err := s.expandir(ctx, hijo, profundidad+1)
			if err != nil {
				return nil, err
			}
			hojas = append(hojas, sub...)
		}
	}
	return hojas, nil
}
