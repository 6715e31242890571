// Package catalog administra el catálogo de productos.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

// ProductUseCase altas, consultas y actualizaciones parciales de productos.
type ProductUseCase struct {
	products repository.ProductRepository
	batches  repository.BatchRepository
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	batches repository.BatchRepository,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{products: products, batches: batches, log: log}
}

// Create da de alta un producto. El SKU es único; repetirlo falla con
// ErrConflict.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) || in.Cost.LessThan(decimal.Zero) || in.ReorderLevel < 0 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.products.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		SKU:             in.SKU,
		Name:            in.Name,
		UnitMeasure:     in.UnitMeasure,
		Price:           in.Price,
		Cost:            in.Cost,
		ReorderLevel:    in.ReorderLevel,
		ConversionRatio: in.ConversionRatio,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", product.ID).
		Str("sku", product.SKU).
		Msg("producto creado")

	return uc.toResponse(product)
}

// GetByID devuelve un producto con su stock disponible.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(product)
}

// Patch aplica una actualización parcial: solo los campos presentes cambian.
func (uc *ProductUseCase) Patch(ctx context.Context, id string, in dto.PatchProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	patch := entity.ProductPatch{
		Name:            in.Name,
		UnitMeasure:     in.UnitMeasure,
		Price:           in.Price,
		Cost:            in.Cost,
		ReorderLevel:    in.ReorderLevel,
		ConversionRatio: in.ConversionRatio,
	}
	if (patch.Price != nil && patch.Price.LessThan(decimal.Zero)) ||
		(patch.Cost != nil && patch.Cost.LessThan(decimal.Zero)) ||
		(patch.ReorderLevel != nil && *patch.ReorderLevel < 0) {
		return nil, domain.ErrInvalidInput
	}
	patch.Apply(product, time.Now())

	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	return uc.toResponse(product)
}

// List productos paginados, con stock disponible por producto.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.products.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp, err := uc.toResponse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (uc *ProductUseCase) toResponse(p *entity.Product) (*dto.ProductResponse, error) {
	onHand, err := uc.batches.TotalOnHand(p.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		UnitMeasure:     p.UnitMeasure,
		Price:           p.Price,
		Cost:            p.Cost,
		ReorderLevel:    p.ReorderLevel,
		ConversionRatio: p.EffectiveConversionRatio(),
		OnHand:          onHand,
	}, nil
}
