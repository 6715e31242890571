// Package inventory orquesta ajustes manuales de stock, conversiones a granel
// y la lista de reposición.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/stock"
	"github.com/tu-usuario/retail-pos/internal/application/uow"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

// InventoryUseCase ajustes, conversiones y consultas de stock.
type InventoryUseCase struct {
	runner    uow.Runner
	products  repository.ProductRepository
	batches   repository.BatchRepository
	movements repository.StockMovementRepository
	log       *logger.Logger
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	runner uow.Runner,
	products repository.ProductRepository,
	batches repository.BatchRepository,
	movements repository.StockMovementRepository,
	log *logger.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{
		runner:    runner,
		products:  products,
		batches:   batches,
		movements: movements,
		log:       log,
	}
}

// AdjustStock corrección manual con motivo obligatorio, sobre un lote
// específico o el lote por defecto del producto. Una disminución que dejaría
// el lote por debajo de cero falla con ErrNegativeStock. Siempre queda
// movimiento ADJUSTMENT.
func (uc *InventoryUseCase) AdjustStock(ctx context.Context, actor string, in dto.AdjustStockRequest) error {
	if in.Reason == "" || in.Delta == 0 {
		return domain.ErrInvalidInput
	}
	if in.BatchID == "" && in.ProductID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now()

	err := uc.runner.Run(ctx, func(r *uow.Repos) error {
		var productID string

		if in.BatchID != "" {
			b, err := r.Batches.GetForUpdate(in.BatchID)
			if err != nil {
				return err
			}
			if b == nil {
				return domain.ErrNotFound
			}
			newQty := b.Quantity + in.Delta
			if newQty < 0 {
				return domain.ErrNegativeStock
			}
			if err := r.Batches.UpdateQuantity(b.ID, newQty); err != nil {
				return err
			}
			// Reactivar/desactivar según quede el lote
			switch {
			case newQty == 0 && b.Status == entity.BatchStatusActive:
				if err := r.Batches.SetStatus(b.ID, entity.BatchStatusInactive); err != nil {
					return err
				}
			case newQty > 0 && b.Status != entity.BatchStatusActive:
				if err := r.Batches.SetStatus(b.ID, entity.BatchStatusActive); err != nil {
					return err
				}
			}
			productID = b.ProductID
		} else {
			product, err := r.Products.GetByID(in.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			productID = in.ProductID

			if in.Delta > 0 {
				if err := stock.ReleaseDefault(r, productID, in.Delta, now); err != nil {
					return err
				}
			} else {
				b, err := r.Batches.GetDefaultForUpdate(productID)
				if err != nil {
					return err
				}
				if b == nil || b.Quantity+in.Delta < 0 {
					return domain.ErrNegativeStock
				}
				newQty := b.Quantity + in.Delta
				if err := r.Batches.UpdateQuantity(b.ID, newQty); err != nil {
					return err
				}
				if newQty == 0 && b.Status == entity.BatchStatusActive {
					if err := r.Batches.SetStatus(b.ID, entity.BatchStatusInactive); err != nil {
						return err
					}
				}
			}
		}

		reason := fmt.Sprintf("ajuste manual: %s", in.Reason)
		return stock.RecordMovement(r, productID, in.Delta,
			entity.MovementCategoryAdjustment, reason, "", actor, now)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("batch_id", in.BatchID).
		Int64("delta", in.Delta).
		Str("actor", actor).
		Msg("ajuste de stock aplicado")
	return nil
}

// TotalOnHand stock disponible del producto (suma de lotes activos).
func (uc *InventoryUseCase) TotalOnHand(ctx context.Context, productID string) (int64, error) {
	if productID == "" {
		return 0, domain.ErrInvalidInput
	}
	return uc.batches.TotalOnHand(productID)
}

// ListMovements movimientos de un producto, más reciente primero.
func (uc *InventoryUseCase) ListMovements(ctx context.Context, productID string, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	movements, err := uc.movements.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			Quantity:    m.Quantity,
			Category:    m.Category,
			Reason:      m.Reason,
			ReferenceID: m.ReferenceID,
			Date:        m.CreatedAt.Format(time.RFC3339),
			CreatedBy:   m.CreatedBy,
		})
	}
	return out, nil
}
