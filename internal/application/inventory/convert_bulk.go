package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/stock"
	"github.com/tu-usuario/retail-pos/internal/application/uow"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// ConvertBulk fracciona un producto a granel en unidades de venta: descuenta
// FIFO del producto origen y libera sourceQty*ratio unidades del destino en su
// lote por defecto. El ratio es atributo del producto destino (cuántas
// unidades suyas rinde 1 unidad a granel). Quedan dos movimientos CONVERSION
// enlazados por el mismo ReferenceID, de modo que la conservación
// (salida*ratio == entrada) es auditable desde el log.
func (uc *InventoryUseCase) ConvertBulk(ctx context.Context, actor string, in dto.ConvertBulkRequest) (*dto.ConversionResult, error) {
	if in.SourceProductID == "" || in.TargetProductID == "" || in.SourceQuantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceProductID == in.TargetProductID {
		return nil, domain.ErrInvalidInput
	}

	source, err := uc.products.GetByID(in.SourceProductID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, domain.ErrNotFound
	}
	target, err := uc.products.GetByID(in.TargetProductID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}

	ratio := target.EffectiveConversionRatio()
	targetQty := in.SourceQuantity * ratio

	now := time.Now()
	conversionID := uuid.New().String()

	err = uc.runner.Run(ctx, func(r *uow.Repos) error {
		if _, err := stock.AllocateInTx(r, in.SourceProductID, in.SourceQuantity); err != nil {
			return err
		}
		if err := stock.ReleaseDefault(r, in.TargetProductID, targetQty, now); err != nil {
			return err
		}

		outReason := fmt.Sprintf("conversión %s: %d %s -> %d %s",
			conversionID, in.SourceQuantity, source.SKU, targetQty, target.SKU)
		if err := stock.RecordMovement(r, in.SourceProductID, -in.SourceQuantity,
			entity.MovementCategoryConversion, outReason, conversionID, actor, now); err != nil {
			return err
		}
		inReason := fmt.Sprintf("conversión %s: entrada desde %s", conversionID, source.SKU)
		return stock.RecordMovement(r, in.TargetProductID, targetQty,
			entity.MovementCategoryConversion, inReason, conversionID, actor, now)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("conversion_id", conversionID).
		Str("source_product_id", in.SourceProductID).
		Str("target_product_id", in.TargetProductID).
		Int64("source_qty", in.SourceQuantity).
		Int64("target_qty", targetQty).
		Msg("conversión a granel aplicada")

	return &dto.ConversionResult{
		ConversionID:     conversionID,
		SourceProductID:  in.SourceProductID,
		TargetProductID:  in.TargetProductID,
		QuantityConsumed: in.SourceQuantity,
		QuantityProduced: targetQty,
		Ratio:            ratio,
	}, nil
}
