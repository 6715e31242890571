package sales

import (
	"context"
	"fmt"
	"time"

	appledger "github.com/tu-usuario/retail-pos/internal/application/ledger"
	"github.com/tu-usuario/retail-pos/internal/application/stock"
	"github.com/tu-usuario/retail-pos/internal/application/uow"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// VoidSale anula una venta activa: devuelve cada línea al inventario (lote por
// defecto, la atribución al lote original no se conserva), registra movimientos
// RETURN, revierte el débito de cartera si lo hubo y marca la venta VOIDED.
// La anulación es irreversible; repetirla falla con ErrAlreadyVoided sin
// producir ningún efecto adicional.
func (uc *SaleUseCase) VoidSale(ctx context.Context, actor, saleID, reason string) error {
	if saleID == "" || reason == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now()

	err := uc.runner.Run(ctx, func(r *uow.Repos) error {
		sale, err := r.Sales.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusVoided {
			return domain.ErrAlreadyVoided
		}

		items, err := r.Sales.ListItems(saleID)
		if err != nil {
			return err
		}

		for _, item := range items {
			if err := stock.ReleaseDefault(r, item.ProductID, item.Quantity, now); err != nil {
				return err
			}
			movReason := fmt.Sprintf("anulación venta %s: %s", saleID, reason)
			if err := stock.RecordMovement(r, item.ProductID, item.Quantity,
				entity.MovementCategoryReturn, movReason, saleID, actor, now); err != nil {
				return err
			}
		}

		// Revertir el débito de cartera asentado por esta venta (si lo hubo)
		if sale.CustomerID != nil {
			if err := appledger.ReverseReferenceInTx(r, entity.AccountTypeCustomer,
				*sale.CustomerID, entity.ReferenceTypeSale, saleID, now); err != nil {
				return err
			}
		}

		return r.Sales.MarkVoided(saleID, reason)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("sale_id", saleID).
		Str("reason", reason).
		Str("actor", actor).
		Msg("venta anulada")
	return nil
}
