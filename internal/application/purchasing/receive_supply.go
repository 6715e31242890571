// Package purchasing orquesta recepciones de mercancía: suministros directos
// de proveedor y órdenes de compra con recepción por línea.
package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	appledger "github.com/tu-usuario/retail-pos/internal/application/ledger"
	"github.com/tu-usuario/retail-pos/internal/application/stock"
	"github.com/tu-usuario/retail-pos/internal/application/uow"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

// PurchasingUseCase procesa suministros y órdenes de compra.
type PurchasingUseCase struct {
	runner    uow.Runner
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	orders    repository.PurchaseOrderRepository
	supplies  repository.SupplyRepository
	log       *logger.Logger
}

// NewPurchasingUseCase construye el caso de uso.
func NewPurchasingUseCase(
	runner uow.Runner,
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	orders repository.PurchaseOrderRepository,
	supplies repository.SupplyRepository,
	log *logger.Logger,
) *PurchasingUseCase {
	return &PurchasingUseCase{
		runner:    runner,
		products:  products,
		suppliers: suppliers,
		orders:    orders,
		supplies:  supplies,
		log:       log,
	}
}

// ReceiveSupply registra una recepción directa: cada línea entra como lote
// nuevo (cada entrega trae su costo y vencimiento propios), se anexan los
// movimientos PURCHASE y se debita el por pagar del proveedor por el total.
func (uc *PurchasingUseCase) ReceiveSupply(ctx context.Context, actor string, in dto.ReceiveSupplyRequest) (*dto.SupplyResponse, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	supplier, err := uc.suppliers.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrAccountNotFound
	}

	// Validar líneas y vencimientos fuera de la tx
	type supplyLine struct {
		req       dto.SupplyItemRequest
		expiresAt *time.Time
	}
	lines := make([]supplyLine, 0, len(in.Items))
	total := decimal.Zero
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.products.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		expiresAt, err := parseExpiry(item.ExpiresAt)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, supplyLine{req: item, expiresAt: expiresAt})
		total = total.Add(item.UnitCost.Mul(decimal.NewFromInt(item.Quantity)))
	}

	now := time.Now()
	supplyID := uuid.New().String()
	supply := &entity.Supply{
		ID:         supplyID,
		SupplierID: in.SupplierID,
		Total:      total,
		Status:     entity.SupplyStatusActive,
		CreatedAt:  now,
		CreatedBy:  actor,
	}
	var items []*entity.SupplyItem

	err = uc.runner.Run(ctx, func(r *uow.Repos) error {
		if err := r.Supplies.Create(supply); err != nil {
			return err
		}
		for _, line := range lines {
			detail := &entity.SupplyItem{
				ID:        uuid.New().String(),
				SupplyID:  supplyID,
				ProductID: line.req.ProductID,
				Quantity:  line.req.Quantity,
				UnitCost:  line.req.UnitCost,
				LotCode:   line.req.LotCode,
				ExpiresAt: line.expiresAt,
			}
			if err := r.Supplies.CreateItem(detail); err != nil {
				return err
			}
			items = append(items, detail)

			lotCode := line.req.LotCode
			if lotCode == "" {
				lotCode = fmt.Sprintf("SUP-%s", supplyID[:8])
			}
			if _, err := stock.ReleaseNewLot(r, line.req.ProductID, lotCode,
				line.req.Quantity, line.expiresAt, now); err != nil {
				return err
			}
			reason := fmt.Sprintf("recepción suministro %s lote %s", supplyID, lotCode)
			if err := stock.RecordMovement(r, line.req.ProductID, line.req.Quantity,
				entity.MovementCategoryPurchase, reason, supplyID, actor, now); err != nil {
				return err
			}
		}

		// Por pagar al proveedor: débito por el total recibido
		return appledger.PostInTx(r, entity.AccountTypeSupplier, in.SupplierID,
			entity.ReferenceTypeSupply, supplyID, total, decimal.Zero, now)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("supply_id", supplyID).
		Str("supplier_id", in.SupplierID).
		Str("total", total.String()).
		Msg("suministro recibido")

	return supplyToResponse(supply, items), nil
}

// VoidSupply anula un suministro activo: descuenta del inventario las
// cantidades recibidas (puede fallar con InsufficientStock si ya se vendieron),
// revierte el por pagar y marca el suministro VOIDED.
func (uc *PurchasingUseCase) VoidSupply(ctx context.Context, actor, supplyID, reason string) error {
	if supplyID == "" || reason == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now()

	err := uc.runner.Run(ctx, func(r *uow.Repos) error {
		supply, err := r.Supplies.GetForUpdate(supplyID)
		if err != nil {
			return err
		}
		if supply == nil {
			return domain.ErrNotFound
		}
		if supply.Status == entity.SupplyStatusVoided {
			return domain.ErrAlreadyVoided
		}

		items, err := r.Supplies.ListItems(supplyID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if _, err := stock.AllocateInTx(r, item.ProductID, item.Quantity); err != nil {
				return err
			}
			movReason := fmt.Sprintf("anulación suministro %s: %s", supplyID, reason)
			if err := stock.RecordMovement(r, item.ProductID, -item.Quantity,
				entity.MovementCategoryReturn, movReason, supplyID, actor, now); err != nil {
				return err
			}
		}

		if err := appledger.ReverseReferenceInTx(r, entity.AccountTypeSupplier,
			supply.SupplierID, entity.ReferenceTypeSupply, supplyID, now); err != nil {
			return err
		}

		return r.Supplies.MarkVoided(supplyID, reason)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("supply_id", supplyID).
		Str("reason", reason).
		Msg("suministro anulado")
	return nil
}

// GetSupply devuelve un suministro con su detalle.
func (uc *PurchasingUseCase) GetSupply(ctx context.Context, supplyID string) (*dto.SupplyResponse, error) {
	supply, err := uc.supplies.GetByID(supplyID)
	if err != nil {
		return nil, err
	}
	if supply == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.supplies.ListItems(supplyID)
	if err != nil {
		return nil, err
	}
	return supplyToResponse(supply, items), nil
}

func parseExpiry(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func supplyToResponse(supply *entity.Supply, items []*entity.SupplyItem) *dto.SupplyResponse {
	resp := &dto.SupplyResponse{
		ID:         supply.ID,
		SupplierID: supply.SupplierID,
		Total:      supply.Total,
		Status:     supply.Status,
		Date:       supply.CreatedAt.Format(time.RFC3339),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SupplyItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			LotCode:   it.LotCode,
		})
	}
	return resp
}
