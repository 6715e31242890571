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
)

// CreatePurchaseOrder da de alta una orden PENDING con sus líneas. La orden no
// tiene efecto contable ni de stock hasta que se recibe.
func (uc *PurchasingUseCase) CreatePurchaseOrder(ctx context.Context, actor string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
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
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Status:     entity.OrderStatusPending,
		Remarks:    in.Remarks,
		CreatedAt:  now,
		CreatedBy:  actor,
		UpdatedAt:  now,
	}
	var items []*entity.PurchaseOrderItem

	err = uc.runner.Run(ctx, func(r *uow.Repos) error {
		if err := r.Orders.Create(order); err != nil {
			return err
		}
		for _, item := range in.Items {
			detail := &entity.PurchaseOrderItem{
				ID:         uuid.New().String(),
				OrderID:    order.ID,
				ProductID:  item.ProductID,
				QtyOrdered: item.Quantity,
				UnitCost:   item.UnitCost,
			}
			if err := r.Orders.CreateItem(detail); err != nil {
				return err
			}
			items = append(items, detail)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("supplier_id", in.SupplierID).
		Int("items", len(items)).
		Msg("orden de compra creada")

	return orderToResponse(order, items), nil
}

// ReceivePurchaseOrder registra la recepción (parcial o total) de líneas de la
// orden: ingresa cada cantidad como lote nuevo, anexa movimientos PURCHASE,
// debita el por pagar del proveedor por el valor recibido y actualiza el
// estado PARTIAL/RECEIVED. Falla con ErrOrderNotReceivable si la orden está
// cancelada o ya recibida por completo.
func (uc *PurchasingUseCase) ReceivePurchaseOrder(ctx context.Context, actor, orderID string, in dto.ReceivePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if orderID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var order *entity.PurchaseOrder
	var items []*entity.PurchaseOrderItem

	err := uc.runner.Run(ctx, func(r *uow.Repos) error {
		var err error
		order, err = r.Orders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusCancelled || order.Status == entity.OrderStatusReceived {
			return domain.ErrOrderNotReceivable
		}

		items, err = r.Orders.ListItems(orderID)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.PurchaseOrderItem, len(items))
		for _, it := range items {
			byID[it.ID] = it
		}

		receivedValue := decimal.Zero
		for _, line := range in.Lines {
			item, ok := byID[line.OrderItemID]
			if !ok {
				return domain.ErrNotFound
			}
			if line.Quantity <= 0 || line.Quantity > item.Outstanding() {
				return domain.ErrInvalidInput
			}
			expiresAt, err := parseExpiry(line.ExpiresAt)
			if err != nil {
				return domain.ErrInvalidInput
			}

			lotCode := line.LotCode
			if lotCode == "" {
				lotCode = fmt.Sprintf("PO-%s", orderID[:8])
			}
			if _, err := stock.ReleaseNewLot(r, item.ProductID, lotCode,
				line.Quantity, expiresAt, now); err != nil {
				return err
			}
			reason := fmt.Sprintf("recepción orden %s lote %s", orderID, lotCode)
			if err := stock.RecordMovement(r, item.ProductID, line.Quantity,
				entity.MovementCategoryPurchase, reason, orderID, actor, now); err != nil {
				return err
			}

			item.QtyReceived += line.Quantity
			if err := r.Orders.UpdateItemReceived(item.ID, item.QtyReceived); err != nil {
				return err
			}
			receivedValue = receivedValue.Add(item.UnitCost.Mul(decimal.NewFromInt(line.Quantity)))
		}

		if err := appledger.PostInTx(r, entity.AccountTypeSupplier, order.SupplierID,
			entity.ReferenceTypePurchaseOrder, orderID, receivedValue, decimal.Zero, now); err != nil {
			return err
		}

		// RECEIVED solo cuando toda línea quedó satisfecha; si no, PARTIAL
		status := entity.OrderStatusReceived
		for _, it := range items {
			if it.Outstanding() > 0 {
				status = entity.OrderStatusPartial
				break
			}
		}
		order.Status = status
		return r.Orders.SetStatus(orderID, status)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", orderID).
		Str("status", order.Status).
		Msg("recepción de orden registrada")

	return orderToResponse(order, items), nil
}

// CancelPurchaseOrder marca la orden CANCELLED y revierte exactamente lo que
// esta orden haya asentado en el por pagar del proveedor (recepciones
// parciales previas). El stock ya ingresado no se toca: se corrige por ajuste
// o anulación de suministro si corresponde.
func (uc *PurchasingUseCase) CancelPurchaseOrder(ctx context.Context, actor, orderID, reason string) error {
	if orderID == "" || reason == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now()

	err := uc.runner.Run(ctx, func(r *uow.Repos) error {
		order, err := r.Orders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusCancelled || order.Status == entity.OrderStatusReceived {
			return domain.ErrConflict
		}

		if err := appledger.ReverseReferenceInTx(r, entity.AccountTypeSupplier,
			order.SupplierID, entity.ReferenceTypePurchaseOrder, orderID, now); err != nil {
			return err
		}
		return r.Orders.SetStatus(orderID, entity.OrderStatusCancelled)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("order_id", orderID).
		Str("reason", reason).
		Msg("orden de compra cancelada")
	return nil
}

// GetPurchaseOrder devuelve una orden con su detalle.
func (uc *PurchasingUseCase) GetPurchaseOrder(ctx context.Context, orderID string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orders.ListItems(orderID)
	if err != nil {
		return nil, err
	}
	return orderToResponse(order, items), nil
}

func orderToResponse(order *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:         order.ID,
		SupplierID: order.SupplierID,
		Status:     order.Status,
		Remarks:    order.Remarks,
		Date:       order.CreatedAt.Format(time.RFC3339),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.PurchaseOrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			QtyOrdered:  it.QtyOrdered,
			QtyReceived: it.QtyReceived,
			UnitCost:    it.UnitCost,
		})
	}
	return resp
}
