package dto

import "github.com/shopspring/decimal"

// SupplyItemRequest línea de suministro directo. LotCode y ExpiresAt son
// opcionales (formato fecha 2006-01-02).
type SupplyItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	LotCode   string          `json:"lot_code,omitempty"`
	ExpiresAt string          `json:"expires_at,omitempty"`
}

// ReceiveSupplyRequest body para POST /api/supplies.
type ReceiveSupplyRequest struct {
	SupplierID string              `json:"supplier_id"`
	Items      []SupplyItemRequest `json:"items"`
}

// SupplyItemResponse línea de suministro en respuestas.
type SupplyItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	LotCode   string          `json:"lot_code,omitempty"`
}

// SupplyResponse suministro con detalle.
type SupplyResponse struct {
	ID         string               `json:"id"`
	SupplierID string               `json:"supplier_id"`
	Total      decimal.Decimal      `json:"total"`
	Status     string               `json:"status"`
	Date       string               `json:"date"`
	Items      []SupplyItemResponse `json:"items"`
}

// VoidSupplyRequest body para POST /api/supplies/:id/void.
type VoidSupplyRequest struct {
	Reason string `json:"reason"`
}

// PurchaseOrderItemRequest línea de una orden de compra nueva.
type PurchaseOrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id"`
	Remarks    string                     `json:"remarks,omitempty"`
	Items      []PurchaseOrderItemRequest `json:"items"`
}

// ReceiveOrderLine recepción parcial o total de una línea de la orden.
type ReceiveOrderLine struct {
	OrderItemID string `json:"order_item_id"`
	Quantity    int64  `json:"quantity"`
	LotCode     string `json:"lot_code,omitempty"`
	ExpiresAt   string `json:"expires_at,omitempty"`
}

// ReceivePurchaseOrderRequest body para POST /api/purchase-orders/:id/receive.
type ReceivePurchaseOrderRequest struct {
	Lines []ReceiveOrderLine `json:"lines"`
}

// CancelPurchaseOrderRequest body para POST /api/purchase-orders/:id/cancel.
type CancelPurchaseOrderRequest struct {
	Reason string `json:"reason"`
}

// PurchaseOrderItemResponse línea de orden con avance de recepción.
type PurchaseOrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	QtyOrdered  int64           `json:"qty_ordered"`
	QtyReceived int64           `json:"qty_received"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse orden con detalle.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	SupplierID string                      `json:"supplier_id"`
	Status     string                      `json:"status"`
	Remarks    string                      `json:"remarks,omitempty"`
	Date       string                      `json:"date"`
	Items      []PurchaseOrderItemResponse `json:"items"`
}
