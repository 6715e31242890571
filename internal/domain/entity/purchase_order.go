package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. PARTIAL indica recepciones incompletas
// (seguimiento por línea en QtyReceived); RECEIVED solo cuando toda línea
// está satisfecha. CANCELLED es terminal.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPartial   = "PARTIAL"
	OrderStatusReceived  = "RECEIVED"
	OrderStatusCancelled = "CANCELLED"
)

// PurchaseOrder cabecera de una orden de compra a proveedor.
type PurchaseOrder struct {
	ID         string
	SupplierID string
	Status     string // PENDING | PARTIAL | RECEIVED | CANCELLED
	Remarks    string
	CreatedAt  time.Time
	CreatedBy  string
	UpdatedAt  time.Time
}

// PurchaseOrderItem línea de una orden: cantidad pedida vs. recibida.
type PurchaseOrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	QtyOrdered  int64
	QtyReceived int64
	UnitCost    decimal.Decimal
}

// Outstanding devuelve las unidades pendientes por recibir de la línea.
func (it *PurchaseOrderItem) Outstanding() int64 {
	return it.QtyOrdered - it.QtyReceived
}
