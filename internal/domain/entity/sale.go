package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una venta.
const (
	PaymentStatusPaid    = "PAID"
	PaymentStatusPartial = "PARTIAL"
	PaymentStatusUnpaid  = "UNPAID"
)

// Estados del registro de venta. Las ventas anuladas se marcan VOIDED,
// nunca se borran (traza auditable).
const (
	SaleStatusActive = "ACTIVE"
	SaleStatusVoided = "VOIDED"
)

// Sale cabecera de una venta POS. CustomerID nil = venta de mostrador.
type Sale struct {
	ID            string
	CustomerID    *string
	Subtotal      decimal.Decimal // Σ(cantidad * precio) antes de descuento
	Discount      decimal.Decimal
	Total         decimal.Decimal // Subtotal - Discount
	AmountPaid    decimal.Decimal
	PaymentMethod string
	PaymentStatus string // PAID | PARTIAL | UNPAID
	Status        string // ACTIVE | VOIDED
	VoidReason    string
	CreatedAt     time.Time
	CreatedBy     string
	VoidedAt      *time.Time
}

// SaleItem línea de detalle de una venta. Las líneas pertenecen a su venta
// y no la sobreviven.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
