package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un suministro directo.
const (
	SupplyStatusActive = "ACTIVE"
	SupplyStatusVoided = "VOIDED"
)

// Supply recepción directa de mercancía de un proveedor (sin orden previa).
// Crear un suministro sube stock y el por pagar al proveedor; anularlo
// revierte ambos.
type Supply struct {
	ID         string
	SupplierID string
	Total      decimal.Decimal
	Status     string // ACTIVE | VOIDED
	VoidReason string
	CreatedAt  time.Time
	CreatedBy  string
	VoidedAt   *time.Time
}

// SupplyItem línea de un suministro con su costo unitario de recepción.
type SupplyItem struct {
	ID        string
	SupplyID  string
	ProductID string
	Quantity  int64
	UnitCost  decimal.Decimal
	LotCode   string
	ExpiresAt *time.Time
}
