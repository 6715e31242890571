package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta del libro auxiliar.
const (
	AccountTypeCustomer = "CUSTOMER"
	AccountTypeSupplier = "SUPPLIER"
)

// Customer cliente con cupo y saldo de crédito (cartera).
// Invariante de conciliación: CreditBalance == Σ(debit - credit) de sus
// asientos desde la creación de la cuenta.
type Customer struct {
	ID            string
	Name          string
	Phone         string
	CreditLimit   decimal.Decimal
	CreditBalance decimal.Decimal // lo que el cliente debe
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Supplier proveedor con saldo por pagar.
// Invariante de conciliación: PayableBalance == Σ(debit - credit) de sus asientos.
type Supplier struct {
	ID             string
	Name           string
	Phone          string
	PayableBalance decimal.Decimal // lo que el negocio debe al proveedor
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
