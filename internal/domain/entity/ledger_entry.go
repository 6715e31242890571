package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de referencia de un asiento contable.
const (
	ReferenceTypeSale          = "SALE"
	ReferenceTypeSupply        = "SUPPLY"
	ReferenceTypePurchaseOrder = "PURCHASE_ORDER"
	ReferenceTypePayment       = "PAYMENT"
)

// LedgerEntry asiento débito/crédito inmutable, append-only.
// Convención: una venta a crédito debita al cliente (sube lo que debe) y un
// pago lo acredita; una recepción debita al proveedor (sube el por pagar) y
// un pago al proveedor lo acredita. Saldo = Σ(Debit - Credit).
type LedgerEntry struct {
	ID            string
	AccountType   string // CUSTOMER | SUPPLIER
	AccountID     string
	ReferenceType string // SALE | SUPPLY | PURCHASE_ORDER | PAYMENT
	ReferenceID   string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	CreatedAt     time.Time
}
