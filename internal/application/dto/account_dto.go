package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone,omitempty"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	CreditBalance decimal.Decimal `json:"credit_balance"`
}

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	PayableBalance decimal.Decimal `json:"payable_balance"`
}

// PaymentRequest body para registrar un abono de cliente o pago a proveedor.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PaymentResponse saldo resultante tras aplicar el pago.
type PaymentResponse struct {
	AccountID      string          `json:"account_id"`
	AmountApplied  decimal.Decimal `json:"amount_applied"`
	NewBalance     decimal.Decimal `json:"new_balance"`
	AmountClamped  bool            `json:"amount_clamped"`
	AmountReceived decimal.Decimal `json:"amount_received"`
}

// LedgerEntryResponse asiento del libro auxiliar en respuestas.
type LedgerEntryResponse struct {
	ID            string          `json:"id"`
	AccountType   string          `json:"account_type"`
	AccountID     string          `json:"account_id"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Date          string          `json:"date"`
}
