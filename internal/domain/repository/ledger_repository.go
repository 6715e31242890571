package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// LedgerRepository puerto del libro auxiliar débito/crédito (append-only).
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	ListByAccount(accountType, accountID string, limit, offset int) ([]*entity.LedgerEntry, error)
	// SumByAccount devuelve Σ(debit - credit) de la cuenta (para conciliación).
	SumByAccount(accountType, accountID string) (decimal.Decimal, error)
	// SumByReference devuelve Σ(debit - credit) de los asientos con esa
	// referencia; se usa para revertir exactamente lo asentado por un documento.
	SumByReference(referenceType, referenceID string) (decimal.Decimal, error)
}
