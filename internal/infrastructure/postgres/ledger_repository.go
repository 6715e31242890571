package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository sobre PostgreSQL.
// Los asientos son inmutables: solo INSERT y SELECT.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del libro auxiliar. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create anexa un asiento.
func (r *LedgerRepo) Create(e *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, account_type, account_id, reference_type, reference_id, debit, credit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.AccountType, e.AccountID, e.ReferenceType, e.ReferenceID, e.Debit, e.Credit, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// ListByAccount asientos de una cuenta, más reciente primero.
func (r *LedgerRepo) ListByAccount(accountType, accountID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, account_type, account_id, reference_type, reference_id, debit, credit, created_at
		FROM ledger_entries
		WHERE account_type = $1 AND account_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, accountType, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var out []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(
			&e.ID, &e.AccountType, &e.AccountID, &e.ReferenceType, &e.ReferenceID, &e.Debit, &e.Credit, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// SumByAccount Σ(debit - credit) de la cuenta, para conciliar contra el saldo cacheado.
func (r *LedgerRepo) SumByAccount(accountType, accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit - credit), 0)
		FROM ledger_entries
		WHERE account_type = $1 AND account_id = $2`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, accountType, accountID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum ledger by account: %w", err)
	}
	return sum, nil
}

// SumByReference Σ(debit - credit) de los asientos con esa referencia.
func (r *LedgerRepo) SumByReference(referenceType, referenceID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit - credit), 0)
		FROM ledger_entries
		WHERE reference_type = $1 AND reference_id = $2`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, referenceType, referenceID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum ledger by reference: %w", err)
	}
	return sum, nil
}
