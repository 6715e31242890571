package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo implementación de SupplyRepository sobre PostgreSQL.
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador de suministros. Pasar pool o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

const supplyColumns = `id, supplier_id, total, status, void_reason, created_at, created_by, voided_at`

// Create inserta la cabecera del suministro.
func (r *SupplyRepo) Create(s *entity.Supply) error {
	query := `
		INSERT INTO supplies (id, supplier_id, total, status, void_reason, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.SupplierID, s.Total, s.Status, s.VoidReason, s.CreatedAt, s.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create supply: %w", err)
	}
	return nil
}

// CreateItem inserta una línea del suministro.
func (r *SupplyRepo) CreateItem(item *entity.SupplyItem) error {
	query := `
		INSERT INTO supply_items (id, supply_id, product_id, quantity, unit_cost, lot_code, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SupplyID, item.ProductID, item.Quantity, item.UnitCost, item.LotCode, item.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create supply item: %w", err)
	}
	return nil
}

// GetByID obtiene un suministro; nil si no existe.
func (r *SupplyRepo) GetByID(id string) (*entity.Supply, error) {
	query := `SELECT ` + supplyColumns + ` FROM supplies WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene un suministro bloqueando la fila.
func (r *SupplyRepo) GetForUpdate(id string) (*entity.Supply, error) {
	query := `SELECT ` + supplyColumns + ` FROM supplies WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ListItems líneas del suministro.
func (r *SupplyRepo) ListItems(supplyID string) ([]*entity.SupplyItem, error) {
	query := `
		SELECT id, supply_id, product_id, quantity, unit_cost, lot_code, expires_at
		FROM supply_items WHERE supply_id = $1`
	rows, err := r.q.Query(context.Background(), query, supplyID)
	if err != nil {
		return nil, fmt.Errorf("list supply items: %w", err)
	}
	defer rows.Close()

	var out []*entity.SupplyItem
	for rows.Next() {
		var item entity.SupplyItem
		if err := rows.Scan(
			&item.ID, &item.SupplyID, &item.ProductID, &item.Quantity, &item.UnitCost, &item.LotCode, &item.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("scan supply item: %w", err)
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

// MarkVoided marca el suministro anulado. El registro no se borra.
func (r *SupplyRepo) MarkVoided(id, reason string) error {
	query := `UPDATE supplies SET status = $2, void_reason = $3, voided_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, entity.SupplyStatusVoided, reason)
	if err != nil {
		return fmt.Errorf("mark supply voided: %w", err)
	}
	return nil
}

// List suministros paginados, más reciente primero.
func (r *SupplyRepo) List(limit, offset int) ([]*entity.Supply, error) {
	query := `SELECT ` + supplyColumns + ` FROM supplies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	defer rows.Close()

	var out []*entity.Supply
	for rows.Next() {
		var s entity.Supply
		if err := rows.Scan(
			&s.ID, &s.SupplierID, &s.Total, &s.Status, &s.VoidReason, &s.CreatedAt, &s.CreatedBy, &s.VoidedAt,
		); err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *SupplyRepo) scanOne(row pgx.Row) (*entity.Supply, error) {
	var s entity.Supply
	err := row.Scan(
		&s.ID, &s.SupplierID, &s.Total, &s.Status, &s.VoidReason, &s.CreatedAt, &s.CreatedBy, &s.VoidedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply: %w", err)
	}
	return &s, nil
}
