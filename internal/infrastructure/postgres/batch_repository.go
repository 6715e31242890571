package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, product_id, lot_code, quantity, expires_at, status, created_at, updated_at`

// Create inserta un lote nuevo.
func (r *BatchRepo) Create(b *entity.InventoryBatch) error {
	query := `
		INSERT INTO inventory_batches (id, product_id, lot_code, quantity, expires_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.ProductID, b.LotCode, b.Quantity, b.ExpiresAt, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote; nil si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.InventoryBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene un lote bloqueando la fila (SELECT FOR UPDATE).
func (r *BatchRepo) GetForUpdate(id string) (*entity.InventoryBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM inventory_batches WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ListActiveByProduct lotes activos del producto en orden FIFO:
// vencimiento ascendente, sin vencimiento de último, created_at como desempate.
func (r *BatchRepo) ListActiveByProduct(productID string) ([]*entity.InventoryBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM inventory_batches
		WHERE product_id = $1 AND status = $2
		ORDER BY expires_at ASC NULLS LAST, created_at ASC`
	return r.list(query, productID, entity.BatchStatusActive)
}

// ListActiveByProductForUpdate igual que ListActiveByProduct pero bloqueando
// las filas: dos transacciones concurrentes serializan aquí y el invariante
// "no oversell" queda garantizado por la base de datos.
func (r *BatchRepo) ListActiveByProductForUpdate(productID string) ([]*entity.InventoryBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM inventory_batches
		WHERE product_id = $1 AND status = $2
		ORDER BY expires_at ASC NULLS LAST, created_at ASC
		FOR UPDATE`
	return r.list(query, productID, entity.BatchStatusActive)
}

// GetDefaultForUpdate obtiene el lote por defecto (lot_code vacío) del
// producto, activo o no, bloqueado; nil si no existe.
func (r *BatchRepo) GetDefaultForUpdate(productID string) (*entity.InventoryBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM inventory_batches
		WHERE product_id = $1 AND lot_code = ''
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID))
}

// UpdateQuantity fija la cantidad del lote.
func (r *BatchRepo) UpdateQuantity(id string, quantity int64) error {
	query := `UPDATE inventory_batches SET quantity = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update batch quantity: %w", err)
	}
	return nil
}

// SetStatus cambia el estado del lote.
func (r *BatchRepo) SetStatus(id, status string) error {
	query := `UPDATE inventory_batches SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("set batch status: %w", err)
	}
	return nil
}

// TotalOnHand suma las cantidades de los lotes activos del producto.
func (r *BatchRepo) TotalOnHand(productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM inventory_batches
		WHERE product_id = $1 AND status = $2`
	var total int64
	err := r.q.QueryRow(context.Background(), query, productID, entity.BatchStatusActive).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total on hand: %w", err)
	}
	return total, nil
}

func (r *BatchRepo) list(query string, args ...any) ([]*entity.InventoryBatch, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryBatch
	for rows.Next() {
		var b entity.InventoryBatch
		if err := rows.Scan(
			&b.ID, &b.ProductID, &b.LotCode, &b.Quantity, &b.ExpiresAt, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (r *BatchRepo) scanOne(row pgx.Row) (*entity.InventoryBatch, error) {
	var b entity.InventoryBatch
	err := row.Scan(
		&b.ID, &b.ProductID, &b.LotCode, &b.Quantity, &b.ExpiresAt, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}
