package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, supplier_id, status, remarks, created_at, created_by, updated_at`

// Create inserta la cabecera de la orden.
func (r *PurchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_id, status, remarks, created_at, created_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.SupplierID, o.Status, o.Remarks, o.CreatedAt, o.CreatedBy, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create purchase order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de la orden.
func (r *PurchaseOrderRepo) CreateItem(item *entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (id, order_id, product_id, qty_ordered, qty_received, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.QtyOrdered, item.QtyReceived, item.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("create purchase order item: %w", err)
	}
	return nil
}

// GetByID obtiene una orden; nil si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene una orden bloqueando la fila: recepciones y
// cancelaciones concurrentes de la misma orden serializan aquí.
func (r *PurchaseOrderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ListItems líneas de la orden.
func (r *PurchaseOrderRepo) ListItems(orderID string) ([]*entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, order_id, product_id, qty_ordered, qty_received, unit_cost
		FROM purchase_order_items WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrderItem
	for rows.Next() {
		var item entity.PurchaseOrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.QtyOrdered, &item.QtyReceived, &item.UnitCost,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

// UpdateItemReceived fija las unidades recibidas de la línea.
func (r *PurchaseOrderRepo) UpdateItemReceived(itemID string, qtyReceived int64) error {
	query := `UPDATE purchase_order_items SET qty_received = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, itemID, qtyReceived)
	if err != nil {
		return fmt.Errorf("update purchase order item received: %w", err)
	}
	return nil
}

// SetStatus cambia el estado de la orden.
func (r *PurchaseOrderRepo) SetStatus(id, status string) error {
	query := `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("set purchase order status: %w", err)
	}
	return nil
}

// List órdenes paginadas, más reciente primero.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(
			&o.ID, &o.SupplierID, &o.Status, &o.Remarks, &o.CreatedAt, &o.CreatedBy, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

func (r *PurchaseOrderRepo) scanOne(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := row.Scan(
		&o.ID, &o.SupplierID, &o.Status, &o.Remarks, &o.CreatedAt, &o.CreatedBy, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &o, nil
}
