// Package stock implementa las primitivas del libro de lotes: asignación FIFO
// y liberación de unidades, siempre dentro de la transacción del caller y
// sobre filas bloqueadas (SELECT FOR UPDATE).
package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-pos/internal/application/uow"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/inventory"
)

// AllocateInTx consume quantity unidades del producto en orden FIFO por
// vencimiento. Bloquea los lotes activos, arma el plan y lo aplica; los lotes
// que quedan en cero se desactivan. Falla con InsufficientStockError sin
// aplicar nada (el rollback de la transacción descarta cualquier parcial).
func AllocateInTx(r *uow.Repos, productID string, quantity int64) ([]inventory.BatchDraw, error) {
	batches, err := r.Batches.ListActiveByProductForUpdate(productID)
	if err != nil {
		return nil, err
	}

	plan, err := inventory.PlanAllocation(productID, batches, quantity)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entity.InventoryBatch, len(batches))
	for _, b := range batches {
		byID[b.ID] = b
	}
	for _, draw := range plan {
		b := byID[draw.BatchID]
		remaining := b.Quantity - draw.Quantity
		if err := r.Batches.UpdateQuantity(b.ID, remaining); err != nil {
			return nil, err
		}
		if remaining == 0 {
			if err := r.Batches.SetStatus(b.ID, entity.BatchStatusInactive); err != nil {
				return nil, err
			}
		}
	}
	return plan, nil
}

// ReleaseNewLot ingresa unidades como lote nuevo (recepciones: cada entrega
// trae su propio costo/lote/vencimiento).
func ReleaseNewLot(r *uow.Repos, productID, lotCode string, quantity int64, expiresAt *time.Time, now time.Time) (*entity.InventoryBatch, error) {
	b := &entity.InventoryBatch{
		ID:        uuid.New().String(),
		ProductID: productID,
		LotCode:   lotCode,
		Quantity:  quantity,
		ExpiresAt: expiresAt,
		Status:    entity.BatchStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Batches.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ReleaseDefault ingresa unidades al lote por defecto del producto (reversas y
// retornos, donde la atribución al lote original no se conserva). Crea el lote
// por defecto si no existe y lo reactiva si estaba agotado.
func ReleaseDefault(r *uow.Repos, productID string, quantity int64, now time.Time) error {
	b, err := r.Batches.GetDefaultForUpdate(productID)
	if err != nil {
		return err
	}
	if b == nil {
		_, err := ReleaseNewLot(r, productID, "", quantity, nil, now)
		return err
	}
	if err := r.Batches.UpdateQuantity(b.ID, b.Quantity+quantity); err != nil {
		return err
	}
	if b.Status != entity.BatchStatusActive {
		return r.Batches.SetStatus(b.ID, entity.BatchStatusActive)
	}
	return nil
}

// RecordMovement anexa la entrada del registro de movimientos en la misma
// transacción que el cambio de cantidad que la origina.
func RecordMovement(r *uow.Repos, productID string, delta int64, category, reason, referenceID, actor string, now time.Time) error {
	return r.Movements.Create(&entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   productID,
		Quantity:    delta,
		Category:    category,
		Reason:      reason,
		ReferenceID: referenceID,
		CreatedAt:   now,
		CreatedBy:   actor,
	})
}
