package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// BatchRepository define el puerto para lotes de inventario.
// Las variantes ForUpdate bloquean las filas (SELECT FOR UPDATE) y solo tienen
// sentido dentro de una transacción: son la base del invariante "no oversell".
type BatchRepository interface {
	Create(batch *entity.InventoryBatch) error
	GetByID(id string) (*entity.InventoryBatch, error)
	GetForUpdate(id string) (*entity.InventoryBatch, error)
	// ListActiveByProduct devuelve los lotes activos en orden FIFO
	// (vencimiento ascendente, sin vencimiento de último).
	ListActiveByProduct(productID string) ([]*entity.InventoryBatch, error)
	ListActiveByProductForUpdate(productID string) ([]*entity.InventoryBatch, error)
	// GetDefaultForUpdate obtiene el lote por defecto (lot_code vacío) del
	// producto, activo o no, bloqueado; nil si no existe.
	GetDefaultForUpdate(productID string) (*entity.InventoryBatch, error)
	UpdateQuantity(id string, quantity int64) error
	SetStatus(id, status string) error
	TotalOnHand(productID string) (int64, error)
}
