package entity

import "time"

// Estados de un lote de inventario. Los lotes nunca se borran físicamente:
// al agotarse o anularse pasan a INACTIVE (preserva la traza auditable).
const (
	BatchStatusActive   = "ACTIVE"
	BatchStatusInactive = "INACTIVE"
)

// InventoryBatch representa un lote de un producto con su propia cantidad
// disponible y fecha de vencimiento opcional. La asignación de ventas consume
// lotes en orden FIFO por vencimiento (sin vencimiento = "nunca vence", de último).
// Invariante: Quantity >= 0 siempre.
type InventoryBatch struct {
	ID        string
	ProductID string
	LotCode   string     // vacío = lote por defecto del producto (reversas/retornos)
	Quantity  int64      // unidades disponibles
	ExpiresAt *time.Time // nil = no vence
	Status    string     // ACTIVE | INACTIVE
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expires indica si el lote tiene fecha de vencimiento.
func (b *InventoryBatch) Expires() bool {
	return b.ExpiresAt != nil
}
