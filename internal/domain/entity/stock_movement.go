package entity

import "time"

// Categorías de movimiento de stock.
const (
	MovementCategorySale       = "SALE"
	MovementCategoryPurchase   = "PURCHASE"
	MovementCategoryAdjustment = "ADJUSTMENT"
	MovementCategoryConversion = "CONVERSION"
	MovementCategoryReturn     = "RETURN"
)

// StockMovement registro inmutable de cada cambio de cantidad: append-only,
// sin update ni delete. Se escribe en la misma transacción que la mutación
// del lote para que la traza y el stock vivo nunca diverjan.
type StockMovement struct {
	ID          string
	ProductID   string
	Quantity    int64  // delta con signo: negativo salida, positivo entrada
	Category    string // SALE | PURCHASE | ADJUSTMENT | CONVERSION | RETURN
	Reason      string
	ReferenceID string // venta, suministro, orden o conversión que originó el movimiento
	CreatedAt   time.Time
	CreatedBy   string // actor para atribución de auditoría
}
