package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// StockMovementRepository puerto del registro de movimientos de stock.
// Solo append y lectura: no existe update ni delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(referenceID string) ([]*entity.StockMovement, error)
}
