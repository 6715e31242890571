package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// SaleRepository puerto de ventas. La cabecera y sus líneas se crean en la
// misma transacción que los efectos de inventario y cartera.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetForUpdate(id string) (*entity.Sale, error)
	ListItems(saleID string) ([]*entity.SaleItem, error)
	MarkVoided(id, reason string) error
	List(limit, offset int) ([]*entity.Sale, error)
}
