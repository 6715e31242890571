package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// PurchaseOrderRepository puerto de órdenes de compra con seguimiento de
// recepción por línea.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	CreateItem(item *entity.PurchaseOrderItem) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	GetForUpdate(id string) (*entity.PurchaseOrder, error)
	ListItems(orderID string) ([]*entity.PurchaseOrderItem, error)
	UpdateItemReceived(itemID string, qtyReceived int64) error
	SetStatus(id, status string) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
}
