package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// SupplyRepository puerto de suministros directos de proveedor.
type SupplyRepository interface {
	Create(supply *entity.Supply) error
	CreateItem(item *entity.SupplyItem) error
	GetByID(id string) (*entity.Supply, error)
	GetForUpdate(id string) (*entity.Supply, error)
	ListItems(supplyID string) ([]*entity.SupplyItem, error)
	MarkVoided(id, reason string) error
	List(limit, offset int) ([]*entity.Supply, error)
}
