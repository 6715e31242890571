package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// CustomerRepository puerto de clientes. El saldo cacheado solo se muta dentro
// de una transacción, siempre junto al asiento contable correspondiente.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetForUpdate(id string) (*entity.Customer, error)
	UpdateBalance(id string, balance decimal.Decimal) error
	List(limit, offset int) ([]*entity.Customer, error)
}

// SupplierRepository puerto de proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetForUpdate(id string) (*entity.Supplier, error)
	UpdateBalance(id string, balance decimal.Decimal) error
	List(limit, offset int) ([]*entity.Supplier, error)
}
