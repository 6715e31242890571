package uow

import (
	"context"

	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
// Todo procesador recibe este bundle y nunca mezcla repos de transacciones
// distintas.
type Repos struct {
	Products  repository.ProductRepository
	Batches   repository.BatchRepository
	Movements repository.StockMovementRepository
	Customers repository.CustomerRepository
	Suppliers repository.SupplierRepository
	Ledger    repository.LedgerRepository
	Sales     repository.SaleRepository
	Orders    repository.PurchaseOrderRepository
	Supplies  repository.SupplyRepository
}

// Runner ejecuta fn dentro de una unidad de trabajo atómica: Commit si fn
// retorna nil, Rollback total si retorna error. Garantiza que una operación
// fallida no deja ningún efecto observable (ni stock, ni saldos, ni asientos).
type Runner interface {
	Run(ctx context.Context, fn func(r *Repos) error) error
}
