package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/retail-pos/internal/application/uow"
)

var _ uow.Runner = (*TxRunner)(nil)

// TxRunner ejecuta unidades de trabajo dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el bundle de repos atado a la tx
// y hace Commit o Rollback. Un error de fn descarta todos los efectos.
func (r *TxRunner) Run(ctx context.Context, fn func(repos *uow.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos arma el bundle de repositorios sobre un Querier (pool o tx).
func NewRepos(q Querier) *uow.Repos {
	return &uow.Repos{
		Products:  NewProductRepository(q),
		Batches:   NewBatchRepository(q),
		Movements: NewStockMovementRepository(q),
		Customers: NewCustomerRepository(q),
		Suppliers: NewSupplierRepository(q),
		Ledger:    NewLedgerRepository(q),
		Sales:     NewSaleRepository(q),
		Orders:    NewPurchaseOrderRepository(q),
		Supplies:  NewSupplyRepository(q),
	}
}
