package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/sales"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/memory"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

func newSaleUC(store *memory.Store) *sales.SaleUseCase {
	r := store.Repos()
	return sales.NewSaleUseCase(store, r.Products, r.Customers, r.Sales, logger.Nop())
}

func seedProduct(t *testing.T, store *memory.Store, sku string, price int64) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       sku,
		Name:      "producto " + sku,
		Price:     decimal.NewFromInt(price),
		Cost:      decimal.NewFromInt(price / 2),
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Repos().Products.Create(p))
	return p
}

func seedBatch(t *testing.T, store *memory.Store, productID, lotCode string, qty int64, expiresAt *time.Time) *entity.InventoryBatch {
	t.Helper()
	now := time.Now()
	b := &entity.InventoryBatch{
		ID:        uuid.New().String(),
		ProductID: productID,
		LotCode:   lotCode,
		Quantity:  qty,
		ExpiresAt: expiresAt,
		Status:    entity.BatchStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Repos().Batches.Create(b))
	return b
}

func seedCustomer(t *testing.T, store *memory.Store, name string, creditLimit int64) *entity.Customer {
	t.Helper()
	now := time.Now()
	c := &entity.Customer{
		ID:            uuid.New().String(),
		Name:          name,
		CreditLimit:   decimal.NewFromInt(creditLimit),
		CreditBalance: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, store.Repos().Customers.Create(c))
	return c
}

func onHand(t *testing.T, store *memory.Store, productID string) int64 {
	t.Helper()
	total, err := store.Repos().Batches.TotalOnHand(productID)
	require.NoError(t, err)
	return total
}

func TestCreateSalePaidInFull(t *testing.T) {
	store := memory.NewStore()
	uc := newSaleUC(store)
	p := seedProduct(t, store, "SKU-1", 50)
	seedBatch(t, store, p.ID, "L1", 10, nil)

	resp, err := uc.CreateSale(context.Background(), "caja1", dto.CreateSaleRequest{
		Items:      []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(50)}},
		AmountPaid: decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, int64(7), onHand(t, store, p.ID))

	movements, err := store.Repos().Movements.ListByReference(resp.ID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, int64(-3), movements[0].Quantity)
	assert.Equal(t, entity.MovementCategorySale, movements[0].Category)
	assert.Equal(t, "caja1", movements[0].CreatedBy)
}

func TestCreateSaleConsumesBatchesFIFO(t *testing.T) {
	store := memory.NewStore()
	uc := newSaleUC(store)
	p := seedProduct(t, store, "SKU-1", 10)

	soon := time.Now().Add(24 * time.Hour)
	later := time.Now().Add(30 * 24 * time.Hour)
	first := seedBatch(t, store, p.ID, "VENCE-PRONTO", 4, &soon)
	second := seedBatch(t, store, p.ID, "VENCE-TARDE", 10, &later)

	_, err := uc.CreateSale(context.Background(), "caja1", dto.CreateSaleRequest{
		Items:      []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 6, UnitPrice: decimal.NewFromInt(10)}},
		AmountPaid: decimal.NewFromInt(60),
	})
	require.NoError(t, err)

	b1, err := store.Repos().Batches.GetByID(first.ID)
	require.NoError(t, err)
	b2, err := store.Repos().Batches.GetByID(second.ID)
	require.NoError(t, err)

	// El lote que vence primero se agota y se desactiva; el resto sale del otro
	assert.Equal(t, int64(0), b1.Quantity)
	assert.Equal(t, entity.BatchStatusInactive, b1.Status)
	assert.Equal(t, int64(8), b2.Quantity)
}

func TestCreateSaleOnCreditDebitsCustomer(t *testing.T) {
	store := memory.NewStore()
	uc := newSaleUC(store)
	p := seedProduct(t, store, "SKU-1", 50)
	seedBatch(t, store, p.ID, "L1", 10, nil)
	customer := seedCustomer(t, store, "Ana", 1000)

	resp, err := uc.CreateSale(context.Background(), "caja1", dto.CreateSaleRequest{
		CustomerID: customer.ID,
		Items:      []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(50)}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusUnpaid, resp.PaymentStatus)

	c, err := store.Repos().Customers.GetByID(customer.ID)
	require.NoError(t, err)
	assert.True(t, c.CreditBalance.Equal(decimal.NewFromInt(150)))

	// Conciliación: saldo cacheado == Σ(debit - credit) del libro
	sum, err := store.Repos().Ledger.SumByAccount(entity.AccountTypeCustomer, customer.ID)
	require.NoError(t, err)
	assert.True(t, c.CreditBalance.Equal(sum))
}

func TestCreateSaleOnCreditRequiresCustomer(t *testing.T) {
	store := memory.NewStore()
	uc := newSaleUC(store)
	p := seedProduct(t, store, "SKU-1", 50)
	seedBatch(t, store, p.ID, "L1", 10, nil)

	_, err := uc.CreateSale(context.Background(), "caja1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(50)}},
		// AmountPaid en cero y sin cliente: no hay a quién debitar
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSaleInsufficientStockLeavesNoTrace(t *testing.T) {
	store := memory.NewStore()
	uc := newSaleUC(store)
	p1 := seedProduct(t, store, "SKU-1", 50)
	p2 := seedProduct(t, store, "SKU-2", 30)
	seedBatch(t, store, p1.ID, "L1", 10, nil)
	seedBatch(t, store, p2.ID, "L2", 2, nil)

	// La segunda línea excede el stock: la venta completa debe descartarse
	_, err := uc.CreateSale(context.Background(), "caja1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: p1.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(50)},
			{ProductID: p2.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(30)},
		},
		AmountPaid: decimal.NewFromInt(340),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, p2.ID, stockErr.ProductID)
	assert.Equal(t, int64(3), stockErr.Requested)
	assert.Equal(t, int64(2), stockErr.Available)

	// Sin efectos parciales: ni stock, ni ventas, ni movimientos
	assert.Equal(t, int64(10), onHand(t, store, p1.ID))
	assert.Equal(t, int64(2), onHand(t, store, p2.ID))
	salesList, err := store.Repos().Sales.List(10, 0)
	require.NoError(t, err)
	assert.Empty(t, salesList)
	movements, err := store.Repos().Movements.ListByProduct(p1.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	store := memory.NewStore()
	uc := newSaleUC(store)
	p := seedProduct(t, store, "SKU-1", 50)
	seedBatch(t, store, p.ID, "L1", 10, nil)

	const workers = 4
	const perSale = 3

	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, results[n] = uc.CreateSale(context.Background(), "caja1", dto.CreateSaleRequest{
				Items:      []dto.SaleItemRequest{{ProductID: p.ID, Quantity: perSale, UnitPrice: decimal.NewFromInt(50)}},
				AmountPaid: decimal.NewFromInt(perSale * 50),
			})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}

	// 10 unidades / 3 por venta: exactamente 3 ventas caben, la cuarta falla
	assert.Equal(t, 3, ok)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, int64(1), onHand(t, store, p.ID))
}

func TestVoidSaleRestoresStockAndLedger(t *testing.T) {
	store := memory.NewStore()
	uc := newSaleUC(store)
	p := seedProduct(t, store, "SKU-1", 50)
	soon := time.Now().Add(24 * time.Hour)
	seedBatch(t, store, p.ID, "L1", 10, &soon)
	customer := seedCustomer(t, store, "Ana", 1000)

	resp, err := uc.CreateSale(context.Background(), "caja1", dto.CreateSaleRequest{
		CustomerID: customer.ID,
		Items:      []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(50)}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), onHand(t, store, p.ID))

	require.NoError(t, uc.VoidSale(context.Background(), "admin", resp.ID, "cliente se retractó"))

	// Stock repuesto (al lote por defecto) y cartera revertida
	assert.Equal(t, int64(10), onHand(t, store, p.ID))
	c, err := store.Repos().Customers.GetByID(customer.ID)
	require.NoError(t, err)
	assert.True(t, c.CreditBalance.IsZero())

	voided, err := uc.GetSale(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusVoided, voided.Status)

	// La anulación es irreversible y no repetible
	err = uc.VoidSale(context.Background(), "admin", resp.ID, "de nuevo")
	require.ErrorIs(t, err, domain.ErrAlreadyVoided)
	assert.Equal(t, int64(10), onHand(t, store, p.ID))
}

func TestVoidSaleRequiresReason(t *testing.T) {
	store := memory.NewStore()
	uc := newSaleUC(store)
	err := uc.VoidSale(context.Background(), "admin", "algún-id", "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
