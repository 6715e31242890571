package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/memory"
	"github.com/tu-usuario/retail-pos/pkg/cache"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

func newInventoryUC(store *memory.Store) *inventory.InventoryUseCase {
	r := store.Repos()
	return inventory.NewInventoryUseCase(store, r.Products, r.Batches, r.Movements, logger.Nop())
}

func seedProduct(t *testing.T, store *memory.Store, sku string, reorderLevel, conversionRatio int64) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:              uuid.New().String(),
		SKU:             sku,
		Name:            "producto " + sku,
		Price:           decimal.NewFromInt(100),
		Cost:            decimal.NewFromInt(60),
		ReorderLevel:    reorderLevel,
		ConversionRatio: conversionRatio,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, store.Repos().Products.Create(p))
	return p
}

func seedBatch(t *testing.T, store *memory.Store, productID, lotCode string, qty int64) *entity.InventoryBatch {
	t.Helper()
	now := time.Now()
	b := &entity.InventoryBatch{
		ID:        uuid.New().String(),
		ProductID: productID,
		LotCode:   lotCode,
		Quantity:  qty,
		Status:    entity.BatchStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Repos().Batches.Create(b))
	return b
}

func onHand(t *testing.T, store *memory.Store, productID string) int64 {
	t.Helper()
	total, err := store.Repos().Batches.TotalOnHand(productID)
	require.NoError(t, err)
	return total
}

func TestAdjustStockOnBatch(t *testing.T) {
	store := memory.NewStore()
	uc := newInventoryUC(store)
	p := seedProduct(t, store, "SKU-1", 0, 0)
	b := seedBatch(t, store, p.ID, "L1", 10)

	err := uc.AdjustStock(context.Background(), "admin", dto.AdjustStockRequest{
		BatchID: b.ID,
		Delta:   -4,
		Reason:  "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), onHand(t, store, p.ID))

	movements, err := uc.ListMovements(context.Background(), p.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, int64(-4), movements[0].Quantity)
	assert.Equal(t, entity.MovementCategoryAdjustment, movements[0].Category)
	assert.Contains(t, movements[0].Reason, "conteo físico")
}

func TestAdjustStockRejectsNegativeResult(t *testing.T) {
	store := memory.NewStore()
	uc := newInventoryUC(store)
	p := seedProduct(t, store, "SKU-1", 0, 0)
	b := seedBatch(t, store, p.ID, "L1", 3)

	err := uc.AdjustStock(context.Background(), "admin", dto.AdjustStockRequest{
		BatchID: b.ID,
		Delta:   -5,
		Reason:  "conteo físico",
	})
	require.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.Equal(t, int64(3), onHand(t, store, p.ID))

	// Sin efectos: tampoco queda movimiento
	movements, err := uc.ListMovements(context.Background(), p.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestAdjustStockRequiresReason(t *testing.T) {
	store := memory.NewStore()
	uc := newInventoryUC(store)
	p := seedProduct(t, store, "SKU-1", 0, 0)
	b := seedBatch(t, store, p.ID, "L1", 3)

	err := uc.AdjustStock(context.Background(), "admin", dto.AdjustStockRequest{
		BatchID: b.ID,
		Delta:   1,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustStockOnProductDefaultBatch(t *testing.T) {
	store := memory.NewStore()
	uc := newInventoryUC(store)
	p := seedProduct(t, store, "SKU-1", 0, 0)

	// Sin lote por defecto: un incremento lo crea
	err := uc.AdjustStock(context.Background(), "admin", dto.AdjustStockRequest{
		ProductID: p.ID,
		Delta:     8,
		Reason:    "carga inicial",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), onHand(t, store, p.ID))

	err = uc.AdjustStock(context.Background(), "admin", dto.AdjustStockRequest{
		ProductID: p.ID,
		Delta:     -3,
		Reason:    "merma",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), onHand(t, store, p.ID))
}

func TestConvertBulkConservation(t *testing.T) {
	store := memory.NewStore()
	uc := newInventoryUC(store)
	// El ratio vive en el producto destino; el del origen no participa
	bulk := seedProduct(t, store, "SACO-ARROZ", 0, 3)
	unit := seedProduct(t, store, "ARROZ-KG", 0, 25)
	seedBatch(t, store, bulk.ID, "L1", 4)

	result, err := uc.ConvertBulk(context.Background(), "bodega1", dto.ConvertBulkRequest{
		SourceProductID: bulk.ID,
		TargetProductID: unit.ID,
		SourceQuantity:  2,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.QuantityConsumed)
	assert.Equal(t, int64(50), result.QuantityProduced)
	assert.Equal(t, int64(25), result.Ratio)
	assert.Equal(t, int64(2), onHand(t, store, bulk.ID))
	assert.Equal(t, int64(50), onHand(t, store, unit.ID))

	// Dos movimientos CONVERSION enlazados por el mismo reference_id
	movements, err := store.Repos().Movements.ListByReference(result.ConversionID)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	var net int64
	for _, m := range movements {
		assert.Equal(t, entity.MovementCategoryConversion, m.Category)
		net += m.Quantity
	}
	// Conservación: -2 del origen, +50 del destino
	assert.Equal(t, int64(48), net)
}

func TestConvertBulkDefaultRatio(t *testing.T) {
	store := memory.NewStore()
	uc := newInventoryUC(store)
	bulk := seedProduct(t, store, "CAJA", 0, 6)
	unit := seedProduct(t, store, "UNIDAD", 0, 0) // destino sin ratio definido: 1
	seedBatch(t, store, bulk.ID, "L1", 5)

	result, err := uc.ConvertBulk(context.Background(), "bodega1", dto.ConvertBulkRequest{
		SourceProductID: bulk.ID,
		TargetProductID: unit.ID,
		SourceQuantity:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.QuantityProduced)
	assert.Equal(t, int64(1), result.Ratio)
}

func TestConvertBulkInsufficientSource(t *testing.T) {
	store := memory.NewStore()
	uc := newInventoryUC(store)
	bulk := seedProduct(t, store, "SACO", 0, 0)
	unit := seedProduct(t, store, "KG", 0, 10)
	seedBatch(t, store, bulk.ID, "L1", 1)

	_, err := uc.ConvertBulk(context.Background(), "bodega1", dto.ConvertBulkRequest{
		SourceProductID: bulk.ID,
		TargetProductID: unit.ID,
		SourceQuantity:  2,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(1), onHand(t, store, bulk.ID))
	assert.Equal(t, int64(0), onHand(t, store, unit.ID))
}

func TestReplenishmentSuggestions(t *testing.T) {
	store := memory.NewStore()
	uc := newInventoryUC(store)
	replenishment := inventory.NewReplenishmentUseCase(uc, cache.NewNoop())

	low := seedProduct(t, store, "BAJO", 10, 0)
	seedBatch(t, store, low.ID, "L1", 4)
	healthy := seedProduct(t, store, "SANO", 10, 0)
	seedBatch(t, store, healthy.ID, "L2", 50)
	noLevel := seedProduct(t, store, "SIN-NIVEL", 0, 0)
	seedBatch(t, store, noLevel.ID, "L3", 0)

	list, err := replenishment.Suggestions(context.Background())
	require.NoError(t, err)

	require.Len(t, list, 1)
	assert.Equal(t, low.ID, list[0].ProductID)
	assert.Equal(t, int64(4), list[0].OnHand)
	// Sugerido: cubrir el doble del nivel de reorden
	assert.Equal(t, int64(16), list[0].SuggestedQty)
}
