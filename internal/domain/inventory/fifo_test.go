package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/inventory"
)

func batch(id string, qty int64, expires *time.Time, createdAt time.Time) *entity.InventoryBatch {
	return &entity.InventoryBatch{
		ID:        id,
		ProductID: "p1",
		Quantity:  qty,
		ExpiresAt: expires,
		Status:    entity.BatchStatusActive,
		CreatedAt: createdAt,
	}
}

func datePtr(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

// Una cantidad satisfacible con el lote de vencimiento más próximo (E1)
// solo debe consumir ese lote; E2 y E3 quedan intactos.
func TestPlanAllocationConsumesEarliestExpiryFirst(t *testing.T) {
	base := time.Now()
	batches := []*entity.InventoryBatch{
		batch("e3", 10, datePtr("2026-12-01"), base),
		batch("e1", 10, datePtr("2026-09-01"), base),
		batch("e2", 10, datePtr("2026-10-01"), base),
	}

	plan, err := inventory.PlanAllocation("p1", batches, 5)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "e1", plan[0].BatchID)
	assert.Equal(t, int64(5), plan[0].Quantity)
}

// Una cantidad que abarca E1+E2 debe consumirlos en orden y dejar E3 intacto.
func TestPlanAllocationSpansBatchesInOrder(t *testing.T) {
	base := time.Now()
	batches := []*entity.InventoryBatch{
		batch("e2", 10, datePtr("2026-10-01"), base),
		batch("e1", 10, datePtr("2026-09-01"), base),
		batch("e3", 10, datePtr("2026-12-01"), base),
	}

	plan, err := inventory.PlanAllocation("p1", batches, 15)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "e1", plan[0].BatchID)
	assert.Equal(t, int64(10), plan[0].Quantity)
	assert.Equal(t, "e2", plan[1].BatchID)
	assert.Equal(t, int64(5), plan[1].Quantity)
}

// Lotes sin vencimiento se tratan como "nunca vencen" y se consumen de último.
func TestPlanAllocationNoExpiryGoesLast(t *testing.T) {
	base := time.Now()
	batches := []*entity.InventoryBatch{
		batch("sin-vencimiento", 10, nil, base),
		batch("vence", 4, datePtr("2026-09-01"), base.Add(time.Hour)),
	}

	plan, err := inventory.PlanAllocation("p1", batches, 6)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "vence", plan[0].BatchID)
	assert.Equal(t, int64(4), plan[0].Quantity)
	assert.Equal(t, "sin-vencimiento", plan[1].BatchID)
	assert.Equal(t, int64(2), plan[1].Quantity)
}

func TestPlanAllocationInsufficientStock(t *testing.T) {
	base := time.Now()
	batches := []*entity.InventoryBatch{
		batch("a", 3, datePtr("2026-09-01"), base),
		batch("b", 2, nil, base),
	}

	_, err := inventory.PlanAllocation("p1", batches, 6)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var insufficientErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficientErr))
	assert.Equal(t, "p1", insufficientErr.ProductID)
	assert.Equal(t, int64(6), insufficientErr.Requested)
	assert.Equal(t, int64(5), insufficientErr.Available)
	assert.Equal(t, int64(1), insufficientErr.Shortfall())
}

// Lotes inactivos o vacíos no cuentan para la disponibilidad.
func TestPlanAllocationIgnoresInactiveBatches(t *testing.T) {
	base := time.Now()
	inactive := batch("inactivo", 50, datePtr("2026-01-01"), base)
	inactive.Status = entity.BatchStatusInactive
	batches := []*entity.InventoryBatch{
		inactive,
		batch("vacio", 0, datePtr("2026-02-01"), base),
		batch("activo", 5, datePtr("2026-03-01"), base),
	}

	assert.Equal(t, int64(5), inventory.TotalOnHand(batches[1:]))

	plan, err := inventory.PlanAllocation("p1", batches, 5)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, "activo", plan[0].BatchID)
}

func TestPlanAllocationRejectsNonPositiveQuantity(t *testing.T) {
	_, err := inventory.PlanAllocation("p1", nil, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.PlanAllocation("p1", nil, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConversionOutput(t *testing.T) {
	assert.Equal(t, int64(24), inventory.ConversionOutput(2, 12))
	// ratio sin definir (0) o inválido se trata como 1
	assert.Equal(t, int64(7), inventory.ConversionOutput(7, 0))
	assert.Equal(t, int64(7), inventory.ConversionOutput(7, -5))
}
