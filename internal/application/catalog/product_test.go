package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-pos/internal/application/catalog"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/memory"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

func newProductUC(store *memory.Store) *catalog.ProductUseCase {
	r := store.Repos()
	return catalog.NewProductUseCase(r.Products, r.Batches, logger.Nop())
}

func TestCreateProductAndDuplicateSKU(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUC(store)

	created, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU:   "ARROZ-KG",
		Name:  "Arroz por kilo",
		Price: decimal.NewFromInt(120),
		Cost:  decimal.NewFromInt(80),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), created.OnHand)
	assert.Equal(t, int64(1), created.ConversionRatio)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{
		SKU:   "ARROZ-KG",
		Name:  "Otro arroz",
		Price: decimal.NewFromInt(100),
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateProductValidation(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUC(store)

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "sin sku"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{
		SKU:   "X",
		Name:  "precio negativo",
		Price: decimal.NewFromInt(-1),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPatchProductAppliesOnlyPresentFields(t *testing.T) {
	store := memory.NewStore()
	uc := newProductUC(store)

	created, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU:          "ARROZ-KG",
		Name:         "Arroz por kilo",
		Price:        decimal.NewFromInt(120),
		Cost:         decimal.NewFromInt(80),
		ReorderLevel: 10,
	})
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(135)
	patched, err := uc.Patch(context.Background(), created.ID, dto.PatchProductRequest{
		Price: &newPrice,
	})
	require.NoError(t, err)

	assert.True(t, patched.Price.Equal(newPrice))
	// Lo no enviado no cambia
	assert.Equal(t, created.Name, patched.Name)
	assert.True(t, patched.Cost.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, int64(10), patched.ReorderLevel)

	_, err = uc.Patch(context.Background(), "no-existe", dto.PatchProductRequest{Price: &newPrice})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
