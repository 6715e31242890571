package http_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-pos/internal/application/catalog"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	appinventory "github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/application/ledger"
	"github.com/tu-usuario/retail-pos/internal/application/purchasing"
	"github.com/tu-usuario/retail-pos/internal/application/sales"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/memory"
	httpRouter "github.com/tu-usuario/retail-pos/internal/interfaces/http"
	"github.com/tu-usuario/retail-pos/pkg/cache"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	r := store.Repos()
	log := logger.Nop()

	inventoryUC := appinventory.NewInventoryUseCase(store, r.Products, r.Batches, r.Movements, log)

	app := fiber.New()
	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:       catalog.NewProductUseCase(r.Products, r.Batches, log),
		SaleUC:          sales.NewSaleUseCase(store, r.Products, r.Customers, r.Sales, log),
		PurchasingUC:    purchasing.NewPurchasingUseCase(store, r.Products, r.Suppliers, r.Orders, r.Supplies, log),
		InventoryUC:     inventoryUC,
		ReplenishmentUC: appinventory.NewReplenishmentUseCase(inventoryUC, cache.NewNoop()),
		AccountUC:       ledger.NewAccountUseCase(r.Customers, r.Suppliers, r.Ledger),
		PaymentUC:       ledger.NewPaymentUseCase(store, log),
	})
	return app, store
}

func TestProductEndpointCreateAndConflict(t *testing.T) {
	app, _ := newTestApp(t)

	body := dto.CreateProductRequest{SKU: "ARROZ-KG", Name: "Arroz por kilo"}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/products", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// SKU repetido es 409
	req = httptest.NewRequest("POST", "/api/products", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSaleEndpointErrorMapping(t *testing.T) {
	app, _ := newTestApp(t)

	// Producto inexistente: 404
	body := dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "no-existe", Quantity: 1}},
	}
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/sales", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Venta sin líneas: 400
	payload, err = json.Marshal(dto.CreateSaleRequest{})
	require.NoError(t, err)
	req = httptest.NewRequest("POST", "/api/sales", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var errBody dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, "VALIDATION", errBody.Code)
}

func TestVoidUnknownSaleReturns404(t *testing.T) {
	app, _ := newTestApp(t)

	payload, err := json.Marshal(dto.VoidSaleRequest{Reason: "prueba"})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/sales/no-existe/void", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
