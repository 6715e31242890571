package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-pos/internal/application/catalog"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/application/ledger"
	"github.com/tu-usuario/retail-pos/internal/application/purchasing"
	"github.com/tu-usuario/retail-pos/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *catalog.ProductUseCase
	SaleUC          *sales.SaleUseCase
	PurchasingUC    *purchasing.PurchasingUseCase
	InventoryUC     *inventory.InventoryUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	AccountUC       *ledger.AccountUseCase
	PaymentUC       *ledger.PaymentUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", ActorMiddleware())

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Patch)

	// Ventas
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/void", saleHandler.Void)

	// Suministros y órdenes de compra
	purchasingHandler := NewPurchasingHandler(deps.PurchasingUC)
	supplies := api.Group("/supplies")
	supplies.Post("/", purchasingHandler.ReceiveSupply)
	supplies.Get("/:id", purchasingHandler.GetSupply)
	supplies.Post("/:id/void", purchasingHandler.VoidSupply)

	orders := api.Group("/purchase-orders")
	orders.Post("/", purchasingHandler.CreateOrder)
	orders.Get("/:id", purchasingHandler.GetOrder)
	orders.Post("/:id/receive", purchasingHandler.ReceiveOrder)
	orders.Post("/:id/cancel", purchasingHandler.CancelOrder)

	// Inventario
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ReplenishmentUC)
	invGroup.Post("/adjustments", inventoryHandler.Adjust)
	invGroup.Post("/conversions", inventoryHandler.Convert)
	invGroup.Get("/movements/:productID", inventoryHandler.ListMovements)
	invGroup.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Cuentas: clientes, proveedores, pagos y libro auxiliar
	accountHandler := NewAccountHandler(deps.AccountUC, deps.PaymentUC)
	customers := api.Group("/customers")
	customers.Post("/", accountHandler.CreateCustomer)
	customers.Get("/", accountHandler.ListCustomers)
	customers.Post("/:id/payments", accountHandler.CustomerPayment)
	customers.Get("/:id/ledger", accountHandler.CustomerLedger)

	suppliersGroup := api.Group("/suppliers")
	suppliersGroup.Post("/", accountHandler.CreateSupplier)
	suppliersGroup.Get("/", accountHandler.ListSuppliers)
	suppliersGroup.Post("/:id/payments", accountHandler.SupplierPayment)
	suppliersGroup.Get("/:id/ledger", accountHandler.SupplierLedger)
}
