package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/retail-pos/internal/application/catalog"
	appinventory "github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/application/ledger"
	"github.com/tu-usuario/retail-pos/internal/application/purchasing"
	"github.com/tu-usuario/retail-pos/internal/application/sales"
	"github.com/tu-usuario/retail-pos/internal/application/uow"
	infracache "github.com/tu-usuario/retail-pos/internal/infrastructure/cache"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/memory"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/retail-pos/internal/interfaces/http"
	pkgcache "github.com/tu-usuario/retail-pos/pkg/cache"
	"github.com/tu-usuario/retail-pos/pkg/config"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Persistencia: PostgreSQL si está configurado; si no, store en memoria
	// (modo demo/desarrollo, los datos no sobreviven al proceso).
	var runner uow.Runner
	var repos *uow.Repos
	if cfg.DB.Configured() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		runner = postgres.NewTxRunner(pool)
		repos = postgres.NewRepos(pool)
		log.Info().Msg("persistencia: PostgreSQL")
	} else {
		store := memory.NewStore()
		runner = store
		repos = store.Repos()
		log.Warn().Msg("sin DATABASE_URL ni DB_HOST: usando store en memoria")
	}

	// Caché: Redis si está configurado, si no Noop.
	var cacheStore pkgcache.Store = pkgcache.NewNoop()
	if cfg.Redis.Addr != "" {
		redisCache, err := infracache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		cacheStore = redisCache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché: Redis")
	}

	productUC := catalog.NewProductUseCase(repos.Products, repos.Batches, log)
	saleUC := sales.NewSaleUseCase(runner, repos.Products, repos.Customers, repos.Sales, log)
	purchasingUC := purchasing.NewPurchasingUseCase(runner, repos.Products, repos.Suppliers, repos.Orders, repos.Supplies, log)
	inventoryUC := appinventory.NewInventoryUseCase(runner, repos.Products, repos.Batches, repos.Movements, log)
	replenishmentUC := appinventory.NewReplenishmentUseCase(inventoryUC, cacheStore)
	accountUC := ledger.NewAccountUseCase(repos.Customers, repos.Suppliers, repos.Ledger)
	paymentUC := ledger.NewPaymentUseCase(runner, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// swagger.New lee el archivo al registrarse y hace panic si no existe.
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Retail POS API",
		}))
	} else {
		log.Warn().Msg("docs/swagger.json no encontrado: Swagger UI deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:       productUC,
		SaleUC:          saleUC,
		PurchasingUC:    purchasingUC,
		InventoryUC:     inventoryUC,
		ReplenishmentUC: replenishmentUC,
		AccountUC:       accountUC,
		PaymentUC:       paymentUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
