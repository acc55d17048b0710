package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GustavoCollie/GUSMI-STORE/internal/application/analytics"
	"github.com/GustavoCollie/GUSMI-STORE/internal/application/auth"
	"github.com/GustavoCollie/GUSMI-STORE/internal/application/inventory"
	"github.com/GustavoCollie/GUSMI-STORE/internal/application/purchasing"
	"github.com/GustavoCollie/GUSMI-STORE/internal/application/sales"
	"github.com/GustavoCollie/GUSMI-STORE/internal/infrastructure/postgres"
	httpRouter "github.com/GustavoCollie/GUSMI-STORE/internal/interfaces/http"
	"github.com/GustavoCollie/GUSMI-STORE/pkg/config"
	"github.com/GustavoCollie/GUSMI-STORE/pkg/logger"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	purchaseOrderRepo := postgres.NewPurchaseOrderRepository(pool)
	salesOrderRepo := postgres.NewSalesOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	inventoryUC := inventory.NewUseCase(txRunner, productRepo, movementRepo)
	purchasingUC := purchasing.NewUseCase(txRunner, supplierRepo, purchaseOrderRepo, productRepo, log)
	salesUC := sales.NewUseCase(salesOrderRepo, productRepo)
	analyticsUC := analytics.NewUseCase(purchaseOrderRepo, salesOrderRepo, productRepo)
	authUC := auth.NewUseCase(userRepo, cfg.JWT)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GUSMI STORE API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC:  inventoryUC,
		PurchasingUC: purchasingUC,
		SalesUC:      salesUC,
		AnalyticsUC:  analyticsUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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
