package http

import (
	"github.com/GustavoCollie/GUSMI-STORE/internal/application/analytics"
	"github.com/GustavoCollie/GUSMI-STORE/internal/application/auth"
	"github.com/GustavoCollie/GUSMI-STORE/internal/application/inventory"
	"github.com/GustavoCollie/GUSMI-STORE/internal/application/purchasing"
	"github.com/GustavoCollie/GUSMI-STORE/internal/application/sales"
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC  *inventory.UseCase
	PurchasingUC *purchasing.UseCase
	SalesUC      *sales.UseCase
	AnalyticsUC  *analytics.UseCase
	AuthUC       *auth.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products e inventario (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.InventoryUC)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id", productHandler.Patch)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/stock/receive", inventoryHandler.ReceiveStock)
	products.Post("/:id/stock/dispatch", inventoryHandler.DispatchStock)

	invGroup := protected.Group("/inventory")
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/pending-returns", inventoryHandler.PendingReturns)
	invGroup.Post("/returns", inventoryHandler.RegisterReturn)

	// Suppliers y órdenes de compra (protegido)
	purchaseHandler := NewPurchaseHandler(deps.PurchasingUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", purchaseHandler.CreateSupplier)
	suppliers.Get("/", purchaseHandler.ListSuppliers)
	suppliers.Patch("/:id", purchaseHandler.UpdateSupplier)
	suppliers.Delete("/:id", purchaseHandler.DeleteSupplier)

	purchases := protected.Group("/purchase-orders")
	purchases.Post("/", purchaseHandler.CreateOrder)
	purchases.Get("/", purchaseHandler.ListOrders)
	purchases.Get("/kpis", purchaseHandler.KPIs)
	purchases.Get("/:id", purchaseHandler.GetOrder)
	purchases.Put("/:id", purchaseHandler.UpdateOrder)
	purchases.Delete("/:id", purchaseHandler.DeleteOrder)
	purchases.Post("/:id/receive", purchaseHandler.ReceiveOrder)
	purchases.Post("/:id/reject", purchaseHandler.RejectOrder)

	// Órdenes de venta (protegido)
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup := protected.Group("/sales-orders")
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/kpis", salesHandler.KPIs)
	salesGroup.Get("/:id", salesHandler.GetByID)
	salesGroup.Put("/:id", salesHandler.Update)
	salesGroup.Patch("/:id/status", salesHandler.UpdateStatus)
	salesGroup.Delete("/:id", salesHandler.Delete)

	// Analytics (protegido)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup := protected.Group("/analytics")
	analyticsGroup.Get("/summary", analyticsHandler.Summary)
	analyticsGroup.Get("/price-variation", analyticsHandler.PriceVariation)
}
