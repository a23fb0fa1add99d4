package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercio-api/internal/application/auth"
	"github.com/jhoicas/comercio-api/internal/application/inventory"
	"github.com/jhoicas/comercio-api/internal/application/orders"
	"github.com/jhoicas/comercio-api/internal/application/usecase"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	CustomerUC  *usecase.CustomerUseCase
	AdjustStock *inventory.AdjustStockUseCase
	InventoryUC *usecase.InventoryQueryUseCase
	PurchaseUC  *orders.PurchaseUseCase
	SaleUC      *orders.SaleUseCase
	AnalyticsUC *usecase.AnalyticsUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
	AuthEnabled bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas. Con AUTH_ENABLED=false se montan middlewares anónimos
	// (decisión explícita de configuración, no un bypass).
	guard := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)
	if !deps.AuthEnabled {
		guard = AnonymousMiddleware()
		adminOnly = AnonymousMiddleware()
	}
	protected := api.Group("/", guard)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Inventory: las rutas fijas van antes de /:productId
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustStock, deps.InventoryUC)
	invGroup.Post("/adjust", inventoryHandler.Adjust)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/summary", inventoryHandler.Summary)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/out-of-stock", inventoryHandler.OutOfStock)
	invGroup.Get("/movements", inventoryHandler.Movements)
	invGroup.Get("/:productId", inventoryHandler.GetByProduct)

	// Purchase orders
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Patch("/:id/status", purchaseHandler.UpdateStatus)
	purchases.Delete("/:id", adminOnly, purchaseHandler.Delete)

	// Sale orders
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/pdf", saleHandler.GetPDF)
	sales.Patch("/:id/status", saleHandler.UpdateStatus)
	sales.Delete("/:id", adminOnly, saleHandler.Delete)

	// Analytics
	analytics := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analytics.Get("/dashboard", analyticsHandler.Dashboard)
	analytics.Get("/sales-report", analyticsHandler.SalesReport)
	analytics.Get("/purchase-report", analyticsHandler.PurchaseReport)
	analytics.Get("/top-products", analyticsHandler.TopProducts)
	analytics.Get("/top-customers", analyticsHandler.TopCustomers)
}
