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

	"github.com/jhoicas/comercio-api/internal/application/auth"
	"github.com/jhoicas/comercio-api/internal/application/inventory"
	"github.com/jhoicas/comercio-api/internal/application/orders"
	"github.com/jhoicas/comercio-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/comercio-api/internal/infrastructure/pdf"
	"github.com/jhoicas/comercio-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/comercio-api/internal/interfaces/http"
	"github.com/jhoicas/comercio-api/pkg/config"
	"github.com/jhoicas/comercio-api/pkg/logger"
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
		Bool("auth", cfg.Auth.Enabled).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (las variantes transaccionales las crea el TxRunner)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	adjustStockUC := inventory.NewAdjustStockUseCase(txRunner, productRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	purchaseUC := orders.NewPurchaseUseCase(txRunner, supplierRepo, productRepo, purchaseRepo, adjustStockUC)
	saleUC := orders.NewSaleUseCase(txRunner, customerRepo, productRepo, saleRepo, adjustStockUC, pdfGenerator)
	productUC := usecase.NewProductUseCase(productRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	inventoryUC := usecase.NewInventoryQueryUseCase(stockRepo, movementRepo, productRepo)
	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Comercio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		SupplierUC:  supplierUC,
		CustomerUC:  customerUC,
		AdjustStock: adjustStockUC,
		InventoryUC: inventoryUC,
		PurchaseUC:  purchaseUC,
		SaleUC:      saleUC,
		AnalyticsUC: analyticsUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
		AuthEnabled: cfg.Auth.Enabled,
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
