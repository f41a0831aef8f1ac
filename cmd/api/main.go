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

	"github.com/magazyn-erp/magazyn-api/internal/application/auth"
	"github.com/magazyn-erp/magazyn-api/internal/application/billing"
	"github.com/magazyn-erp/magazyn-api/internal/application/catalog"
	"github.com/magazyn-erp/magazyn-api/internal/application/orders"
	"github.com/magazyn-erp/magazyn-api/internal/application/stock"
	infracache "github.com/magazyn-erp/magazyn-api/internal/infrastructure/cache"
	"github.com/magazyn-erp/magazyn-api/internal/infrastructure/ksef"
	infrapdf "github.com/magazyn-erp/magazyn-api/internal/infrastructure/pdf"
	"github.com/magazyn-erp/magazyn-api/internal/infrastructure/postgres"
	httpRouter "github.com/magazyn-erp/magazyn-api/internal/interfaces/http"
	"github.com/magazyn-erp/magazyn-api/pkg/config"
	"github.com/magazyn-erp/magazyn-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	contractorRepo := postgres.NewContractorRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	attachmentRepo := postgres.NewAttachmentRepository(pool)
	logRepo := postgres.NewOperationLogRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	readCache := infracache.New(cfg.Cache.Size, cfg.Cache.TTL)

	applyMovementUC := stock.NewApplyMovementUseCase(txRunner, itemRepo, logRepo)
	movementQueryUC := stock.NewMovementQueryUseCase(movementRepo, logRepo)
	attachmentUC := stock.NewAttachmentUseCase(movementRepo, attachmentRepo, cfg.Invoice.AttachmentDir)
	itemUC := catalog.NewItemUseCase(itemRepo, logRepo, applyMovementUC, readCache)
	contractorUC := catalog.NewContractorUseCase(contractorRepo, readCache)
	locationUC := catalog.NewLocationUseCase(locationRepo, readCache)
	orderUC := orders.NewOrderUseCase(txRunner, orderRepo, itemRepo, contractorRepo)
	purchaseUC := orders.NewPurchaseUseCase(txRunner, purchaseRepo, itemRepo, contractorRepo)

	company := billing.Company{
		Name:    cfg.Invoice.CompanyName,
		NIP:     cfg.Invoice.CompanyNIP,
		Address: cfg.Invoice.CompanyAddress,
		City:    cfg.Invoice.CompanyCity,
		ZipCode: cfg.Invoice.CompanyZipCode,
		Email:   cfg.Invoice.CompanyEmail,
		Phone:   cfg.Invoice.CompanyPhone,
		Bank:    cfg.Invoice.CompanyBank,
		Account: cfg.Invoice.CompanyAccount,
	}

	ksefClient := ksef.NewClient(cfg.KSeF, log.Component("ksef"))
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, contractorRepo, orderRepo, itemRepo, ksefClient, company)
	pdfGenerator := infrapdf.NewMarotoInvoiceGenerator()
	invoicePDFUC := billing.NewInvoicePDFUseCase(invoiceUC, pdfGenerator, invoiceRepo, company, cfg.Invoice.PDFDir)

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

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Magazyn API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ItemUC:        itemUC,
		ContractorUC:  contractorUC,
		LocationUC:    locationUC,
		ApplyMovement: applyMovementUC,
		MovementQuery: movementQueryUC,
		AttachmentUC:  attachmentUC,
		OrderUC:       orderUC,
		PurchaseUC:    purchaseUC,
		InvoiceUC:     invoiceUC,
		InvoicePDF:    invoicePDFUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
