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
	"github.com/shopspring/decimal"

	"github.com/mccmmj/cafe-web-sub007/internal/application/auth"
	appmetrics "github.com/mccmmj/cafe-web-sub007/internal/application/metrics"
	appproc "github.com/mccmmj/cafe-web-sub007/internal/application/procurement"
	domainproc "github.com/mccmmj/cafe-web-sub007/internal/domain/procurement"
	infrapdf "github.com/mccmmj/cafe-web-sub007/internal/infrastructure/pdf"
	"github.com/mccmmj/cafe-web-sub007/internal/infrastructure/postgres"
	httpRouter "github.com/mccmmj/cafe-web-sub007/internal/interfaces/http"
	"github.com/mccmmj/cafe-web-sub007/pkg/config"
	"github.com/mccmmj/cafe-web-sub007/pkg/logger"
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
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	receiptRepo := postgres.NewReceiptRecordRepository(pool)
	invoiceRepo := postgres.NewInvoiceRecordRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	historyRepo := postgres.NewCostHistoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	tolerance := domainproc.Tolerance{
		Pct:             decimal.NewFromFloat(cfg.Procurement.InvoiceTolerancePct),
		LateInvoiceDays: cfg.Procurement.LateInvoiceDays,
	}

	createOrderUC := appproc.NewCreateOrderUseCase(orderRepo, supplierRepo, itemRepo)
	transitionOrderUC := appproc.NewTransitionOrderUseCase(txRunner)
	recordReceiptUC := appproc.NewRecordReceiptUseCase(txRunner)
	recordInvoiceUC := appproc.NewRecordInvoiceUseCase(txRunner, tolerance)
	orderQueryUC := appproc.NewOrderQueryUseCase(orderRepo, receiptRepo, invoiceRepo)
	costHistoryUC := appproc.NewCostHistoryUseCase(txRunner, historyRepo, itemRepo)
	supplierUC := appproc.NewSupplierUseCase(supplierRepo)

	// PDF: documento de la orden de compra para enviar al proveedor
	poGenerator := infrapdf.NewMarotoPOGenerator(cfg.App.Name)
	poDocumentUC := appproc.NewPODocumentUseCase(orderRepo, supplierRepo, poGenerator)

	aggregatorUC := appmetrics.NewAggregatorUseCase(txRunner, appmetrics.Config{
		ExpectedLeadTimeDays: cfg.Procurement.ExpectedLeadTimeDays,
		Tolerance:            tolerance,
	})
	summaryUC := appmetrics.NewSummaryUseCase(aggregatorUC)

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
		Title:    cfg.App.Name + " API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateOrderUC:     createOrderUC,
		TransitionOrderUC: transitionOrderUC,
		RecordReceiptUC:   recordReceiptUC,
		RecordInvoiceUC:   recordInvoiceUC,
		OrderQueryUC:      orderQueryUC,
		PODocumentUC:      poDocumentUC,
		CostHistoryUC:     costHistoryUC,
		SupplierUC:        supplierUC,
		AggregatorUC:      aggregatorUC,
		SummaryUC:         summaryUC,
		AuthUC:            authUC,
		JWTSecret:         cfg.JWT.Secret,
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
