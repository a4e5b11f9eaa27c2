package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mccmmj/cafe-web-sub007/internal/application/auth"
	"github.com/mccmmj/cafe-web-sub007/internal/application/metrics"
	"github.com/mccmmj/cafe-web-sub007/internal/application/procurement"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateOrderUC     *procurement.CreateOrderUseCase
	TransitionOrderUC *procurement.TransitionOrderUseCase
	RecordReceiptUC   *procurement.RecordReceiptUseCase
	RecordInvoiceUC   *procurement.RecordInvoiceUseCase
	OrderQueryUC      *procurement.OrderQueryUseCase
	PODocumentUC      *procurement.PODocumentUseCase
	CostHistoryUC     *procurement.CostHistoryUseCase
	SupplierUC        *procurement.SupplierUseCase
	AggregatorUC      *metrics.AggregatorUseCase
	SummaryUC         *metrics.SummaryUseCase
	AuthUC            *auth.AuthUseCase
	JWTSecret         string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; registro de usuarios reservado a admin
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin),
		authHandler.Register,
	)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Purchase orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(
		deps.CreateOrderUC, deps.TransitionOrderUC, deps.RecordReceiptUC,
		deps.OrderQueryUC, deps.PODocumentUC,
	)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/transition", orderHandler.Transition)
	orders.Post("/:id/receipts", orderHandler.RecordReceipt)
	orders.Get("/:id/receipts", orderHandler.ListReceipts)
	orders.Get("/:id/document", orderHandler.Document)

	// Reconciliación de facturas (protegido)
	reconciliationHandler := NewReconciliationHandler(deps.RecordInvoiceUC, deps.OrderQueryUC)
	orders.Post("/:id/invoices", reconciliationHandler.RecordInvoice)
	orders.Get("/:id/invoices", reconciliationHandler.ListInvoices)

	// Historial de costos (protegido)
	items := protected.Group("/items")
	costHandler := NewCostHistoryHandler(deps.CostHistoryUC)
	items.Post("/:id/cost", costHandler.RecordCostChange)
	items.Get("/:id/cost-history", costHandler.History)

	// Métricas de proveedores (protegido)
	metricsGroup := protected.Group("/metrics")
	metricsHandler := NewMetricsHandler(deps.AggregatorUC, deps.SummaryUC)
	metricsGroup.Get("/suppliers", metricsHandler.SupplierMetrics)
	metricsGroup.Get("/summary", metricsHandler.Summary)
}
