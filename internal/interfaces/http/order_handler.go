package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mccmmj/cafe-web-sub007/internal/application/dto"
	"github.com/mccmmj/cafe-web-sub007/internal/application/procurement"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

// OrderHandler maneja las peticiones HTTP de órdenes de compra (protegido).
type OrderHandler struct {
	createUC     *procurement.CreateOrderUseCase
	transitionUC *procurement.TransitionOrderUseCase
	receiptUC    *procurement.RecordReceiptUseCase
	queryUC      *procurement.OrderQueryUseCase
	documentUC   *procurement.PODocumentUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(
	createUC *procurement.CreateOrderUseCase,
	transitionUC *procurement.TransitionOrderUseCase,
	receiptUC *procurement.RecordReceiptUseCase,
	queryUC *procurement.OrderQueryUseCase,
	documentUC *procurement.PODocumentUseCase,
) *OrderHandler {
	return &OrderHandler{
		createUC:     createUC,
		transitionUC: transitionUC,
		receiptUC:    receiptUC,
		queryUC:      queryUC,
		documentUC:   documentUC,
	}
}

// Create godoc
// @Summary      Crear orden de compra (DRAFT)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "supplier_id y líneas (item_id, quantity, unit_price)"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.createUC.Create(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        supplier_id  query  string  false  "Filtrar por proveedor"
// @Param        status       query  string  false  "Filtrar por estado"
// @Success      200  {array}   dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	filter := repository.OrderFilter{SupplierID: c.Query("supplier_id")}
	if st := c.Query("status"); st != "" {
		filter.Statuses = []string{st}
	}
	orders, err := h.queryUC.List(c.Context(), filter)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una orden con líneas y timestamps del ciclo de vida
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.queryUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// Transition godoc
// @Summary      Transicionar la orden de estado
// @Description  Aplica la máquina de estados del ciclo de vida. Rechaza
//
//	transiciones fuera de la tabla (409) y escrituras sobre una
//	versión vieja de la orden (409).
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la orden"
// @Param        body  body  dto.TransitionOrderRequest  true  "estado destino"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/transition [post]
func (h *OrderHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.transitionUC.Transition(c.Context(), c.Params("id"), in.Target)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// RecordReceipt godoc
// @Summary      Registrar recepción de mercancía contra una línea
// @Description  Acumula lo recibido por línea y deriva el estado de la orden
//
//	(PARTIALLY_RECEIVED / FULLY_RECEIVED). Una recepción que exceda
//	lo ordenado se rechaza completa con 422.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la orden"
// @Param        body  body  dto.RecordReceiptRequest  true  "line_id, quantity, received_at"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipts [post]
func (h *OrderHandler) RecordReceipt(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.receiptUC.Record(c.Context(), c.Params("id"), userID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// ListReceipts godoc
// @Summary      Listar recepciones de una orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {array}   map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipts [get]
func (h *OrderHandler) ListReceipts(c *fiber.Ctx) error {
	receipts, err := h.queryUC.Receipts(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]fiber.Map, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, fiber.Map{
			"id":          r.ID,
			"line_id":     r.LineID,
			"quantity":    r.Quantity,
			"received_at": r.ReceivedAt,
		})
	}
	return c.JSON(out)
}

// Document godoc
// @Summary      PDF de la orden de compra para el proveedor
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/document [get]
func (h *OrderHandler) Document(c *fiber.Ctx) error {
	data, err := h.documentUC.Generate(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="orden-compra.pdf"`)
	return c.Send(data)
}

// toOrderResponse mapea la entidad al DTO de salida.
func toOrderResponse(o *entity.PurchaseOrder) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ID:        l.ID,
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		})
	}
	return dto.OrderResponse{
		ID:              o.ID,
		Number:          o.Number,
		SupplierID:      o.SupplierID,
		Status:          o.Status,
		Lines:           lines,
		ExpectedTotal:   o.ExpectedTotal(),
		CreatedAt:       o.CreatedAt,
		ApprovedAt:      o.ApprovedAt,
		IssuedAt:        o.IssuedAt,
		FullyReceivedAt: o.FullyReceivedAt,
		InvoicedAt:      o.InvoicedAt,
		ClosedAt:        o.ClosedAt,
		CancelledAt:     o.CancelledAt,
		Notes:           o.Notes,
		Version:         o.Version,
	}
}
