package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mccmmj/cafe-web-sub007/internal/application/dto"
	"github.com/mccmmj/cafe-web-sub007/internal/application/procurement"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

// ReconciliationHandler maneja las facturas de proveedor y su conciliación
// contra la orden (protegido).
type ReconciliationHandler struct {
	invoiceUC *procurement.RecordInvoiceUseCase
	queryUC   *procurement.OrderQueryUseCase
}

// NewReconciliationHandler construye el handler.
func NewReconciliationHandler(invoiceUC *procurement.RecordInvoiceUseCase, queryUC *procurement.OrderQueryUseCase) *ReconciliationHandler {
	return &ReconciliationHandler{invoiceUC: invoiceUC, queryUC: queryUC}
}

// RecordInvoice godoc
// @Summary      Registrar factura de proveedor contra una orden
// @Description  Clasifica la factura al momento de registrarla: matched, o
//
//	exception con razón amount_mismatch / late_invoice.
//
// @Tags         reconciliation
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la orden"
// @Param        body  body  dto.RecordInvoiceRequest  true  "number, amount, invoice_date"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/invoices [post]
func (h *ReconciliationHandler) RecordInvoice(c *fiber.Ctx) error {
	var in dto.RecordInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.invoiceUC.Record(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInvoiceResponse(invoice))
}

// ListInvoices godoc
// @Summary      Listar facturas registradas contra una orden
// @Tags         reconciliation
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {array}   dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/invoices [get]
func (h *ReconciliationHandler) ListInvoices(c *fiber.Ctx) error {
	invoices, err := h.queryUC.Invoices(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, toInvoiceResponse(inv))
	}
	return c.JSON(out)
}

func toInvoiceResponse(inv *entity.InvoiceRecord) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:              inv.ID,
		OrderID:         inv.OrderID,
		Number:          inv.Number,
		Amount:          inv.Amount,
		InvoiceDate:     inv.InvoiceDate,
		MatchStatus:     inv.MatchStatus,
		ExceptionReason: inv.ExceptionReason,
	}
}
