package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mccmmj/cafe-web-sub007/internal/application/dto"
	"github.com/mccmmj/cafe-web-sub007/internal/application/procurement"
)

// CostHistoryHandler maneja el historial de costos de ítems (protegido).
type CostHistoryHandler struct {
	uc *procurement.CostHistoryUseCase
}

// NewCostHistoryHandler construye el handler.
func NewCostHistoryHandler(uc *procurement.CostHistoryUseCase) *CostHistoryHandler {
	return &CostHistoryHandler{uc: uc}
}

// RecordCostChange godoc
// @Summary      Registrar cambio de costo de un ítem
// @Description  Agrega la entrada al log inmutable y actualiza el costo
//
//	vigente del ítem en la misma transacción.
//
// @Tags         cost-history
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del ítem"
// @Param        body  body  dto.RecordCostChangeRequest  true  "new_cost y opcionalmente changed_at"
// @Success      201   {object}  dto.CostHistoryEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/cost [post]
func (h *CostHistoryHandler) RecordCostChange(c *fiber.Ctx) error {
	var in dto.RecordCostChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	changedAt := in.ChangedAt
	if changedAt.IsZero() {
		changedAt = time.Now()
	}
	entry, err := h.uc.RecordCostChange(c.Context(), c.Params("id"), in.NewCost, changedAt)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CostHistoryEntryResponse{
		ItemID:    entry.ItemID,
		OldCost:   entry.OldCost,
		NewCost:   entry.NewCost,
		ChangedAt: entry.ChangedAt,
	})
}

// History godoc
// @Summary      Historial de costos de un ítem
// @Description  Entradas más recientes primero; máximo 20 por consulta.
// @Tags         cost-history
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del ítem"
// @Param        limit  query  int     false  "Máximo de entradas (tope 20)"
// @Success      200  {array}   dto.CostHistoryEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/cost-history [get]
func (h *CostHistoryHandler) History(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")
	entries, err := h.uc.History(c.Context(), c.Params("id"), limit)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.CostHistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.CostHistoryEntryResponse{
			ItemID:    e.ItemID,
			OldCost:   e.OldCost,
			NewCost:   e.NewCost,
			ChangedAt: e.ChangedAt,
		})
	}
	return c.JSON(out)
}
