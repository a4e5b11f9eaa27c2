package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mccmmj/cafe-web-sub007/internal/application/dto"
	"github.com/mccmmj/cafe-web-sub007/internal/application/metrics"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

// MetricsHandler expone las métricas de desempeño de proveedores (protegido).
type MetricsHandler struct {
	aggregatorUC *metrics.AggregatorUseCase
	summaryUC    *metrics.SummaryUseCase
}

// NewMetricsHandler construye el handler.
func NewMetricsHandler(aggregatorUC *metrics.AggregatorUseCase, summaryUC *metrics.SummaryUseCase) *MetricsHandler {
	return &MetricsHandler{aggregatorUC: aggregatorUC, summaryUC: summaryUC}
}

// SupplierMetrics godoc
// @Summary      Métricas por proveedor de un período mensual
// @Description  Recalcula todo desde los registros fuente. Con supplier_id
//
//	devuelve solo esa fila (aunque no tenga actividad); sin él,
//	todos los proveedores con actividad en el período.
//
// @Tags         metrics
// @Security     Bearer
// @Produce      json
// @Param        period       query  string  true   "Período YYYY-MM"
// @Param        supplier_id  query  string  false  "Limitar a un proveedor"
// @Success      200  {array}   dto.SupplierMetricDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/metrics/suppliers [get]
func (h *MetricsHandler) SupplierMetrics(c *fiber.Ctx) error {
	rows, err := h.aggregatorUC.GetSupplierMetrics(c.Context(), c.Query("period"), c.Query("supplier_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.SupplierMetricDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, toSupplierMetricDTO(r))
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen global de un período mensual
// @Tags         metrics
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  true  "Período YYYY-MM"
// @Success      200  {object}  dto.SupplierMetricSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/metrics/summary [get]
func (h *MetricsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.summaryUC.GetSummary(c.Context(), c.Query("period"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.SupplierMetricSummaryDTO{
		Period:                  summary.Period,
		Suppliers:               summary.Suppliers,
		TotalPOs:                summary.TotalPOs,
		TotalSpend:              summary.TotalSpend,
		OpenBalance:             summary.OpenBalance,
		AvgOnTimeRatio:          summary.AvgOnTimeRatio,
		AvgFulfillmentRatio:     summary.AvgFulfillmentRatio,
		AvgInvoiceExceptionRate: summary.AvgInvoiceExceptionRate,
	})
}

func toSupplierMetricDTO(r entity.SupplierMetric) dto.SupplierMetricDTO {
	return dto.SupplierMetricDTO{
		SupplierID:               r.SupplierID,
		SupplierName:             r.SupplierName,
		Period:                   r.Period,
		TotalPOs:                 r.TotalPOs,
		TotalSpend:               r.TotalSpend,
		OpenBalance:              r.OpenBalance,
		AvgApprovalDays:          r.AvgApprovalDays,
		AvgIssueDays:             r.AvgIssueDays,
		AvgReceiptDays:           r.AvgReceiptDays,
		OnTimeRatio:              r.OnTimeRatio,
		FulfillmentRatio:         r.FulfillmentRatio,
		InvoiceExceptionRate:     r.InvoiceExceptionRate,
		VarianceRate:             r.VarianceRate,
		AvgInvoiceThroughputDays: r.AvgInvoiceThroughputDays,
		InvoiceMatchCount:        r.InvoiceMatchCount,
		InvoiceExceptionCount:    r.InvoiceExceptionCount,
		VarianceMatchCount:       r.VarianceMatchCount,
	}
}
