package metrics

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

// Reduce combina filas SupplierMetric de un mismo alcance en un resumen
// global: sumas planas para montos y conteos, y medias solo sobre las filas
// donde el campo correspondiente no es nil (una fila nil se excluye del
// numerador Y del denominador, nunca se promedia como cero). Si ninguna fila
// califica, el campo del resumen queda nil.
func Reduce(period string, rows []entity.SupplierMetric) entity.SupplierMetricSummary {
	summary := entity.SupplierMetricSummary{
		Period:      period,
		Suppliers:   len(rows),
		TotalSpend:  decimal.Zero,
		OpenBalance: decimal.Zero,
	}

	var onTime, fulfillment, exceptionRate []decimal.Decimal
	for _, r := range rows {
		summary.TotalPOs += r.TotalPOs
		summary.TotalSpend = summary.TotalSpend.Add(r.TotalSpend)
		summary.OpenBalance = summary.OpenBalance.Add(r.OpenBalance)

		if r.OnTimeRatio != nil {
			onTime = append(onTime, *r.OnTimeRatio)
		}
		if r.FulfillmentRatio != nil {
			fulfillment = append(fulfillment, *r.FulfillmentRatio)
		}
		if r.InvoiceExceptionRate != nil {
			exceptionRate = append(exceptionRate, *r.InvoiceExceptionRate)
		}
	}

	summary.AvgOnTimeRatio = meanOf(onTime)
	summary.AvgFulfillmentRatio = meanOf(fulfillment)
	summary.AvgInvoiceExceptionRate = meanOf(exceptionRate)
	return summary
}

// SummaryUseCase calcula el resumen global de un período reutilizando el
// agregador (mismas filas, mismo snapshot de registros).
type SummaryUseCase struct {
	aggregator *AggregatorUseCase
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(aggregator *AggregatorUseCase) *SummaryUseCase {
	return &SummaryUseCase{aggregator: aggregator}
}

// GetSummary filas de todos los proveedores del período reducidas a un solo
// objeto.
func (uc *SummaryUseCase) GetSummary(ctx context.Context, period string) (entity.SupplierMetricSummary, error) {
	rows, err := uc.aggregator.GetSupplierMetrics(ctx, period, "")
	if err != nil {
		return entity.SupplierMetricSummary{}, err
	}
	return Reduce(period, rows), nil
}
