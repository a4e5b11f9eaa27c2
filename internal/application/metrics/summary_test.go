package metrics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mccmmj/cafe-web-sub007/internal/application/metrics"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

func TestReduce_ExcluyeNilDeLosPromedios(t *testing.T) {
	onTime := dec("0.8")
	rows := []entity.SupplierMetric{
		{
			SupplierID:  "sup-1",
			TotalPOs:    3,
			TotalSpend:  dec("120.00"),
			OpenBalance: dec("40.00"),
			OnTimeRatio: &onTime,
		},
		{
			SupplierID:  "sup-2",
			TotalPOs:    1,
			TotalSpend:  dec("15.50"),
			OpenBalance: dec("15.50"),
			OnTimeRatio: nil, // sin recepciones medibles: fuera del promedio
		},
	}

	summary := metrics.Reduce("2024-03", rows)

	assert.Equal(t, "2024-03", summary.Period)
	assert.Equal(t, 2, summary.Suppliers)
	assert.Equal(t, 4, summary.TotalPOs)
	requireDec(t, "135.50", summary.TotalSpend)
	requireDec(t, "55.50", summary.OpenBalance)

	// la fila nil no entra ni al numerador ni al denominador
	requireDecPtr(t, "0.8", summary.AvgOnTimeRatio)
	assert.Nil(t, summary.AvgFulfillmentRatio)
	assert.Nil(t, summary.AvgInvoiceExceptionRate)
}

func TestReduce_SinFilas(t *testing.T) {
	summary := metrics.Reduce("2024-03", nil)

	assert.Equal(t, 0, summary.Suppliers)
	assert.Equal(t, 0, summary.TotalPOs)
	requireDec(t, "0", summary.TotalSpend)
	assert.Nil(t, summary.AvgOnTimeRatio)
	assert.Nil(t, summary.AvgInvoiceExceptionRate)
}

func TestGetSummary_SobreElSnapshot(t *testing.T) {
	agg := metrics.NewAggregatorUseCase(newFixtureStore(), testConfig())
	uc := metrics.NewSummaryUseCase(agg)

	summary, err := uc.GetSummary(context.Background(), "2024-03")
	require.NoError(t, err)

	// solo sup-1 tiene actividad en el período
	assert.Equal(t, 1, summary.Suppliers)
	assert.Equal(t, 2, summary.TotalPOs)
	requireDec(t, "40.00", summary.TotalSpend)
	requireDec(t, "20.00", summary.OpenBalance)
	requireDecPtr(t, "1", summary.AvgOnTimeRatio)
	requireDecPtr(t, "1", summary.AvgFulfillmentRatio)
	requireDecPtr(t, "0", summary.AvgInvoiceExceptionRate)
}
