package entity

import "github.com/shopspring/decimal"

// SupplierMetric fila derivada de desempeño por proveedor × período mensual.
//
// Regla de diseño: ratios y promedios usan nil cuando no hay muestras que
// califiquen ("sin datos suficientes"), nunca cero; los contadores usan cero
// cuando no hay datos. El dashboard distingue así "0%" de "aún no medible".
// Las filas no tienen identidad propia más allá de (SupplierID, Period):
// se descartan y recalculan en cualquier momento.
type SupplierMetric struct {
	SupplierID   string
	SupplierName string
	Period       string // clave canónica "YYYY-MM"

	TotalPOs    int
	TotalSpend  decimal.Decimal // suma de totales esperados de órdenes creadas en el período
	OpenBalance decimal.Decimal // valor esperado emitido pero aún no facturado por completo

	AvgApprovalDays *decimal.Decimal // media de (approved - created) en días; nil sin muestras
	AvgIssueDays    *decimal.Decimal // media de (issued - approved)
	AvgReceiptDays  *decimal.Decimal // media de (fully received - issued)

	OnTimeRatio      *decimal.Decimal // en [0,1] o nil
	FulfillmentRatio *decimal.Decimal // en [0,1] o nil

	InvoiceExceptionRate     *decimal.Decimal // en [0,1] o nil
	VarianceRate             *decimal.Decimal // en [0,1] o nil
	AvgInvoiceThroughputDays *decimal.Decimal // media de (invoice - fully received); nil sin muestras

	InvoiceMatchCount     int // contadores: cero es un valor válido, distinto de "sin datos"
	InvoiceExceptionCount int
	VarianceMatchCount    int
}

// SupplierMetricSummary resumen global sobre un conjunto de filas
// SupplierMetric (un mismo alcance, ej. todos los proveedores de un período).
// Los promedios excluyen las filas con campo nil tanto del numerador como
// del denominador; si ninguna fila califica, el campo queda nil.
type SupplierMetricSummary struct {
	Period    string
	Suppliers int // filas de proveedor distintas en el alcance

	TotalPOs    int
	TotalSpend  decimal.Decimal
	OpenBalance decimal.Decimal

	AvgOnTimeRatio          *decimal.Decimal
	AvgFulfillmentRatio     *decimal.Decimal
	AvgInvoiceExceptionRate *decimal.Decimal
}
