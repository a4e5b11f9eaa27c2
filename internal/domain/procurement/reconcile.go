package procurement

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

// Tolerance parámetros de conciliación configurables.
type Tolerance struct {
	// Pct tolerancia porcentual sobre el total esperado de la orden dentro
	// de la cual una factura se considera "matched" (ej. 0.01 = 1%).
	Pct decimal.Decimal
	// LateInvoiceDays días después de la recepción total a partir de los
	// cuales una factura se marca como excepción late_invoice.
	LateInvoiceDays int
}

// ClassifyInvoice clasifica una factura contra el total esperado de su orden.
// Devuelve matched, o exception con la razón (amount_mismatch tiene prioridad
// sobre late_invoice). fullyReceivedAt es nil si la orden aún no se recibe
// por completo; en ese caso no aplica la excepción por tardanza.
func ClassifyInvoice(amount, expectedTotal decimal.Decimal, invoiceDate time.Time, fullyReceivedAt *time.Time, tol Tolerance) (status, reason string) {
	margin := expectedTotal.Mul(tol.Pct).Abs()
	if amount.Sub(expectedTotal).Abs().GreaterThan(margin) {
		return entity.InvoiceMatchException, entity.ExceptionAmountMismatch
	}
	if fullyReceivedAt != nil && tol.LateInvoiceDays > 0 {
		deadline := fullyReceivedAt.AddDate(0, 0, tol.LateInvoiceDays)
		if invoiceDate.After(deadline) {
			return entity.InvoiceMatchException, entity.ExceptionLateInvoice
		}
	}
	return entity.InvoiceMatchMatched, ""
}

// OrderVariance desviación relativa (facturado - esperado) / esperado de una
// orden. Devuelve nil si el total esperado es cero (sin base de comparación).
func OrderVariance(invoicedTotal, expectedTotal decimal.Decimal) *decimal.Decimal {
	if expectedTotal.IsZero() {
		return nil
	}
	v := invoicedTotal.Sub(expectedTotal).Div(expectedTotal)
	return &v
}

// VarianceWithinTolerance true si la desviación absoluta está dentro de la
// tolerancia porcentual configurada.
func VarianceWithinTolerance(variance decimal.Decimal, tol Tolerance) bool {
	return variance.Abs().LessThanOrEqual(tol.Pct.Abs())
}
