package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de conciliación de una factura de proveedor.
const (
	InvoiceMatchMatched   = "matched"
	InvoiceMatchException = "exception"
)

// Razones de excepción de factura.
const (
	ExceptionAmountMismatch = "amount_mismatch" // monto fuera de tolerancia
	ExceptionLateInvoice    = "late_invoice"    // facturada demasiados días después de la recepción total
)

// InvoiceRecord una factura del proveedor contra una orden de compra.
// Se permiten varias facturas por orden (facturación parcial); la
// clasificación matched/exception es por factura e independiente.
type InvoiceRecord struct {
	ID              string
	OrderID         string
	Number          string // número de factura del proveedor
	Amount          decimal.Decimal
	InvoiceDate     time.Time
	MatchStatus     string // matched | exception
	ExceptionReason string // amount_mismatch | late_invoice; vacío si matched
	CreatedAt       time.Time
}
