package dto

import "github.com/shopspring/decimal"

// SupplierMetricDTO fila de métricas por proveedor × período.
// Los punteros serializan a null cuando no hay datos suficientes; los
// contadores siempre llevan valor (cero incluido).
type SupplierMetricDTO struct {
	SupplierID   string `json:"supplier_id"`
	SupplierName string `json:"supplier_name,omitempty"`
	Period       string `json:"period"` // "YYYY-MM"

	TotalPOs    int             `json:"total_pos"`
	TotalSpend  decimal.Decimal `json:"total_spend"`
	OpenBalance decimal.Decimal `json:"open_balance"`

	AvgApprovalDays *decimal.Decimal `json:"avg_approval_days"`
	AvgIssueDays    *decimal.Decimal `json:"avg_issue_days"`
	AvgReceiptDays  *decimal.Decimal `json:"avg_receipt_days"`

	OnTimeRatio      *decimal.Decimal `json:"on_time_ratio"`
	FulfillmentRatio *decimal.Decimal `json:"fulfillment_ratio"`

	InvoiceExceptionRate     *decimal.Decimal `json:"invoice_exception_rate"`
	VarianceRate             *decimal.Decimal `json:"variance_rate"`
	AvgInvoiceThroughputDays *decimal.Decimal `json:"avg_invoice_throughput_days"`

	InvoiceMatchCount     int `json:"invoice_match_count"`
	InvoiceExceptionCount int `json:"invoice_exception_count"`
	VarianceMatchCount    int `json:"variance_match_count"`
}

// SupplierMetricSummaryDTO resumen global del período.
type SupplierMetricSummaryDTO struct {
	Period    string `json:"period"`
	Suppliers int    `json:"suppliers"`

	TotalPOs    int             `json:"total_pos"`
	TotalSpend  decimal.Decimal `json:"total_spend"`
	OpenBalance decimal.Decimal `json:"open_balance"`

	AvgOnTimeRatio          *decimal.Decimal `json:"avg_on_time_ratio"`
	AvgFulfillmentRatio     *decimal.Decimal `json:"avg_fulfillment_ratio"`
	AvgInvoiceExceptionRate *decimal.Decimal `json:"avg_invoice_exception_rate"`
}
