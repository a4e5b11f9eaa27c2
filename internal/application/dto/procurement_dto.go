package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderLineRequest línea de una orden nueva.
type CreateOrderLineRequest struct {
	ItemID    string          `json:"item_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

// CreateOrderRequest entrada para crear una orden de compra en DRAFT.
type CreateOrderRequest struct {
	SupplierID string                   `json:"supplier_id" validate:"required,uuid"`
	Lines      []CreateOrderLineRequest `json:"lines" validate:"required,min=1"`
	Notes      string                   `json:"notes" validate:"omitempty,max=500"`
}

// TransitionOrderRequest entrada para transicionar una orden de estado.
type TransitionOrderRequest struct {
	Target string `json:"target" validate:"required"`
}

// RecordReceiptRequest entrada para registrar una recepción de mercancía.
type RecordReceiptRequest struct {
	LineID     string          `json:"line_id" validate:"required,uuid"`
	Quantity   decimal.Decimal `json:"quantity" validate:"required"`
	ReceivedAt time.Time       `json:"received_at" validate:"required"`
}

// RecordInvoiceRequest entrada para registrar una factura de proveedor.
type RecordInvoiceRequest struct {
	Number      string          `json:"number" validate:"omitempty,max=50"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	InvoiceDate time.Time       `json:"invoice_date" validate:"required"`
}

// RecordCostChangeRequest entrada para registrar un cambio de costo de ítem.
type RecordCostChangeRequest struct {
	NewCost   decimal.Decimal `json:"new_cost" validate:"required"`
	ChangedAt time.Time       `json:"changed_at" validate:"omitempty"`
}

// OrderLineResponse línea de orden en respuestas.
type OrderLineResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de una orden de compra con sus líneas y timestamps
// del ciclo de vida (nil = la transición aún no ocurre).
type OrderResponse struct {
	ID              string              `json:"id"`
	Number          string              `json:"number"`
	SupplierID      string              `json:"supplier_id"`
	Status          string              `json:"status"`
	Lines           []OrderLineResponse `json:"lines"`
	ExpectedTotal   decimal.Decimal     `json:"expected_total"`
	CreatedAt       time.Time           `json:"created_at"`
	ApprovedAt      *time.Time          `json:"approved_at,omitempty"`
	IssuedAt        *time.Time          `json:"issued_at,omitempty"`
	FullyReceivedAt *time.Time          `json:"fully_received_at,omitempty"`
	InvoicedAt      *time.Time          `json:"invoiced_at,omitempty"`
	ClosedAt        *time.Time          `json:"closed_at,omitempty"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	Version         int                 `json:"version"`
}

// InvoiceResponse salida de una factura conciliada.
type InvoiceResponse struct {
	ID              string          `json:"id"`
	OrderID         string          `json:"order_id"`
	Number          string          `json:"number,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	InvoiceDate     time.Time       `json:"invoice_date"`
	MatchStatus     string          `json:"match_status"`
	ExceptionReason string          `json:"exception_reason,omitempty"`
}

// CostHistoryEntryResponse entrada del historial de costos.
type CostHistoryEntryResponse struct {
	ItemID    string          `json:"item_id"`
	OldCost   decimal.Decimal `json:"old_cost"`
	NewCost   decimal.Decimal `json:"new_cost"`
	ChangedAt time.Time       `json:"changed_at"`
}
