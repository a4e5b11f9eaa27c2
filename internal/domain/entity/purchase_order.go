package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una orden de compra.
// El flujo normal es Draft → Approved → Issued → PartiallyReceived →
// FullyReceived → Invoiced → Closed; Cancelled es alcanzable desde cualquier
// estado no terminal.
const (
	POStatusDraft             = "DRAFT"
	POStatusApproved          = "APPROVED"
	POStatusIssued            = "ISSUED"
	POStatusPartiallyReceived = "PARTIALLY_RECEIVED"
	POStatusFullyReceived     = "FULLY_RECEIVED"
	POStatusInvoiced          = "INVOICED"
	POStatusClosed            = "CLOSED"
	POStatusCancelled         = "CANCELLED"
)

// PurchaseOrderLine línea de una orden de compra (ítem de inventario,
// cantidad y precio unitario pactado con el proveedor).
type PurchaseOrderLine struct {
	ID        string
	OrderID   string
	ItemID    string
	ItemName  string
	Quantity  decimal.Decimal // cantidad ordenada
	UnitPrice decimal.Decimal // precio unitario pactado
}

// Subtotal cantidad × precio unitario.
func (l PurchaseOrderLine) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// PurchaseOrder cabecera de una orden de compra a proveedor (aggregate root).
//
// Los timestamps del ciclo de vida son punteros: nil = la transición aún no
// ocurrió. El invariante es que, cuando están presentes, son monótonamente
// no decrecientes en el orden del ciclo de vida.
//
// Version se usa para concurrencia optimista: cada mutación incrementa la
// versión y una escritura con versión vieja falla con domain.ErrConflict.
type PurchaseOrder struct {
	ID         string
	Number     string // consecutivo legible, ej. "PO-2024-00042"
	SupplierID string
	Status     string
	Lines      []PurchaseOrderLine

	CreatedAt       time.Time
	ApprovedAt      *time.Time
	IssuedAt        *time.Time
	FullyReceivedAt *time.Time
	InvoicedAt      *time.Time
	ClosedAt        *time.Time
	CancelledAt     *time.Time

	Notes     string
	Version   int
	UpdatedAt time.Time
}

// ExpectedTotal suma de cantidad × precio de todas las líneas. Es el monto
// contra el que se comparan las facturas del proveedor. Nunca se almacena,
// siempre se deriva.
func (o *PurchaseOrder) ExpectedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// OrderedQuantity cantidad total ordenada sobre todas las líneas.
func (o *PurchaseOrder) OrderedQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Quantity)
	}
	return total
}

// Line devuelve la línea con el ID dado, o nil si no existe.
func (o *PurchaseOrder) Line(lineID string) *PurchaseOrderLine {
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			return &o.Lines[i]
		}
	}
	return nil
}

// IsTerminal true si la orden no admite más mutaciones.
func (o *PurchaseOrder) IsTerminal() bool {
	return o.Status == POStatusClosed || o.Status == POStatusCancelled
}
