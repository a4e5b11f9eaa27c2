// Package procurement contiene los servicios de dominio del motor de
// compras: la máquina de estados de órdenes y la conciliación de
// recepciones y facturas. Lógica pura, sin dependencias de infraestructura.
package procurement

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/mccmmj/cafe-web-sub007/internal/domain"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

// transitions tabla de transiciones válidas (estado actual → destinos).
// Todo par no listado se rechaza con InvalidTransitionError; no hay
// ramas condicionales ad hoc fuera de los guards.
var transitions = map[string][]string{
	entity.POStatusDraft:             {entity.POStatusApproved, entity.POStatusCancelled},
	entity.POStatusApproved:          {entity.POStatusIssued, entity.POStatusCancelled},
	entity.POStatusIssued:            {entity.POStatusPartiallyReceived, entity.POStatusFullyReceived, entity.POStatusCancelled},
	entity.POStatusPartiallyReceived: {entity.POStatusFullyReceived, entity.POStatusCancelled},
	entity.POStatusFullyReceived:     {entity.POStatusInvoiced, entity.POStatusCancelled},
	entity.POStatusInvoiced:          {entity.POStatusClosed, entity.POStatusCancelled},
	// CLOSED y CANCELLED son terminales: sin transiciones de salida.
}

// CanTransition true si la tabla permite pasar de from a to.
func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// TransitionInput datos externos que necesitan los guards.
type TransitionInput struct {
	At           time.Time // instante de la transición (timestamptz)
	InvoiceCount int       // facturas asociadas a la orden (guard FULLY_RECEIVED → INVOICED)
}

// Transition aplica una transición de estado sobre la orden: valida la tabla
// y los guards, y solo entonces muta estado y timestamp. Si falla, la orden
// queda intacta (sin mutación parcial).
//
// Los timestamps del ciclo de vida deben ser monótonos no decrecientes: una
// transición fechada antes del último timestamp registrado se rechaza con
// domain.ErrInvalidInput.
func Transition(o *entity.PurchaseOrder, target string, in TransitionInput) error {
	if !CanTransition(o.Status, target) {
		return &domain.InvalidTransitionError{From: o.Status, To: target}
	}
	if in.At.Before(lastLifecycleTimestamp(o)) {
		return domain.ErrInvalidInput
	}
	if err := guard(o, target, in); err != nil {
		return err
	}

	switch target {
	case entity.POStatusApproved:
		at := in.At
		o.ApprovedAt = &at
	case entity.POStatusIssued:
		at := in.At
		o.IssuedAt = &at
	case entity.POStatusPartiallyReceived:
		// sin timestamp propio: las entregas parciales viven en receipt_records
	case entity.POStatusFullyReceived:
		at := in.At
		o.FullyReceivedAt = &at
	case entity.POStatusInvoiced:
		at := in.At
		o.InvoicedAt = &at
	case entity.POStatusClosed:
		at := in.At
		o.ClosedAt = &at
	case entity.POStatusCancelled:
		at := in.At
		o.CancelledAt = &at
	}
	o.Status = target
	o.UpdatedAt = in.At
	return nil
}

// guard validaciones adicionales por estado destino. La tabla decide QUÉ
// pares existen; los guards deciden CUÁNDO un par listado procede.
func guard(o *entity.PurchaseOrder, target string, in TransitionInput) error {
	switch target {
	case entity.POStatusApproved:
		// al menos una línea con cantidad y precio positivos
		if len(o.Lines) == 0 {
			return domain.ErrInvalidInput
		}
		for _, l := range o.Lines {
			if l.Quantity.LessThanOrEqual(decimal.Zero) || l.UnitPrice.LessThanOrEqual(decimal.Zero) {
				return domain.ErrInvalidInput
			}
		}
	case entity.POStatusInvoiced:
		if in.InvoiceCount < 1 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// lastLifecycleTimestamp el timestamp más reciente ya registrado en el ciclo
// de vida de la orden (CreatedAt si no hay transiciones posteriores).
func lastLifecycleTimestamp(o *entity.PurchaseOrder) time.Time {
	last := o.CreatedAt
	for _, ts := range []*time.Time{o.ApprovedAt, o.IssuedAt, o.FullyReceivedAt, o.InvoicedAt, o.ClosedAt, o.CancelledAt} {
		if ts != nil && ts.After(last) {
			last = *ts
		}
	}
	return last
}

// ReceiptDrivenStatus estado que corresponde a la orden según las cantidades
// recibidas acumuladas por línea. Devuelve "" si las recepciones no implican
// cambio de estado (ninguna entrega aún, u orden fuera de ISSUED /
// PARTIALLY_RECEIVED).
func ReceiptDrivenStatus(o *entity.PurchaseOrder, receivedByLine map[string]decimal.Decimal) string {
	if o.Status != entity.POStatusIssued && o.Status != entity.POStatusPartiallyReceived {
		return ""
	}
	anyReceived := false
	allFull := true
	for _, l := range o.Lines {
		got := receivedByLine[l.ID]
		if got.GreaterThan(decimal.Zero) {
			anyReceived = true
		}
		if got.LessThan(l.Quantity) {
			allFull = false
		}
	}
	switch {
	case allFull && len(o.Lines) > 0:
		return entity.POStatusFullyReceived
	case anyReceived && o.Status == entity.POStatusIssued:
		return entity.POStatusPartiallyReceived
	default:
		return ""
	}
}
