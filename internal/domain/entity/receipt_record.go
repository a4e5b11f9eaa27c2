package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptRecord registra una recepción (posiblemente parcial) de mercancía
// contra una línea de la orden. Varias recepciones pueden apuntar a la misma
// línea; la suma acumulada nunca puede exceder la cantidad ordenada.
type ReceiptRecord struct {
	ID         string
	OrderID    string
	LineID     string
	Quantity   decimal.Decimal // cantidad recibida en esta entrega
	ReceivedAt time.Time
	CreatedAt  time.Time
	CreatedBy  string // UserID del bodeguero que registró la entrega
}
