package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

// ReceiptRecordRepository puerto de persistencia de recepciones de mercancía.
type ReceiptRecordRepository interface {
	Create(ctx context.Context, receipt *entity.ReceiptRecord) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.ReceiptRecord, error)
	ListByOrders(ctx context.Context, orderIDs []string) ([]*entity.ReceiptRecord, error)
	// ReceivedByLine cantidades acumuladas recibidas por línea de la orden.
	ReceivedByLine(ctx context.Context, orderID string) (map[string]decimal.Decimal, error)
}
