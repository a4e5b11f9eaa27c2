package repository

import (
	"context"

	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

// InvoiceRecordRepository puerto de persistencia de facturas de proveedor.
type InvoiceRecordRepository interface {
	Create(ctx context.Context, invoice *entity.InvoiceRecord) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.InvoiceRecord, error)
	ListByOrders(ctx context.Context, orderIDs []string) ([]*entity.InvoiceRecord, error)
	CountByOrder(ctx context.Context, orderID string) (int, error)
}
