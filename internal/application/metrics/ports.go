package metrics

import (
	"context"

	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

// SnapshotRunner ejecuta una función de solo lectura sobre un snapshot
// consistente de órdenes, recepciones y facturas (una transacción
// REPEATABLE READ). La agregación nunca debe mezclar una orden a medio
// actualizar con recepciones viejas.
type SnapshotRunner interface {
	RunSnapshot(ctx context.Context, fn func(
		orders repository.PurchaseOrderRepository,
		receipts repository.ReceiptRecordRepository,
		invoices repository.InvoiceRecordRepository,
		suppliers repository.SupplierRepository,
	) error) error
}
