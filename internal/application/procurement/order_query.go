package procurement

import (
	"context"

	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

// OrderQueryUseCase lecturas de órdenes y sus registros asociados. Las
// consultas van directo al pool, sin transacción: cada una es una sola
// lectura consistente.
type OrderQueryUseCase struct {
	orders   repository.PurchaseOrderRepository
	receipts repository.ReceiptRecordRepository
	invoices repository.InvoiceRecordRepository
}

// NewOrderQueryUseCase construye el caso de uso.
func NewOrderQueryUseCase(
	orders repository.PurchaseOrderRepository,
	receipts repository.ReceiptRecordRepository,
	invoices repository.InvoiceRecordRepository,
) *OrderQueryUseCase {
	return &OrderQueryUseCase{orders: orders, receipts: receipts, invoices: invoices}
}

// Get devuelve la orden con sus líneas; domain.ErrNotFound si no existe.
func (uc *OrderQueryUseCase) Get(ctx context.Context, orderID string) (*entity.PurchaseOrder, error) {
	return uc.orders.GetByID(ctx, orderID)
}

// List devuelve órdenes según filtro.
func (uc *OrderQueryUseCase) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.PurchaseOrder, error) {
	return uc.orders.List(ctx, filter)
}

// Receipts recepciones registradas contra la orden. Verifica primero que la
// orden exista para distinguir 404 de "sin recepciones".
func (uc *OrderQueryUseCase) Receipts(ctx context.Context, orderID string) ([]*entity.ReceiptRecord, error) {
	if _, err := uc.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return uc.receipts.ListByOrder(ctx, orderID)
}

// Invoices facturas registradas contra la orden, con su clasificación.
func (uc *OrderQueryUseCase) Invoices(ctx context.Context, orderID string) ([]*entity.InvoiceRecord, error) {
	if _, err := uc.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return uc.invoices.ListByOrder(ctx, orderID)
}
