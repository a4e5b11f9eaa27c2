package procurement

import (
	"context"

	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que las mutaciones del motor de
// compras sean atómicas: o se aplica el efecto completo (estado + timestamp +
// registros derivados) o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orders repository.PurchaseOrderRepository,
		receipts repository.ReceiptRecordRepository,
		invoices repository.InvoiceRecordRepository,
	) error) error

	// RunCosts transacción para el tracker de costos: el append al historial
	// y la actualización del costo vigente del ítem van juntos.
	RunCosts(ctx context.Context, fn func(
		items repository.ItemRepository,
		history repository.CostHistoryRepository,
	) error) error
}

// PODocumentGenerator genera el documento imprimible (PDF) de una orden de
// compra para enviar al proveedor.
type PODocumentGenerator interface {
	GeneratePODocument(ctx context.Context, order OrderForDocument) ([]byte, error)
}
