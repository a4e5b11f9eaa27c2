package procurement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

// OrderForDocument datos ya resueltos para el documento imprimible de la
// orden (lo que se envía al proveedor).
type OrderForDocument struct {
	Order    *entity.PurchaseOrder
	Supplier *entity.Supplier
	IssuedAt time.Time
	Total    decimal.Decimal
}

// PODocumentUseCase arma los datos y delega la generación del PDF.
type PODocumentUseCase struct {
	orders    repository.PurchaseOrderRepository
	suppliers repository.SupplierRepository
	generator PODocumentGenerator
}

// NewPODocumentUseCase construye el caso de uso.
func NewPODocumentUseCase(
	orders repository.PurchaseOrderRepository,
	suppliers repository.SupplierRepository,
	generator PODocumentGenerator,
) *PODocumentUseCase {
	return &PODocumentUseCase{orders: orders, suppliers: suppliers, generator: generator}
}

// Generate genera el PDF de la orden. La fecha de emisión que se imprime es
// IssuedAt si la orden ya fue emitida, o CreatedAt como borrador.
func (uc *PODocumentUseCase) Generate(ctx context.Context, orderID string) ([]byte, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	supplier, err := uc.suppliers.GetByID(ctx, order.SupplierID)
	if err != nil {
		return nil, err
	}
	issuedAt := order.CreatedAt
	if order.IssuedAt != nil {
		issuedAt = *order.IssuedAt
	}
	return uc.generator.GeneratePODocument(ctx, OrderForDocument{
		Order:    order,
		Supplier: supplier,
		IssuedAt: issuedAt,
		Total:    order.ExpectedTotal(),
	})
}
