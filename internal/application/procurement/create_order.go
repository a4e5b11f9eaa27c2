package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mccmmj/cafe-web-sub007/internal/application/dto"
	"github.com/mccmmj/cafe-web-sub007/internal/domain"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

// CreateOrderUseCase crea órdenes de compra en DRAFT.
type CreateOrderUseCase struct {
	orders    repository.PurchaseOrderRepository
	suppliers repository.SupplierRepository
	items     repository.ItemRepository
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	orders repository.PurchaseOrderRepository,
	suppliers repository.SupplierRepository,
	items repository.ItemRepository,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{orders: orders, suppliers: suppliers, items: items}
}

// Create valida proveedor, ítems y líneas, y persiste la orden en DRAFT.
// Las líneas con cantidad o precio no positivos se rechazan aquí, antes de
// cualquier mutación (el guard de aprobación las volvería a rechazar).
func (uc *CreateOrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*entity.PurchaseOrder, error) {
	if in.SupplierID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.Active {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	orderID := uuid.New().String()
	lines := make([]entity.PurchaseOrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.Quantity.LessThanOrEqual(decimal.Zero) || l.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.items.GetByID(ctx, l.ItemID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, entity.PurchaseOrderLine{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ItemID:    item.ID,
			ItemName:  item.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	order := &entity.PurchaseOrder{
		ID:         orderID,
		Number:     newOrderNumber(now),
		SupplierID: in.SupplierID,
		Status:     entity.POStatusDraft,
		Lines:      lines,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
		Version:    1,
	}
	if err := uc.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// newOrderNumber consecutivo legible para el proveedor, ej. "PO-2024-8F3A2C".
// El ID real de la orden es el UUID; este número es solo presentación.
func newOrderNumber(now time.Time) string {
	suffix := uuid.New().String()[:6]
	return fmt.Sprintf("PO-%d-%s", now.Year(), suffix)
}
