package repository

import (
	"context"
	"time"

	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

// OrderFilter filtro para listar órdenes de compra. Campos en cero = sin filtro.
type OrderFilter struct {
	SupplierID  string
	Statuses    []string
	CreatedFrom time.Time // inclusive
	CreatedTo   time.Time // exclusive
}

// PurchaseOrderRepository puerto de persistencia de órdenes de compra
// (cabecera + líneas).
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	// GetByID devuelve la orden con sus líneas; domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.PurchaseOrder, error)
	// Update persiste estado, timestamps y notas con concurrencia optimista:
	// la escritura exige la versión leída y la incrementa; si otra transacción
	// ganó, devuelve domain.ErrConflict y no modifica nada.
	Update(ctx context.Context, order *entity.PurchaseOrder) error
}
