package repository

import (
	"context"

	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

// SupplierRepository puerto de persistencia de proveedores.
type SupplierRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Supplier, error)
}
