package procurement

import (
	"context"

	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

// SupplierUseCase lecturas del catálogo de proveedores.
type SupplierUseCase struct {
	suppliers repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(suppliers repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{suppliers: suppliers}
}

// Get devuelve un proveedor; domain.ErrNotFound si no existe.
func (uc *SupplierUseCase) Get(ctx context.Context, id string) (*entity.Supplier, error) {
	return uc.suppliers.GetByID(ctx, id)
}

// List proveedores, opcionalmente solo los activos.
func (uc *SupplierUseCase) List(ctx context.Context, onlyActive bool) ([]*entity.Supplier, error) {
	return uc.suppliers.List(ctx, onlyActive)
}
