package procurement_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mccmmj/cafe-web-sub007/internal/application/dto"
	appproc "github.com/mccmmj/cafe-web-sub007/internal/application/procurement"
	"github.com/mccmmj/cafe-web-sub007/internal/domain"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

// stubSupplierRepo catálogo de proveedores fijo para los tests de creación.
type stubSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *stubSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (r *stubSupplierRepo) List(_ context.Context, onlyActive bool) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.suppliers {
		if onlyActive && !s.Active {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func createOrderFixtures() (*memStore, *stubSupplierRepo) {
	store := newMemStore()
	store.items["item-1"] = &entity.InventoryItem{ID: "item-1", SKU: "CAF-001", Name: "Café en grano", Unit: "kg", Cost: dec("18.50"), Active: true}
	store.items["item-2"] = &entity.InventoryItem{ID: "item-2", SKU: "LEC-001", Name: "Leche entera", Unit: "lt", Cost: dec("1.20"), Active: true}
	suppliers := &stubSupplierRepo{suppliers: map[string]*entity.Supplier{
		"sup-1": {ID: "sup-1", Name: "Granos del Valle", Active: true},
		"sup-2": {ID: "sup-2", Name: "Proveedor Retirado", Active: false},
	}}
	return store, suppliers
}

func TestCreateOrder_DraftConLineas(t *testing.T) {
	store, suppliers := createOrderFixtures()
	uc := appproc.NewCreateOrderUseCase(&memOrderRepo{store}, suppliers, &memItemRepo{store})

	order, err := uc.Create(ctx, dto.CreateOrderRequest{
		SupplierID: "sup-1",
		Lines: []dto.CreateOrderLineRequest{
			{ItemID: "item-1", Quantity: dec("10"), UnitPrice: dec("19.00")},
			{ItemID: "item-2", Quantity: dec("24"), UnitPrice: dec("1.30")},
		},
		Notes: "entrega en la mañana",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.POStatusDraft, order.Status)
	assert.Equal(t, 1, order.Version)
	assert.True(t, strings.HasPrefix(order.Number, "PO-"), "número legible: %s", order.Number)
	require.Len(t, order.Lines, 2)
	// el nombre del ítem se congela en la línea al momento de crear
	assert.Equal(t, "Café en grano", order.Lines[0].ItemName)
	assert.True(t, order.ExpectedTotal().Equal(dec("221.20")), "total esperado: %s", order.ExpectedTotal())

	// persistida y recuperable
	stored, err := (&memOrderRepo{store}).GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)
}

func TestCreateOrder_ProveedorInactivoRechazado(t *testing.T) {
	store, suppliers := createOrderFixtures()
	uc := appproc.NewCreateOrderUseCase(&memOrderRepo{store}, suppliers, &memItemRepo{store})

	_, err := uc.Create(ctx, dto.CreateOrderRequest{
		SupplierID: "sup-2",
		Lines:      []dto.CreateOrderLineRequest{{ItemID: "item-1", Quantity: dec("1"), UnitPrice: dec("19.00")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.orders)
}

func TestCreateOrder_Validaciones(t *testing.T) {
	store, suppliers := createOrderFixtures()
	uc := appproc.NewCreateOrderUseCase(&memOrderRepo{store}, suppliers, &memItemRepo{store})

	cases := []struct {
		name string
		in   dto.CreateOrderRequest
		want error
	}{
		{"sin proveedor", dto.CreateOrderRequest{
			Lines: []dto.CreateOrderLineRequest{{ItemID: "item-1", Quantity: dec("1"), UnitPrice: dec("2")}},
		}, domain.ErrInvalidInput},
		{"sin líneas", dto.CreateOrderRequest{SupplierID: "sup-1"}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateOrderRequest{
			SupplierID: "sup-1",
			Lines:      []dto.CreateOrderLineRequest{{ItemID: "item-1", Quantity: dec("0"), UnitPrice: dec("2")}},
		}, domain.ErrInvalidInput},
		{"precio negativo", dto.CreateOrderRequest{
			SupplierID: "sup-1",
			Lines:      []dto.CreateOrderLineRequest{{ItemID: "item-1", Quantity: dec("1"), UnitPrice: dec("-2")}},
		}, domain.ErrInvalidInput},
		{"ítem inexistente", dto.CreateOrderRequest{
			SupplierID: "sup-1",
			Lines:      []dto.CreateOrderLineRequest{{ItemID: "item-x", Quantity: dec("1"), UnitPrice: dec("2")}},
		}, domain.ErrNotFound},
		{"proveedor inexistente", dto.CreateOrderRequest{
			SupplierID: "sup-x",
			Lines:      []dto.CreateOrderLineRequest{{ItemID: "item-1", Quantity: dec("1"), UnitPrice: dec("2")}},
		}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, store.orders)
}
