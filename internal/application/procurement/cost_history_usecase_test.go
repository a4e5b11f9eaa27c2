package procurement_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appproc "github.com/mccmmj/cafe-web-sub007/internal/application/procurement"
	"github.com/mccmmj/cafe-web-sub007/internal/domain"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

func newCostUC(store *memStore) *appproc.CostHistoryUseCase {
	store.items["item-1"] = &entity.InventoryItem{
		ID: "item-1", SKU: "CAFE-001", Name: "Café en grano", Unit: "kg",
		Cost: dec("18.50"), Active: true,
	}
	return appproc.NewCostHistoryUseCase(store, &memHistoryRepo{store}, &memItemRepo{store})
}

func TestRecordCostChange_AppendYActualizaCosto(t *testing.T) {
	store := newMemStore()
	uc := newCostUC(store)

	entry, err := uc.RecordCostChange(ctx, "item-1", dec("19.25"), baseTime)
	require.NoError(t, err)
	assert.True(t, entry.OldCost.Equal(dec("18.50")))
	assert.True(t, entry.NewCost.Equal(dec("19.25")))

	// El costo vigente del ítem quedó actualizado en la misma transacción
	assert.True(t, store.items["item-1"].Cost.Equal(dec("19.25")))
	assert.Len(t, store.history, 1)
}

func TestRecordCostChange_CostoNegativoRechazado(t *testing.T) {
	store := newMemStore()
	uc := newCostUC(store)

	_, err := uc.RecordCostChange(ctx, "item-1", dec("-1.00"), baseTime)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.history, "sin mutación alguna")
	assert.True(t, store.items["item-1"].Cost.Equal(dec("18.50")))
}

func TestRecordCostChange_ItemInexistente(t *testing.T) {
	store := newMemStore()
	uc := newCostUC(store)

	_, err := uc.RecordCostChange(ctx, "item-nope", dec("5.00"), baseTime)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// History devuelve más recientes primero y ajusta el límite al tope duro de 20.
func TestHistory_OrdenYLimite(t *testing.T) {
	store := newMemStore()
	uc := newCostUC(store)

	for i := 0; i < 25; i++ {
		cost := dec(fmt.Sprintf("%d.00", 10+i))
		_, err := uc.RecordCostChange(ctx, "item-1", cost, baseTime.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}

	// Pedir 100 → tope duro 20
	entries, err := uc.History(ctx, "item-1", 100)
	require.NoError(t, err)
	require.Len(t, entries, 20)
	// Más reciente primero
	assert.True(t, entries[0].NewCost.Equal(dec("34.00")))
	assert.True(t, entries[0].ChangedAt.After(entries[1].ChangedAt))

	// Límite explícito menor se respeta
	entries, err = uc.History(ctx, "item-1", 5)
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	// Cero usa el tope por defecto
	entries, err = uc.History(ctx, "item-1", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}
