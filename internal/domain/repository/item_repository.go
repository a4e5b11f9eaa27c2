package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

// ItemRepository puerto de persistencia de ítems de inventario.
type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// UpdateCost fija el costo vigente del ítem (el histórico vive en
	// cost_history_entries).
	UpdateCost(ctx context.Context, itemID string, cost decimal.Decimal) error
}
