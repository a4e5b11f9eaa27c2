package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/mccmmj/cafe-web-sub007/internal/domain"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByID obtiene un ítem; domain.ErrNotFound si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	query := `
		SELECT id, sku, name, unit, cost, active, created_at, updated_at
		FROM inventory_items WHERE id = $1`
	var it entity.InventoryItem
	err := r.q.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.SKU, &it.Name, &it.Unit, &it.Cost, &it.Active, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &it, nil
}

// UpdateCost fija el costo vigente del ítem.
func (r *ItemRepo) UpdateCost(ctx context.Context, itemID string, cost decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET cost = $2, updated_at = now() WHERE id = $1`,
		itemID, cost,
	)
	if err != nil {
		return fmt.Errorf("update item cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
