package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

var _ repository.CostHistoryRepository = (*CostHistoryRepo)(nil)

// CostHistoryRepo implementación de CostHistoryRepository (usable con pool o tx).
// La tabla es append-only: no hay UPDATE ni DELETE.
type CostHistoryRepo struct {
	q Querier
}

// NewCostHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostHistoryRepository(q Querier) *CostHistoryRepo {
	return &CostHistoryRepo{q: q}
}

// Append inserta una entrada inmutable al historial.
func (r *CostHistoryRepo) Append(ctx context.Context, entry *entity.CostHistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cost_history_entries (id, item_id, old_cost, new_cost, changed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.ItemID, entry.OldCost, entry.NewCost, entry.ChangedAt, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cost history entry: %w", err)
	}
	return nil
}

// ListByItem entradas del ítem, más recientes primero, hasta limit.
func (r *CostHistoryRepo) ListByItem(ctx context.Context, itemID string, limit int) ([]*entity.CostHistoryEntry, error) {
	query := `
		SELECT id, item_id, old_cost, new_cost, changed_at, created_at
		FROM cost_history_entries
		WHERE item_id = $1
		ORDER BY changed_at DESC, created_at DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("list cost history: %w", err)
	}
	defer rows.Close()

	var out []*entity.CostHistoryEntry
	for rows.Next() {
		var e entity.CostHistoryEntry
		if err := rows.Scan(&e.ID, &e.ItemID, &e.OldCost, &e.NewCost, &e.ChangedAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cost history entry: %w", err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cost history: %w", err)
	}
	return out, nil
}
