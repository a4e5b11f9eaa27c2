package repository

import (
	"context"

	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
)

// CostHistoryRepository puerto del log append-only de cambios de costo.
// No expone Update ni Delete: las entradas son inmutables.
type CostHistoryRepository interface {
	Append(ctx context.Context, entry *entity.CostHistoryEntry) error
	// ListByItem entradas más recientes primero, hasta limit.
	ListByItem(ctx context.Context, itemID string, limit int) ([]*entity.CostHistoryEntry, error)
}
