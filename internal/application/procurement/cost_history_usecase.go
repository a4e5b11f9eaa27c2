package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mccmmj/cafe-web-sub007/internal/domain"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

// costHistoryMaxLimit tope duro de entradas devueltas por consulta.
const costHistoryMaxLimit = 20

// CostHistoryUseCase tracker de historial de costos: log append-only de
// cambios de costo por ítem, consumido para auditoría (no entra en la
// agregación de métricas).
type CostHistoryUseCase struct {
	txRunner TxRunner
	history  repository.CostHistoryRepository
	items    repository.ItemRepository
}

// NewCostHistoryUseCase construye el caso de uso.
func NewCostHistoryUseCase(txRunner TxRunner, history repository.CostHistoryRepository, items repository.ItemRepository) *CostHistoryUseCase {
	return &CostHistoryUseCase{txRunner: txRunner, history: history, items: items}
}

// RecordCostChange registra el cambio de costo de un ítem: appendea la
// entrada inmutable y actualiza el costo vigente, en una sola transacción.
// Un costo nuevo negativo se rechaza con domain.ErrInvalidInput antes de
// cualquier mutación.
func (uc *CostHistoryUseCase) RecordCostChange(ctx context.Context, itemID string, newCost decimal.Decimal, changedAt time.Time) (*entity.CostHistoryEntry, error) {
	if itemID == "" || newCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if changedAt.IsZero() {
		changedAt = time.Now().UTC()
	}

	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	entry := &entity.CostHistoryEntry{
		ID:        uuid.New().String(),
		ItemID:    item.ID,
		OldCost:   item.Cost,
		NewCost:   newCost,
		ChangedAt: changedAt,
		CreatedAt: time.Now().UTC(),
	}
	err = uc.txRunner.RunCosts(ctx, func(
		items repository.ItemRepository,
		history repository.CostHistoryRepository,
	) error {
		if err := history.Append(ctx, entry); err != nil {
			return err
		}
		return items.UpdateCost(ctx, item.ID, newCost)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// History devuelve las entradas más recientes primero. limit se ajusta al
// tope duro de 20; cero o negativo usa el tope.
func (uc *CostHistoryUseCase) History(ctx context.Context, itemID string, limit int) ([]*entity.CostHistoryEntry, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > costHistoryMaxLimit {
		limit = costHistoryMaxLimit
	}
	return uc.history.ListByItem(ctx, itemID, limit)
}
