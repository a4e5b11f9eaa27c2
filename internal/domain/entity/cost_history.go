package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostHistoryEntry registro inmutable de un cambio de costo de un ítem de
// inventario. Log de solo-escritura: nunca se actualiza ni se borra. Se
// consume para auditoría e inspección, no entra en la agregación de métricas.
type CostHistoryEntry struct {
	ID        string
	ItemID    string
	OldCost   decimal.Decimal
	NewCost   decimal.Decimal
	ChangedAt time.Time
	CreatedAt time.Time
}
