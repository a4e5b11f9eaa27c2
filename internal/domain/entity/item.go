package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem ítem de inventario del café (granos, leche, vasos, etc.).
// El costo vigente se actualiza vía el tracker de historial de costos.
type InventoryItem struct {
	ID        string
	SKU       string
	Name      string
	Unit      string // unidad de compra: kg, lt, caja, und
	Cost      decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
