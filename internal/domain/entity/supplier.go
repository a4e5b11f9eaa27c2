package entity

import "time"

// Supplier proveedor del café (granos, lácteos, insumos de cocina, etc.).
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	TaxID         string
	PaymentTerms  string // ej. "NET30"
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
