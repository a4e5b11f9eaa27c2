package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mccmmj/cafe-web-sub007/internal/domain"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// GetByID obtiene un proveedor; domain.ErrNotFound si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `
		SELECT id, name, COALESCE(contact_person, ''), COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(tax_id, ''), COALESCE(payment_terms, ''), active, created_at, updated_at
		FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.ContactPerson, &s.Email, &s.Phone,
		&s.TaxID, &s.PaymentTerms, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List proveedores ordenados por nombre; onlyActive filtra los inactivos.
func (r *SupplierRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Supplier, error) {
	query := `
		SELECT id, name, COALESCE(contact_person, ''), COALESCE(email, ''), COALESCE(phone, ''),
		       COALESCE(tax_id, ''), COALESCE(payment_terms, ''), active, created_at, updated_at
		FROM suppliers`
	if onlyActive {
		query += " WHERE active"
	}
	query += " ORDER BY name, id"

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(
			&s.ID, &s.Name, &s.ContactPerson, &s.Email, &s.Phone,
			&s.TaxID, &s.PaymentTerms, &s.Active, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suppliers: %w", err)
	}
	return out, nil
}
