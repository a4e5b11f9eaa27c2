package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mccmmj/cafe-web-sub007/internal/domain"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

var _ repository.InvoiceRecordRepository = (*InvoiceRecordRepo)(nil)

// InvoiceRecordRepo implementación de InvoiceRecordRepository (usable con pool o tx).
type InvoiceRecordRepo struct {
	q Querier
}

// NewInvoiceRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRecordRepository(q Querier) *InvoiceRecordRepo {
	return &InvoiceRecordRepo{q: q}
}

// Create persiste una factura ya clasificada.
func (r *InvoiceRecordRepo) Create(ctx context.Context, invoice *entity.InvoiceRecord) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_records (id, order_id, number, amount, invoice_date, match_status, exception_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.OrderID, invoice.Number, invoice.Amount,
		invoice.InvoiceDate, invoice.MatchStatus, nullIfEmpty(invoice.ExceptionReason),
		invoice.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number %s: %w", invoice.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice record: %w", err)
	}
	return nil
}

// ListByOrder facturas de una orden, por fecha de factura.
func (r *InvoiceRecordRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.InvoiceRecord, error) {
	return r.ListByOrders(ctx, []string{orderID})
}

// ListByOrders facturas de varias órdenes en una sola consulta.
func (r *InvoiceRecordRepo) ListByOrders(ctx context.Context, orderIDs []string) ([]*entity.InvoiceRecord, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, order_id, number, amount, invoice_date, match_status, COALESCE(exception_reason, ''), created_at
		FROM invoice_records
		WHERE order_id = ANY($1)
		ORDER BY invoice_date, id`
	rows, err := r.q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list invoice records: %w", err)
	}
	defer rows.Close()

	var out []*entity.InvoiceRecord
	for rows.Next() {
		var inv entity.InvoiceRecord
		if err := rows.Scan(
			&inv.ID, &inv.OrderID, &inv.Number, &inv.Amount,
			&inv.InvoiceDate, &inv.MatchStatus, &inv.ExceptionReason, &inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice record: %w", err)
		}
		out = append(out, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice records: %w", err)
	}
	return out, nil
}

// CountByOrder número de facturas registradas contra la orden.
func (r *InvoiceRecordRepo) CountByOrder(ctx context.Context, orderID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoice_records WHERE order_id = $1`, orderID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoice records: %w", err)
	}
	return n, nil
}
