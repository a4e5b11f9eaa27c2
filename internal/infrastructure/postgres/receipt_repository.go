package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

var _ repository.ReceiptRecordRepository = (*ReceiptRecordRepo)(nil)

// ReceiptRecordRepo implementación de ReceiptRecordRepository (usable con pool o tx).
type ReceiptRecordRepo struct {
	q Querier
}

// NewReceiptRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRecordRepository(q Querier) *ReceiptRecordRepo {
	return &ReceiptRecordRepo{q: q}
}

// Create persiste una recepción.
func (r *ReceiptRecordRepo) Create(ctx context.Context, receipt *entity.ReceiptRecord) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	query := `
		INSERT INTO receipt_records (id, order_id, line_id, quantity, received_at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		receipt.ID, receipt.OrderID, receipt.LineID, receipt.Quantity,
		receipt.ReceivedAt, receipt.CreatedAt, nullIfEmpty(receipt.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert receipt record: %w", err)
	}
	return nil
}

// ListByOrder recepciones de una orden, más antiguas primero.
func (r *ReceiptRecordRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.ReceiptRecord, error) {
	return r.ListByOrders(ctx, []string{orderID})
}

// ListByOrders recepciones de varias órdenes en una sola consulta.
func (r *ReceiptRecordRepo) ListByOrders(ctx context.Context, orderIDs []string) ([]*entity.ReceiptRecord, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, order_id, line_id, quantity, received_at, created_at, COALESCE(created_by, '')
		FROM receipt_records
		WHERE order_id = ANY($1)
		ORDER BY received_at, id`
	rows, err := r.q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list receipt records: %w", err)
	}
	defer rows.Close()

	var out []*entity.ReceiptRecord
	for rows.Next() {
		var rec entity.ReceiptRecord
		if err := rows.Scan(
			&rec.ID, &rec.OrderID, &rec.LineID, &rec.Quantity,
			&rec.ReceivedAt, &rec.CreatedAt, &rec.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan receipt record: %w", err)
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate receipt records: %w", err)
	}
	return out, nil
}

// ReceivedByLine cantidades acumuladas recibidas por línea de la orden.
func (r *ReceiptRecordRepo) ReceivedByLine(ctx context.Context, orderID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT line_id, SUM(quantity)
		FROM receipt_records
		WHERE order_id = $1
		GROUP BY line_id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("sum received by line: %w", err)
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var lineID string
		var qty decimal.Decimal
		if err := rows.Scan(&lineID, &qty); err != nil {
			return nil, fmt.Errorf("scan received by line: %w", err)
		}
		out[lineID] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate received by line: %w", err)
	}
	return out, nil
}
