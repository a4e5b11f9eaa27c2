package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mccmmj/cafe-web-sub007/internal/domain"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste cabecera y líneas de la orden. La versión inicial es 1.
func (r *PurchaseOrderRepo) Create(ctx context.Context, order *entity.PurchaseOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.Version == 0 {
		order.Version = 1
	}
	query := `
		INSERT INTO purchase_orders (id, number, supplier_id, status,
			created_at, approved_at, issued_at, fully_received_at, invoiced_at, closed_at, cancelled_at,
			notes, version, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.Number, order.SupplierID, order.Status,
		order.CreatedAt, order.ApprovedAt, order.IssuedAt, order.FullyReceivedAt,
		order.InvoicedAt, order.ClosedAt, order.CancelledAt,
		nullIfEmpty(order.Notes), order.Version, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order number %s: %w", order.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}

	lineQuery := `
		INSERT INTO purchase_order_lines (id, order_id, item_id, item_name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range order.Lines {
		l := &order.Lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.OrderID = order.ID
		if _, err := r.q.Exec(ctx, lineQuery,
			l.ID, l.OrderID, l.ItemID, l.ItemName, l.Quantity, l.UnitPrice,
		); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas; domain.ErrNotFound si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, number, supplier_id, status,
		       created_at, approved_at, issued_at, fully_received_at, invoiced_at, closed_at, cancelled_at,
		       COALESCE(notes, ''), version, updated_at
		FROM purchase_orders WHERE id = $1`
	var o entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Number, &o.SupplierID, &o.Status,
		&o.CreatedAt, &o.ApprovedAt, &o.IssuedAt, &o.FullyReceivedAt,
		&o.InvoicedAt, &o.ClosedAt, &o.CancelledAt,
		&o.Notes, &o.Version, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadLines(ctx, map[string]*entity.PurchaseOrder{o.ID: &o}); err != nil {
		return nil, err
	}
	return &o, nil
}

// List devuelve órdenes según filtro, más recientes primero, con sus líneas.
func (r *PurchaseOrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.PurchaseOrder, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.SupplierID != "" {
		conds = append(conds, "supplier_id = "+arg(filter.SupplierID))
	}
	if len(filter.Statuses) > 0 {
		conds = append(conds, "status = ANY("+arg(filter.Statuses)+")")
	}
	if !filter.CreatedFrom.IsZero() {
		conds = append(conds, "created_at >= "+arg(filter.CreatedFrom))
	}
	if !filter.CreatedTo.IsZero() {
		conds = append(conds, "created_at < "+arg(filter.CreatedTo))
	}

	query := `
		SELECT id, number, supplier_id, status,
		       created_at, approved_at, issued_at, fully_received_at, invoiced_at, closed_at, cancelled_at,
		       COALESCE(notes, ''), version, updated_at
		FROM purchase_orders`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrder
	byID := make(map[string]*entity.PurchaseOrder)
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(
			&o.ID, &o.Number, &o.SupplierID, &o.Status,
			&o.CreatedAt, &o.ApprovedAt, &o.IssuedAt, &o.FullyReceivedAt,
			&o.InvoicedAt, &o.ClosedAt, &o.CancelledAt,
			&o.Notes, &o.Version, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, &o)
		byID[o.ID] = &o
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchase orders: %w", err)
	}
	if err := r.loadLines(ctx, byID); err != nil {
		return nil, err
	}
	return out, nil
}

// Update persiste estado, timestamps y notas con concurrencia optimista: la
// escritura exige en la fila la versión con la que se leyó la orden y graba
// versión + 1. Cero filas afectadas = otra transacción ganó: domain.ErrConflict.
func (r *PurchaseOrderRepo) Update(ctx context.Context, order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET status            = $2,
		    approved_at       = $3,
		    issued_at         = $4,
		    fully_received_at = $5,
		    invoiced_at       = $6,
		    closed_at         = $7,
		    cancelled_at      = $8,
		    notes             = $9,
		    version           = $10,
		    updated_at        = $11
		WHERE id = $1 AND version = $12`
	tag, err := r.q.Exec(ctx, query,
		order.ID, order.Status,
		order.ApprovedAt, order.IssuedAt, order.FullyReceivedAt,
		order.InvoicedAt, order.ClosedAt, order.CancelledAt,
		nullIfEmpty(order.Notes), order.Version+1, order.UpdatedAt,
		order.Version,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	order.Version++
	return nil
}

// loadLines carga las líneas de las órdenes dadas en una sola consulta.
func (r *PurchaseOrderRepo) loadLines(ctx context.Context, byID map[string]*entity.PurchaseOrder) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	query := `
		SELECT id, order_id, item_id, item_name, quantity, unit_price
		FROM purchase_order_lines
		WHERE order_id = ANY($1)
		ORDER BY order_id, id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ItemID, &l.ItemName, &l.Quantity, &l.UnitPrice); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		if o := byID[l.OrderID]; o != nil {
			o.Lines = append(o.Lines, l)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate order lines: %w", err)
	}
	return nil
}
