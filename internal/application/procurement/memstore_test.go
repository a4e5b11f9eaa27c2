package procurement_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mccmmj/cafe-web-sub007/internal/domain"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria para tests de casos de uso: un adaptador por puerto sobre
// un estado compartido, igual que los repos PostgreSQL comparten el pool.
// Update respeta la concurrencia optimista (versión vieja → domain.ErrConflict).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	orders   map[string]*entity.PurchaseOrder
	receipts []*entity.ReceiptRecord
	invoices []*entity.InvoiceRecord
	items    map[string]*entity.InventoryItem
	history  []*entity.CostHistoryEntry
}

func newMemStore() *memStore {
	return &memStore{
		orders: make(map[string]*entity.PurchaseOrder),
		items:  make(map[string]*entity.InventoryItem),
	}
}

// runTx simula Commit/Rollback: si fn falla, restaura el estado previo.
func (m *memStore) runTx(fn func() error) error {
	snapOrders := make(map[string]*entity.PurchaseOrder, len(m.orders))
	for k, v := range m.orders {
		snapOrders[k] = copyOrder(v)
	}
	snapReceipts := append([]*entity.ReceiptRecord(nil), m.receipts...)
	snapInvoices := append([]*entity.InvoiceRecord(nil), m.invoices...)
	if err := fn(); err != nil {
		m.orders, m.receipts, m.invoices = snapOrders, snapReceipts, snapInvoices
		return err
	}
	return nil
}

func (m *memStore) Run(_ context.Context, fn func(
	orders repository.PurchaseOrderRepository,
	receipts repository.ReceiptRecordRepository,
	invoices repository.InvoiceRecordRepository,
) error) error {
	return m.runTx(func() error {
		return fn(&memOrderRepo{m}, &memReceiptRepo{m}, &memInvoiceRepo{m})
	})
}

func (m *memStore) RunCosts(_ context.Context, fn func(
	items repository.ItemRepository,
	history repository.CostHistoryRepository,
) error) error {
	return fn(&memItemRepo{m}, &memHistoryRepo{m})
}

// ── PurchaseOrderRepository ──────────────────────────────────────────────────

type memOrderRepo struct{ s *memStore }

func copyOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := *o
	c.Lines = append([]entity.PurchaseOrderLine(nil), o.Lines...)
	return &c
}

func (r *memOrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	r.s.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyOrder(o), nil
}

func (r *memOrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.s.orders {
		if f.SupplierID != "" && o.SupplierID != f.SupplierID {
			continue
		}
		out = append(out, copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memOrderRepo) Update(_ context.Context, o *entity.PurchaseOrder) error {
	current, ok := r.s.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Version != o.Version {
		return domain.ErrConflict
	}
	saved := copyOrder(o)
	saved.Version++
	r.s.orders[o.ID] = saved
	o.Version = saved.Version
	return nil
}

// ── ReceiptRecordRepository ──────────────────────────────────────────────────

type memReceiptRepo struct{ s *memStore }

func (r *memReceiptRepo) Create(_ context.Context, rec *entity.ReceiptRecord) error {
	r.s.receipts = append(r.s.receipts, rec)
	return nil
}

func (r *memReceiptRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.ReceiptRecord, error) {
	var out []*entity.ReceiptRecord
	for _, rec := range r.s.receipts {
		if rec.OrderID == orderID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memReceiptRepo) ListByOrders(_ context.Context, orderIDs []string) ([]*entity.ReceiptRecord, error) {
	ids := make(map[string]bool, len(orderIDs))
	for _, id := range orderIDs {
		ids[id] = true
	}
	var out []*entity.ReceiptRecord
	for _, rec := range r.s.receipts {
		if ids[rec.OrderID] {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memReceiptRepo) ReceivedByLine(_ context.Context, orderID string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, rec := range r.s.receipts {
		if rec.OrderID == orderID {
			out[rec.LineID] = out[rec.LineID].Add(rec.Quantity)
		}
	}
	return out, nil
}

// ── InvoiceRecordRepository ──────────────────────────────────────────────────

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(_ context.Context, inv *entity.InvoiceRecord) error {
	r.s.invoices = append(r.s.invoices, inv)
	return nil
}

func (r *memInvoiceRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.InvoiceRecord, error) {
	var out []*entity.InvoiceRecord
	for _, inv := range r.s.invoices {
		if inv.OrderID == orderID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) ListByOrders(_ context.Context, orderIDs []string) ([]*entity.InvoiceRecord, error) {
	ids := make(map[string]bool, len(orderIDs))
	for _, id := range orderIDs {
		ids[id] = true
	}
	var out []*entity.InvoiceRecord
	for _, inv := range r.s.invoices {
		if ids[inv.OrderID] {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) CountByOrder(_ context.Context, orderID string) (int, error) {
	n := 0
	for _, inv := range r.s.invoices {
		if inv.OrderID == orderID {
			n++
		}
	}
	return n, nil
}

// ── ItemRepository / CostHistoryRepository ───────────────────────────────────

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	item, ok := r.s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *item
	return &c, nil
}

func (r *memItemRepo) UpdateCost(_ context.Context, itemID string, cost decimal.Decimal) error {
	item, ok := r.s.items[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	item.Cost = cost
	return nil
}

type memHistoryRepo struct{ s *memStore }

func (r *memHistoryRepo) Append(_ context.Context, e *entity.CostHistoryEntry) error {
	r.s.history = append(r.s.history, e)
	return nil
}

func (r *memHistoryRepo) ListByItem(_ context.Context, itemID string, limit int) ([]*entity.CostHistoryEntry, error) {
	var out []*entity.CostHistoryEntry
	for _, e := range r.s.history {
		if e.ItemID == itemID {
			out = append(out, e)
		}
	}
	// más recientes primero
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChangedAt.After(out[j].ChangedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
