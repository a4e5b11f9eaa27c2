package metrics_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mccmmj/cafe-web-sub007/internal/domain"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

// snapStore snapshot en memoria de registros fuente para tests del agregador.
// Las lecturas son estables entre corridas: lo que exige la idempotencia.
type snapStore struct {
	suppliers map[string]*entity.Supplier
	orders    []*entity.PurchaseOrder
	receipts  []*entity.ReceiptRecord
	invoices  []*entity.InvoiceRecord
}

func newSnapStore() *snapStore {
	return &snapStore{suppliers: make(map[string]*entity.Supplier)}
}

func (s *snapStore) RunSnapshot(_ context.Context, fn func(
	orders repository.PurchaseOrderRepository,
	receipts repository.ReceiptRecordRepository,
	invoices repository.InvoiceRecordRepository,
	suppliers repository.SupplierRepository,
) error) error {
	return fn(&snapOrderRepo{s}, &snapReceiptRepo{s}, &snapInvoiceRepo{s}, &snapSupplierRepo{s})
}

// ── PurchaseOrderRepository (solo lectura en la agregación) ──────────────────

type snapOrderRepo struct{ s *snapStore }

func (r *snapOrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	r.s.orders = append(r.s.orders, o)
	return nil
}

func (r *snapOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	for _, o := range r.s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *snapOrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.s.orders {
		if f.SupplierID != "" && o.SupplierID != f.SupplierID {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *snapOrderRepo) Update(_ context.Context, _ *entity.PurchaseOrder) error {
	return domain.ErrForbidden // la agregación nunca escribe
}

// ── ReceiptRecordRepository ──────────────────────────────────────────────────

type snapReceiptRepo struct{ s *snapStore }

func (r *snapReceiptRepo) Create(_ context.Context, rec *entity.ReceiptRecord) error {
	r.s.receipts = append(r.s.receipts, rec)
	return nil
}

func (r *snapReceiptRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.ReceiptRecord, error) {
	return r.ListByOrders(nil, []string{orderID})
}

func (r *snapReceiptRepo) ListByOrders(_ context.Context, orderIDs []string) ([]*entity.ReceiptRecord, error) {
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

func (r *snapReceiptRepo) ReceivedByLine(_ context.Context, orderID string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, rec := range r.s.receipts {
		if rec.OrderID == orderID {
			out[rec.LineID] = out[rec.LineID].Add(rec.Quantity)
		}
	}
	return out, nil
}

// ── InvoiceRecordRepository ──────────────────────────────────────────────────

type snapInvoiceRepo struct{ s *snapStore }

func (r *snapInvoiceRepo) Create(_ context.Context, inv *entity.InvoiceRecord) error {
	r.s.invoices = append(r.s.invoices, inv)
	return nil
}

func (r *snapInvoiceRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.InvoiceRecord, error) {
	return r.ListByOrders(nil, []string{orderID})
}

func (r *snapInvoiceRepo) ListByOrders(_ context.Context, orderIDs []string) ([]*entity.InvoiceRecord, error) {
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

func (r *snapInvoiceRepo) CountByOrder(_ context.Context, orderID string) (int, error) {
	n := 0
	for _, inv := range r.s.invoices {
		if inv.OrderID == orderID {
			n++
		}
	}
	return n, nil
}

// ── SupplierRepository ───────────────────────────────────────────────────────

type snapSupplierRepo struct{ s *snapStore }

func (r *snapSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sup, nil
}

func (r *snapSupplierRepo) List(_ context.Context, onlyActive bool) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, sup := range r.s.suppliers {
		if onlyActive && !sup.Active {
			continue
		}
		out = append(out, sup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
