package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mccmmj/cafe-web-sub007/internal/application/metrics"
	"github.com/mccmmj/cafe-web-sub007/internal/application/procurement"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

var _ procurement.TxRunner = (*TxRunner)(nil)
var _ metrics.SnapshotRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	orders repository.PurchaseOrderRepository,
	receipts repository.ReceiptRecordRepository,
	invoices repository.InvoiceRecordRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewPurchaseOrderRepository(tx)
	receiptRepo := NewReceiptRecordRepository(tx)
	invoiceRepo := NewInvoiceRecordRepository(tx)

	if err := fn(orderRepo, receiptRepo, invoiceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCosts inicia una transacción con repos de ítems e historial de costos
// (para que el append al log y el costo vigente cambien juntos).
func (r *TxRunner) RunCosts(ctx context.Context, fn func(
	items repository.ItemRepository,
	history repository.CostHistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	historyRepo := NewCostHistoryRepository(tx)

	if err := fn(itemRepo, historyRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSnapshot abre una transacción REPEATABLE READ de solo lectura: todas las
// consultas de la agregación ven el mismo snapshot de la base.
func (r *TxRunner) RunSnapshot(ctx context.Context, fn func(
	orders repository.PurchaseOrderRepository,
	receipts repository.ReceiptRecordRepository,
	invoices repository.InvoiceRecordRepository,
	suppliers repository.SupplierRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewPurchaseOrderRepository(tx)
	receiptRepo := NewReceiptRecordRepository(tx)
	invoiceRepo := NewInvoiceRecordRepository(tx)
	supplierRepo := NewSupplierRepository(tx)

	if err := fn(orderRepo, receiptRepo, invoiceRepo, supplierRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit snapshot transaction: %w", err)
	}
	return nil
}
