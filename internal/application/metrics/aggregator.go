// Package metrics agrega el desempeño de proveedores por período mensual a
// partir de órdenes, recepciones y facturas. La agregación es stateless e
// idempotente: recalcula todo desde los registros fuente en cada corrida
// (simplicidad sobre actualización incremental; los volúmenes son modestos)
// y arma el resultado completo antes de devolverlo, nunca lo publica a
// medias.
package metrics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/procurement"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

// Config parámetros de la agregación.
type Config struct {
	// ExpectedLeadTimeDays plazo esperado entre emisión y recepción total
	// para que una orden cuente como "a tiempo".
	ExpectedLeadTimeDays int
	// Tolerance tolerancia de varianza por orden (la misma del conciliador).
	Tolerance procurement.Tolerance
}

// AggregatorUseCase calcula filas SupplierMetric por (proveedor, período).
type AggregatorUseCase struct {
	snapshot SnapshotRunner
	cfg      Config
}

// NewAggregatorUseCase construye el agregador.
func NewAggregatorUseCase(snapshot SnapshotRunner, cfg Config) *AggregatorUseCase {
	return &AggregatorUseCase{snapshot: snapshot, cfg: cfg}
}

// GetSupplierMetrics calcula las filas del período "YYYY-MM". Con supplierID
// vacío cubre todos los proveedores con actividad en el período (alguna
// orden creada o factura fechada en la ventana); con supplierID devuelve
// siempre esa única fila, aunque esté vacía.
func (uc *AggregatorUseCase) GetSupplierMetrics(ctx context.Context, period, supplierID string) ([]entity.SupplierMetric, error) {
	start, end, err := procurement.PeriodBounds(period)
	if err != nil {
		return nil, err
	}

	var rows []entity.SupplierMetric
	err = uc.snapshot.RunSnapshot(ctx, func(
		orders repository.PurchaseOrderRepository,
		receipts repository.ReceiptRecordRepository,
		invoices repository.InvoiceRecordRepository,
		suppliers repository.SupplierRepository,
	) error {
		var scope []*entity.Supplier
		if supplierID != "" {
			s, err := suppliers.GetByID(ctx, supplierID)
			if err != nil {
				return err
			}
			scope = []*entity.Supplier{s}
		} else {
			all, err := suppliers.List(ctx, false)
			if err != nil {
				return err
			}
			scope = all
		}

		for _, s := range scope {
			row, hasActivity, err := uc.supplierRow(ctx, s, period, start, end, orders, receipts, invoices)
			if err != nil {
				return err
			}
			if supplierID == "" && !hasActivity {
				continue
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Orden estable para que corridas repetidas sean bit-idénticas
	sort.Slice(rows, func(i, j int) bool { return rows[i].SupplierID < rows[j].SupplierID })
	return rows, nil
}

// supplierRow calcula la fila de un proveedor sobre el snapshot. Devuelve
// hasActivity=false cuando no hay órdenes creadas ni facturas fechadas en la
// ventana.
func (uc *AggregatorUseCase) supplierRow(
	ctx context.Context,
	s *entity.Supplier,
	period string,
	start, end time.Time,
	orderRepo repository.PurchaseOrderRepository,
	receiptRepo repository.ReceiptRecordRepository,
	invoiceRepo repository.InvoiceRecordRepository,
) (entity.SupplierMetric, bool, error) {
	row := entity.SupplierMetric{
		SupplierID:   s.ID,
		SupplierName: s.Name,
		Period:       period,
		TotalSpend:   decimal.Zero,
		OpenBalance:  decimal.Zero,
	}

	// Todas las órdenes del proveedor: las facturas fechadas en el período
	// pueden pertenecer a órdenes creadas antes.
	allOrders, err := orderRepo.List(ctx, repository.OrderFilter{SupplierID: s.ID})
	if err != nil {
		return row, false, err
	}
	orderIDs := make([]string, 0, len(allOrders))
	for _, o := range allOrders {
		orderIDs = append(orderIDs, o.ID)
	}
	allReceipts, err := receiptRepo.ListByOrders(ctx, orderIDs)
	if err != nil {
		return row, false, err
	}
	allInvoices, err := invoiceRepo.ListByOrders(ctx, orderIDs)
	if err != nil {
		return row, false, err
	}

	// Acumulados recibidos por (orden, línea) y facturas por orden
	receivedByOrderLine := make(map[string]map[string]decimal.Decimal)
	for _, r := range allReceipts {
		if receivedByOrderLine[r.OrderID] == nil {
			receivedByOrderLine[r.OrderID] = make(map[string]decimal.Decimal)
		}
		receivedByOrderLine[r.OrderID][r.LineID] = receivedByOrderLine[r.OrderID][r.LineID].Add(r.Quantity)
	}
	invoicesByOrder := make(map[string][]*entity.InvoiceRecord)
	for _, inv := range allInvoices {
		invoicesByOrder[inv.OrderID] = append(invoicesByOrder[inv.OrderID], inv)
	}

	inWindow := func(t time.Time) bool { return !t.Before(start) && t.Before(end) }

	// ── Métricas derivadas de órdenes creadas en el período ──────────────────
	var (
		approvalDays, issueDays, receiptDays, throughputDays []decimal.Decimal

		receiptsTotal, onTimeCount int
		fulfilledOrdered           = decimal.Zero
		fulfilledReceived          = decimal.Zero
		anyFullyReceived           bool

		invoicedOrders, varianceMismatch int
	)
	for _, o := range allOrders {
		if !inWindow(o.CreatedAt) {
			continue
		}
		row.TotalPOs++
		expected := o.ExpectedTotal()
		row.TotalSpend = row.TotalSpend.Add(expected)

		switch o.Status {
		case entity.POStatusIssued, entity.POStatusPartiallyReceived, entity.POStatusFullyReceived:
			// emitida pero aún no facturada por completo
			row.OpenBalance = row.OpenBalance.Add(expected)
		}

		if o.ApprovedAt != nil {
			approvalDays = append(approvalDays, daysBetween(o.CreatedAt, *o.ApprovedAt))
		}
		if o.ApprovedAt != nil && o.IssuedAt != nil {
			issueDays = append(issueDays, daysBetween(*o.ApprovedAt, *o.IssuedAt))
		}
		if o.IssuedAt != nil && o.FullyReceivedAt != nil {
			receiptDays = append(receiptDays, daysBetween(*o.IssuedAt, *o.FullyReceivedAt))

			receiptsTotal++
			lead := o.FullyReceivedAt.Sub(*o.IssuedAt)
			if lead <= time.Duration(uc.cfg.ExpectedLeadTimeDays)*24*time.Hour {
				onTimeCount++
			}
		}

		if o.FullyReceivedAt != nil {
			anyFullyReceived = true
			got := receivedByOrderLine[o.ID]
			for _, l := range o.Lines {
				fulfilledOrdered = fulfilledOrdered.Add(l.Quantity)
				fulfilledReceived = fulfilledReceived.Add(got[l.ID])
			}
		}

		if invs := invoicesByOrder[o.ID]; len(invs) > 0 {
			invoicedOrders++
			invoicedTotal := decimal.Zero
			firstInvoice := invs[0].InvoiceDate
			for _, inv := range invs {
				invoicedTotal = invoicedTotal.Add(inv.Amount)
				if inv.InvoiceDate.Before(firstInvoice) {
					firstInvoice = inv.InvoiceDate
				}
			}
			v := procurement.OrderVariance(invoicedTotal, expected)
			if v == nil || !procurement.VarianceWithinTolerance(*v, uc.cfg.Tolerance) {
				varianceMismatch++
			} else {
				row.VarianceMatchCount++
			}
			if o.FullyReceivedAt != nil {
				throughputDays = append(throughputDays, daysBetween(*o.FullyReceivedAt, firstInvoice))
			}
		}
	}

	// ── Métricas derivadas de facturas fechadas en el período ────────────────
	for _, inv := range allInvoices {
		if !inWindow(inv.InvoiceDate) {
			continue
		}
		if inv.MatchStatus == entity.InvoiceMatchException {
			row.InvoiceExceptionCount++
		} else {
			row.InvoiceMatchCount++
		}
	}

	row.AvgApprovalDays = meanOf(approvalDays)
	row.AvgIssueDays = meanOf(issueDays)
	row.AvgReceiptDays = meanOf(receiptDays)
	row.AvgInvoiceThroughputDays = meanOf(throughputDays)
	row.OnTimeRatio = ratioOf(onTimeCount, receiptsTotal)
	row.InvoiceExceptionRate = ratioOf(row.InvoiceExceptionCount, row.InvoiceMatchCount+row.InvoiceExceptionCount)
	row.VarianceRate = ratioOf(varianceMismatch, invoicedOrders)
	if anyFullyReceived && fulfilledOrdered.GreaterThan(decimal.Zero) {
		fr := fulfilledReceived.Div(fulfilledOrdered).Round(4)
		row.FulfillmentRatio = &fr
	}

	hasActivity := row.TotalPOs > 0 || row.InvoiceMatchCount > 0 || row.InvoiceExceptionCount > 0
	return row, hasActivity, nil
}

// daysBetween días (con fracción, redondeados a 2 decimales) entre dos
// instantes.
func daysBetween(from, to time.Time) decimal.Decimal {
	return decimal.NewFromFloat(to.Sub(from).Hours() / 24).Round(2)
}

// meanOf media de las muestras, o nil si no hay ninguna. Nunca divide por
// cero: nil significa "sin datos suficientes", jamás cero.
func meanOf(samples []decimal.Decimal) *decimal.Decimal {
	if len(samples) == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, s := range samples {
		sum = sum.Add(s)
	}
	m := sum.Div(decimal.NewFromInt(int64(len(samples)))).Round(2)
	return &m
}

// ratioOf num/den en [0,1] redondeado a 4 decimales, o nil si den es cero.
func ratioOf(num, den int) *decimal.Decimal {
	if den == 0 {
		return nil
	}
	r := decimal.NewFromInt(int64(num)).Div(decimal.NewFromInt(int64(den))).Round(4)
	return &r
}
