package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/mccmmj/cafe-web-sub007/internal/application/dto"
	"github.com/mccmmj/cafe-web-sub007/internal/domain"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	domainproc "github.com/mccmmj/cafe-web-sub007/internal/domain/procurement"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

// RecordInvoiceUseCase registra facturas de proveedor contra una orden y las
// clasifica (matched / exception) contra el total esperado. Se permiten
// varias facturas por orden (facturación parcial); la clasificación es por
// factura e independiente.
type RecordInvoiceUseCase struct {
	txRunner TxRunner
	tol      domainproc.Tolerance
}

// NewRecordInvoiceUseCase construye el caso de uso con la tolerancia
// configurada (porcentaje de monto y días para late_invoice).
func NewRecordInvoiceUseCase(txRunner TxRunner, tol domainproc.Tolerance) *RecordInvoiceUseCase {
	return &RecordInvoiceUseCase{txRunner: txRunner, tol: tol}
}

// Record valida y persiste la factura de forma atómica. Una factura contra
// una orden inexistente se rechaza con domain.ErrNotFound, nunca se descarta
// en silencio. Si la orden ya está totalmente recibida, la llegada de la
// factura la transiciona a INVOICED.
func (uc *RecordInvoiceUseCase) Record(ctx context.Context, orderID string, in dto.RecordInvoiceRequest) (*entity.InvoiceRecord, error) {
	if orderID == "" || in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	invoiceDate := in.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = time.Now().UTC()
	}

	var result *entity.InvoiceRecord
	err := uc.txRunner.Run(ctx, func(
		orders repository.PurchaseOrderRepository,
		receipts repository.ReceiptRecordRepository,
		invoices repository.InvoiceRecordRepository,
	) error {
		order, err := orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		switch order.Status {
		case entity.POStatusIssued, entity.POStatusPartiallyReceived,
			entity.POStatusFullyReceived, entity.POStatusInvoiced:
			// facturable
		default:
			return domain.ErrInvalidInput
		}

		status, reason := domainproc.ClassifyInvoice(
			in.Amount, order.ExpectedTotal(), invoiceDate, order.FullyReceivedAt, uc.tol)

		invoice := &entity.InvoiceRecord{
			ID:              uuid.New().String(),
			OrderID:         orderID,
			Number:          in.Number,
			Amount:          in.Amount,
			InvoiceDate:     invoiceDate,
			MatchStatus:     status,
			ExceptionReason: reason,
			CreatedAt:       time.Now().UTC(),
		}
		if err := invoices.Create(ctx, invoice); err != nil {
			return err
		}

		if order.Status == entity.POStatusFullyReceived {
			at := invoiceDate
			if at.Before(*order.FullyReceivedAt) {
				at = *order.FullyReceivedAt // factura retro-fechada: el ciclo no retrocede
			}
			if err := domainproc.Transition(order, entity.POStatusInvoiced,
				domainproc.TransitionInput{At: at, InvoiceCount: 1}); err != nil {
				return err
			}
		}
		if err := orders.Update(ctx, order); err != nil {
			return err
		}
		result = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
