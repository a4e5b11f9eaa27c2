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

// RecordReceiptUseCase registra recepciones de mercancía contra líneas de una
// orden y re-evalúa el estado de la orden según lo recibido acumulado.
//
// El Update final de la orden corre siempre, incluso cuando el estado no
// cambia: el bump de versión serializa recepciones concurrentes sobre la
// misma orden, de modo que dos entregas que en conjunto excederían lo
// ordenado terminan una con éxito y la otra con OverReceiptError o
// domain.ErrConflict.
type RecordReceiptUseCase struct {
	txRunner TxRunner
}

// NewRecordReceiptUseCase construye el caso de uso.
func NewRecordReceiptUseCase(txRunner TxRunner) *RecordReceiptUseCase {
	return &RecordReceiptUseCase{txRunner: txRunner}
}

// Record valida la recepción y la persiste de forma atómica. Falla con
// OverReceiptError si el acumulado excedería la cantidad ordenada de la
// línea; en ese caso no se escribe ningún registro.
func (uc *RecordReceiptUseCase) Record(ctx context.Context, orderID, userID string, in dto.RecordReceiptRequest) (*entity.PurchaseOrder, error) {
	if orderID == "" || in.LineID == "" || in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	receivedAt := in.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	var result *entity.PurchaseOrder
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
		case entity.POStatusIssued, entity.POStatusPartiallyReceived, entity.POStatusFullyReceived:
			// recibible; sobre una orden ya completa cualquier cantidad
			// extra cae en OverReceiptError más abajo
		default:
			return &domain.InvalidTransitionError{From: order.Status, To: entity.POStatusPartiallyReceived}
		}
		line := order.Line(in.LineID)
		if line == nil {
			return domain.ErrNotFound
		}

		received, err := receipts.ReceivedByLine(ctx, orderID)
		if err != nil {
			return err
		}
		cumulative := received[line.ID].Add(in.Quantity)
		if cumulative.GreaterThan(line.Quantity) {
			return &domain.OverReceiptError{
				OrderID:   orderID,
				LineID:    line.ID,
				Ordered:   line.Quantity.String(),
				Received:  received[line.ID].String(),
				Attempted: in.Quantity.String(),
			}
		}

		receipt := &entity.ReceiptRecord{
			ID:         uuid.New().String(),
			OrderID:    orderID,
			LineID:     line.ID,
			Quantity:   in.Quantity,
			ReceivedAt: receivedAt,
			CreatedAt:  time.Now().UTC(),
			CreatedBy:  userID,
		}
		if err := receipts.Create(ctx, receipt); err != nil {
			return err
		}

		// Re-evaluar el estado con el acumulado que incluye esta entrega
		received[line.ID] = cumulative
		if next := domainproc.ReceiptDrivenStatus(order, received); next != "" {
			at := receivedAt
			if last := order.UpdatedAt; at.Before(last) {
				at = last // recepción retro-fechada: el timestamp del ciclo no retrocede
			}
			if err := domainproc.Transition(order, next, domainproc.TransitionInput{At: at}); err != nil {
				return err
			}
		}
		if err := orders.Update(ctx, order); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
