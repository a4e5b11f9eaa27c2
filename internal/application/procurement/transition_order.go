package procurement

import (
	"context"
	"time"

	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/procurement"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

// TransitionOrderUseCase aplica transiciones administrativas de estado sobre
// una orden (aprobar, emitir, facturar, cerrar, cancelar). Las transiciones
// derivadas de recepciones las aplica RecordReceiptUseCase.
type TransitionOrderUseCase struct {
	txRunner TxRunner
}

// NewTransitionOrderUseCase construye el caso de uso.
func NewTransitionOrderUseCase(txRunner TxRunner) *TransitionOrderUseCase {
	return &TransitionOrderUseCase{txRunner: txRunner}
}

// Transition lee la orden, valida la transición contra la máquina de estados
// y persiste con concurrencia optimista, todo dentro de una transacción.
// Errores: InvalidTransitionError (orden intacta), domain.ErrConflict
// (versión vieja, reintentar con lectura fresca), domain.ErrNotFound.
func (uc *TransitionOrderUseCase) Transition(ctx context.Context, orderID, target string) (*entity.PurchaseOrder, error) {
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

		in := procurement.TransitionInput{At: time.Now().UTC()}
		if target == entity.POStatusInvoiced {
			// guard FULLY_RECEIVED → INVOICED: exige facturas asociadas
			count, err := invoices.CountByOrder(ctx, orderID)
			if err != nil {
				return err
			}
			in.InvoiceCount = count
		}
		if err := procurement.Transition(order, target, in); err != nil {
			return err
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
