package procurement_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appproc "github.com/mccmmj/cafe-web-sub007/internal/application/procurement"
	"github.com/mccmmj/cafe-web-sub007/internal/application/dto"
	"github.com/mccmmj/cafe-web-sub007/internal/domain"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/repository"
)

var (
	ctx      = context.Background()
	baseTime = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// issuedOrder orden emitida con una línea de 10 und × $2.00 ya persistida.
func issuedOrder(store *memStore) *entity.PurchaseOrder {
	issued := baseTime.Add(2 * time.Hour)
	approved := baseTime.Add(time.Hour)
	o := &entity.PurchaseOrder{
		ID:         "po-1",
		Number:     "PO-2024-TEST01",
		SupplierID: "sup-1",
		Status:     entity.POStatusIssued,
		Lines: []entity.PurchaseOrderLine{
			{ID: "ln-1", OrderID: "po-1", ItemID: "item-1", ItemName: "Café en grano", Quantity: dec("10"), UnitPrice: dec("2.00")},
		},
		CreatedAt:  baseTime,
		ApprovedAt: &approved,
		IssuedAt:   &issued,
		UpdatedAt:  issued,
		Version:    3,
	}
	store.orders[o.ID] = o
	return o
}

func TestRecordReceipt_ParcialYCompleta(t *testing.T) {
	store := newMemStore()
	issuedOrder(store)
	uc := appproc.NewRecordReceiptUseCase(store)

	// Entrega parcial: 4 de 10 → PARTIALLY_RECEIVED
	order, err := uc.Record(ctx, "po-1", "user-1", dto.RecordReceiptRequest{
		LineID: "ln-1", Quantity: dec("4"), ReceivedAt: baseTime.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusPartiallyReceived, order.Status)
	assert.Nil(t, order.FullyReceivedAt)

	// Entrega del resto: 6 → FULLY_RECEIVED con timestamp de la entrega
	receivedAt := baseTime.Add(48 * time.Hour)
	order, err = uc.Record(ctx, "po-1", "user-1", dto.RecordReceiptRequest{
		LineID: "ln-1", Quantity: dec("6"), ReceivedAt: receivedAt,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusFullyReceived, order.Status)
	require.NotNil(t, order.FullyReceivedAt)
	assert.True(t, order.FullyReceivedAt.Equal(receivedAt))

	assert.Len(t, store.receipts, 2)
}

// Línea de 10 ya recibida por completo: recibir 1 más falla con
// OverReceiptError y el acumulado queda en 10.
func TestRecordReceipt_SobreRecepcionRechazada(t *testing.T) {
	store := newMemStore()
	o := issuedOrder(store)
	uc := appproc.NewRecordReceiptUseCase(store)

	_, err := uc.Record(ctx, o.ID, "user-1", dto.RecordReceiptRequest{
		LineID: "ln-1", Quantity: dec("10"), ReceivedAt: baseTime.Add(24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = uc.Record(ctx, o.ID, "user-1", dto.RecordReceiptRequest{
		LineID: "ln-1", Quantity: dec("1"), ReceivedAt: baseTime.Add(25 * time.Hour),
	})

	var overErr *domain.OverReceiptError
	require.ErrorAs(t, err, &overErr)
	assert.Equal(t, "ln-1", overErr.LineID)

	// No se escribió registro parcial: el acumulado sigue en 10
	got, _ := (&memReceiptRepo{store}).ReceivedByLine(ctx, o.ID)
	assert.True(t, got["ln-1"].Equal(dec("10")))
}

// Exceder lo ordenado en una sola entrega también se rechaza sin escribir.
func TestRecordReceipt_ExcesoDirectoRechazado(t *testing.T) {
	store := newMemStore()
	o := issuedOrder(store)
	uc := appproc.NewRecordReceiptUseCase(store)

	_, err := uc.Record(ctx, o.ID, "user-1", dto.RecordReceiptRequest{
		LineID: "ln-1", Quantity: dec("11"), ReceivedAt: baseTime.Add(24 * time.Hour),
	})

	var overErr *domain.OverReceiptError
	require.ErrorAs(t, err, &overErr)
	assert.Empty(t, store.receipts)
	assert.Equal(t, entity.POStatusIssued, store.orders[o.ID].Status, "la orden no debe mutar")
}

func TestRecordReceipt_Validaciones(t *testing.T) {
	store := newMemStore()
	o := issuedOrder(store)
	uc := appproc.NewRecordReceiptUseCase(store)

	// Orden inexistente
	_, err := uc.Record(ctx, "po-nope", "user-1", dto.RecordReceiptRequest{
		LineID: "ln-1", Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Línea inexistente
	_, err = uc.Record(ctx, o.ID, "user-1", dto.RecordReceiptRequest{
		LineID: "ln-nope", Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Cantidad no positiva
	_, err = uc.Record(ctx, o.ID, "user-1", dto.RecordReceiptRequest{
		LineID: "ln-1", Quantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Orden en DRAFT: no recibible
	store.orders[o.ID].Status = entity.POStatusDraft
	_, err = uc.Record(ctx, o.ID, "user-1", dto.RecordReceiptRequest{
		LineID: "ln-1", Quantity: dec("1"),
	})
	var invErr *domain.InvalidTransitionError
	assert.ErrorAs(t, err, &invErr)
}

// Dos recepciones que en conjunto exceden lo ordenado: la que pierde la
// carrera de versión recibe ErrConflict; releyendo, recibiría OverReceiptError.
func TestRecordReceipt_ConflictoDeVersion(t *testing.T) {
	store := newMemStore()
	o := issuedOrder(store)
	uc := appproc.NewRecordReceiptUseCase(store)

	// Simular un escritor concurrente: la versión de la orden avanza después
	// de que nuestra "transacción" la leyó.
	stale := &staleOnceRunner{memStore: store}
	ucStale := appproc.NewRecordReceiptUseCase(stale)

	_, err := ucStale.Record(ctx, o.ID, "user-1", dto.RecordReceiptRequest{
		LineID: "ln-1", Quantity: dec("6"), ReceivedAt: baseTime.Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// El ganador sí quedó registrado; el total recibido nunca superó lo ordenado
	got, _ := (&memReceiptRepo{store}).ReceivedByLine(ctx, o.ID)
	assert.True(t, got["ln-1"].LessThanOrEqual(dec("10")))

	// Reintento con lectura fresca: ahora 6 de 10 pero ya hay 6 recibidas
	// del ganador, así que 6 más sería sobre-recepción.
	_, err = uc.Record(ctx, o.ID, "user-1", dto.RecordReceiptRequest{
		LineID: "ln-1", Quantity: dec("6"), ReceivedAt: baseTime.Add(26 * time.Hour),
	})
	var overErr *domain.OverReceiptError
	assert.ErrorAs(t, err, &overErr)
}

// staleOnceRunner TxRunner que simula el intercalado clásico de la carrera:
// el caller lee la orden ANTES de que otro escritor confirme su recepción,
// y escribe después. En la primera corrida confirma al "ganador" (recepción
// de 6 + bump de versión) y presenta al caller una vista previa a ese commit;
// su Update encuentra entonces versión vieja → domain.ErrConflict.
type staleOnceRunner struct {
	*memStore
	fired           bool
	winnerReceiptID string
}

func (s *staleOnceRunner) Run(ctx context.Context, fn func(
	orders repository.PurchaseOrderRepository,
	receipts repository.ReceiptRecordRepository,
	invoices repository.InvoiceRecordRepository,
) error) error {
	if s.fired {
		return s.memStore.Run(ctx, fn)
	}
	s.fired = true
	s.winnerReceiptID = "rcpt-ganador"
	s.receipts = append(s.receipts, &entity.ReceiptRecord{
		ID: s.winnerReceiptID, OrderID: "po-1", LineID: "ln-1",
		Quantity: dec("6"), ReceivedAt: baseTime.Add(23 * time.Hour),
	})
	s.orders["po-1"].Version++

	return s.runTx(func() error {
		return fn(&staleOrderRepo{memOrderRepo{s.memStore}, s},
			&staleReceiptRepo{memReceiptRepo{s.memStore}, s},
			&memInvoiceRepo{s.memStore})
	})
}

// staleOrderRepo devuelve la orden como se veía antes del commit del ganador.
type staleOrderRepo struct {
	memOrderRepo
	runner *staleOnceRunner
}

func (r *staleOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	o, err := r.memOrderRepo.GetByID(ctx, id)
	if err == nil {
		o.Version--
	}
	return o, err
}

// staleReceiptRepo oculta la recepción del ganador (vista pre-commit).
type staleReceiptRepo struct {
	memReceiptRepo
	runner *staleOnceRunner
}

func (r *staleReceiptRepo) ReceivedByLine(ctx context.Context, orderID string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, rec := range r.runner.receipts {
		if rec.OrderID == orderID && rec.ID != r.runner.winnerReceiptID {
			out[rec.LineID] = out[rec.LineID].Add(rec.Quantity)
		}
	}
	return out, nil
}
