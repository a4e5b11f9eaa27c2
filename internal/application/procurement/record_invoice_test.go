package procurement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mccmmj/cafe-web-sub007/internal/application/dto"
	appproc "github.com/mccmmj/cafe-web-sub007/internal/application/procurement"
	"github.com/mccmmj/cafe-web-sub007/internal/domain"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/entity"
	"github.com/mccmmj/cafe-web-sub007/internal/domain/procurement"
)

var testTol = procurement.Tolerance{Pct: dec("0.01"), LateInvoiceDays: 30}

// fullyReceivedOrder orden totalmente recibida por $20.00 (10 und × $2.00).
func fullyReceivedOrder(store *memStore) *entity.PurchaseOrder {
	o := issuedOrder(store)
	received := baseTime.Add(72 * time.Hour)
	o.Status = entity.POStatusFullyReceived
	o.FullyReceivedAt = &received
	return o
}

func TestRecordInvoice_MatchedYTransiciona(t *testing.T) {
	store := newMemStore()
	o := fullyReceivedOrder(store)
	uc := appproc.NewRecordInvoiceUseCase(store, testTol)

	inv, err := uc.Record(ctx, o.ID, dto.RecordInvoiceRequest{
		Number: "FV-900", Amount: dec("20.10"), InvoiceDate: baseTime.Add(96 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceMatchMatched, inv.MatchStatus)
	assert.Empty(t, inv.ExceptionReason)

	// La llegada de la factura transiciona la orden FULLY_RECEIVED → INVOICED
	saved := store.orders[o.ID]
	assert.Equal(t, entity.POStatusInvoiced, saved.Status)
	require.NotNil(t, saved.InvoicedAt)
	assert.True(t, saved.InvoicedAt.Equal(inv.InvoiceDate))
}

func TestRecordInvoice_ExcepcionPorMonto(t *testing.T) {
	store := newMemStore()
	o := fullyReceivedOrder(store)
	uc := appproc.NewRecordInvoiceUseCase(store, testTol)

	// 20.00 esperado, tolerancia 1% → 25.00 es excepción
	inv, err := uc.Record(ctx, o.ID, dto.RecordInvoiceRequest{
		Amount: dec("25.00"), InvoiceDate: baseTime.Add(96 * time.Hour),
	})
	require.NoError(t, err, "la excepción se registra, no es un error del caso de uso")
	assert.Equal(t, entity.InvoiceMatchException, inv.MatchStatus)
	assert.Equal(t, entity.ExceptionAmountMismatch, inv.ExceptionReason)
}

func TestRecordInvoice_ExcepcionPorTardanza(t *testing.T) {
	store := newMemStore()
	o := fullyReceivedOrder(store)
	uc := appproc.NewRecordInvoiceUseCase(store, testTol)

	inv, err := uc.Record(ctx, o.ID, dto.RecordInvoiceRequest{
		Amount: dec("20.00"), InvoiceDate: o.FullyReceivedAt.AddDate(0, 0, 45),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceMatchException, inv.MatchStatus)
	assert.Equal(t, entity.ExceptionLateInvoice, inv.ExceptionReason)
}

// Varias facturas por orden (facturación parcial): clasificación independiente.
func TestRecordInvoice_FacturacionParcial(t *testing.T) {
	store := newMemStore()
	o := issuedOrder(store) // aún sin recepción total

	uc := appproc.NewRecordInvoiceUseCase(store, testTol)

	// Primera factura parcial: monto muy por debajo del esperado → excepción
	inv1, err := uc.Record(ctx, o.ID, dto.RecordInvoiceRequest{
		Amount: dec("10.00"), InvoiceDate: baseTime.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceMatchException, inv1.MatchStatus)

	// La orden sigue en ISSUED: sin recepción total no hay transición a INVOICED
	assert.Equal(t, entity.POStatusIssued, store.orders[o.ID].Status)

	inv2, err := uc.Record(ctx, o.ID, dto.RecordInvoiceRequest{
		Amount: dec("20.00"), InvoiceDate: baseTime.Add(25 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceMatchMatched, inv2.MatchStatus)
	assert.Len(t, store.invoices, 2)
}

// Una factura contra una orden inexistente se rechaza, nunca se descarta en
// silencio.
func TestRecordInvoice_OrdenInexistente(t *testing.T) {
	store := newMemStore()
	uc := appproc.NewRecordInvoiceUseCase(store, testTol)

	_, err := uc.Record(ctx, "po-nope", dto.RecordInvoiceRequest{Amount: dec("20.00")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.invoices)
}

func TestRecordInvoice_OrdenNoFacturable(t *testing.T) {
	store := newMemStore()
	o := issuedOrder(store)
	store.orders[o.ID].Status = entity.POStatusDraft
	uc := appproc.NewRecordInvoiceUseCase(store, testTol)

	_, err := uc.Record(ctx, o.ID, dto.RecordInvoiceRequest{Amount: dec("20.00")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.invoices)
}
