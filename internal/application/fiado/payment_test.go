package fiado_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/fiado-ledger/internal/application/fiado"
	"github.com/tu-usuario/fiado-ledger/internal/domain"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/ledger"
	"github.com/tu-usuario/fiado-ledger/internal/infrastructure/memory"
	"github.com/tu-usuario/fiado-ledger/pkg/logger"
)

var day1 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newTestUC(t *testing.T) (*fiado.LedgerUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := fiado.NewLedgerUseCase(
		store.Customers(), store.Credits(), store.Payments(), store.OrderItems(),
		store, logger.NewNop(),
	)
	return uc, store
}

func seedCustomer(t *testing.T, store *memory.Store, name, phone string) *entity.Customer {
	t.Helper()
	c := &entity.Customer{ID: uuid.New().String(), Name: name, Phone: phone, CreatedAt: day1, UpdatedAt: day1}
	require.NoError(t, store.Customers().Create(c))
	return c
}

func seedCredit(t *testing.T, store *memory.Store, customerID *string, phone, amount string, at time.Time) *entity.CreditEntry {
	t.Helper()
	e := &entity.CreditEntry{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Phone:      phone,
		Amount:     decimal.RequireFromString(amount),
		CreatedAt:  at,
	}
	require.NoError(t, store.Credits().Insert(e))
	return e
}

func groupBalance(t *testing.T, uc *fiado.LedgerUseCase, key ledger.GroupKey) string {
	t.Helper()
	snap, err := uc.LoadSnapshot(context.Background())
	require.NoError(t, err)
	g := snap.Group(key)
	require.NotNil(t, g, "el grupo debe existir")
	return g.Balance.StringFixed(2)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// ApplyPayment — rechazos (sin escrituras parciales)
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyPayment_MontoNoPositivoRechazado(t *testing.T) {
	uc, store := newTestUC(t)
	c := seedCustomer(t, store, "Ana", "")
	seedCredit(t, store, &c.ID, "", "50.00", day1)
	key := ledger.LinkedKey(c.ID)

	for _, monto := range []string{"0", "-5.00"} {
		_, err := uc.ApplyPayment(context.Background(), key, dec(monto))
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "monto %s debe rechazarse", monto)
	}
	assert.Equal(t, "50.00", groupBalance(t, uc, key), "el almacén queda intacto")
}

func TestApplyPayment_MontoExcedeSaldoRechazado(t *testing.T) {
	uc, store := newTestUC(t)
	c := seedCustomer(t, store, "Ana", "")
	seedCredit(t, store, &c.ID, "", "50.00", day1)
	key := ledger.LinkedKey(c.ID)

	_, err := uc.ApplyPayment(context.Background(), key, dec("50.01"))
	assert.ErrorIs(t, err, domain.ErrAmountExceedsBalance)
	assert.Equal(t, "50.00", groupBalance(t, uc, key))
}

func TestApplyPayment_SinSaldoPendienteRechazado(t *testing.T) {
	uc, store := newTestUC(t)
	c := seedCustomer(t, store, "Ana", "")
	e := seedCredit(t, store, &c.ID, "", "20.00", day1)
	key := ledger.LinkedKey(c.ID)

	// Saldar por completo y luego intentar otro abono.
	_, err := uc.ApplyPayment(context.Background(), key, dec("20.00"))
	require.NoError(t, err)

	_, err = uc.ApplyPayment(context.Background(), key, dec("1.00"))
	assert.ErrorIs(t, err, domain.ErrNoOutstandingBalance)

	pays, perr := store.Payments().ListByCreditIDs([]string{e.ID})
	require.NoError(t, perr)
	assert.Len(t, pays, 1, "el rechazo no debe dejar abonos nuevos")
}

func TestApplyPayment_GrupoInexistente(t *testing.T) {
	uc, _ := newTestUC(t)
	_, err := uc.ApplyPayment(context.Background(), ledger.LinkedKey("nadie"), dec("10.00"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyPayment — éxito
// ──────────────────────────────────────────────────────────────────────────────

// Saldo 50.00, abono 20.00 → fila nueva de 20.00 y saldo recalculado 30.00.
func TestApplyPayment_Exito(t *testing.T) {
	uc, _ := newTestUC(t)
	c := seedCustomerWithCredit(t, uc, "50.00")
	key := ledger.LinkedKey(c)

	payment, err := uc.ApplyPayment(context.Background(), key, dec("20.00"))
	require.NoError(t, err)
	assert.Equal(t, "20.00", payment.Amount.StringFixed(2))
	assert.Equal(t, "30.00", groupBalance(t, uc, key))
}

// Escenario completo: dos fiados (30.00 día 1, 70.00 día 3) y un abono de
// 60.00 el día 2 → saldo 40.00. Un abono de 50.00 se rechaza; uno de 40.00
// exacto lleva el saldo a 0.00 y se ancla al fiado más antiguo (día 1).
func TestApplyPayment_EscenarioCompleto(t *testing.T) {
	uc, store := newTestUC(t)
	c := seedCustomer(t, store, "Luis", "")
	e1 := seedCredit(t, store, &c.ID, "", "30.00", day1)
	seedCredit(t, store, &c.ID, "", "70.00", day1.Add(48*time.Hour))
	require.NoError(t, store.Payments().Insert(&entity.Payment{
		ID: uuid.New().String(), CreditID: e1.ID, Amount: dec("60.00"), CreatedAt: day1.Add(24 * time.Hour),
	}))
	key := ledger.LinkedKey(c.ID)
	require.Equal(t, "40.00", groupBalance(t, uc, key))

	_, err := uc.ApplyPayment(context.Background(), key, dec("50.00"))
	assert.ErrorIs(t, err, domain.ErrAmountExceedsBalance)

	payment, err := uc.ApplyPayment(context.Background(), key, dec("40.00"))
	require.NoError(t, err)
	assert.Equal(t, e1.ID, payment.CreditID, "el abono se ancla al fiado más antiguo")
	assert.Equal(t, "0.00", groupBalance(t, uc, key))
}

// El abono de un grupo solo-teléfono funciona igual que uno vinculado.
func TestApplyPayment_GrupoSoloTelefono(t *testing.T) {
	uc, store := newTestUC(t)
	seedCredit(t, store, nil, "6125550100", "25.00", day1)
	key := ledger.PhoneKey("6125550100")

	_, err := uc.ApplyPayment(context.Background(), key, dec("10.00"))
	require.NoError(t, err)
	assert.Equal(t, "15.00", groupBalance(t, uc, key))
}

func seedCustomerWithCredit(t *testing.T, uc *fiado.LedgerUseCase, amount string) string {
	t.Helper()
	entry, err := uc.AddManualCredit(context.Background(), "Cliente De Prueba", dec(amount))
	require.NoError(t, err)
	require.NotNil(t, entry.CustomerID)
	return *entry.CustomerID
}

// ──────────────────────────────────────────────────────────────────────────────
// AddManualCredit
// ──────────────────────────────────────────────────────────────────────────────

func TestAddManualCredit_CreaClienteYEntrada(t *testing.T) {
	uc, store := newTestUC(t)

	entry, err := uc.AddManualCredit(context.Background(), "6125550100", dec("35.50"))
	require.NoError(t, err)
	require.NotNil(t, entry.CustomerID)
	assert.Equal(t, "6125550100", entry.Phone)
	assert.Nil(t, entry.OrderID, "fiado manual no tiene pedido de origen")

	c, err := store.Customers().FindByPhone("6125550100")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, entity.PlaceholderName, c.Name)
	assert.Equal(t, *entry.CustomerID, c.ID)
}

func TestAddManualCredit_MontoInvalido(t *testing.T) {
	uc, store := newTestUC(t)

	_, err := uc.AddManualCredit(context.Background(), "Ana", dec("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	entries, lerr := store.Credits().List()
	require.NoError(t, lerr)
	assert.Empty(t, entries)
}

func TestAddManualCredit_IdentidadInvalida(t *testing.T) {
	uc, _ := newTestUC(t)
	_, err := uc.AddManualCredit(context.Background(), "   ", dec("10.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
}
