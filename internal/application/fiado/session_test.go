package fiado_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/fiado-ledger/internal/application/fiado"
	"github.com/tu-usuario/fiado-ledger/internal/domain"
	"github.com/tu-usuario/fiado-ledger/internal/domain/ledger"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
	"github.com/tu-usuario/fiado-ledger/internal/infrastructure/memory"
	"github.com/tu-usuario/fiado-ledger/pkg/logger"
)

// failingTxRunner simula un almacén caído en el momento del write.
type failingTxRunner struct{}

func (failingTxRunner) RunSerializable(ctx context.Context, fn func(
	credits repository.CreditRepository,
	payments repository.PaymentRepository,
) error) error {
	return domain.ErrStoreUnavailable
}

// Tras un abono confirmado, la foto de la sesión refleja el saldo nuevo sin
// recargar del almacén.
func TestSession_AbonoConfirmadoAvanzaLaFoto(t *testing.T) {
	uc, store := newTestUC(t)
	c := seedCustomer(t, store, "Ana", "")
	seedCredit(t, store, &c.ID, "", "50.00", day1)
	key := ledger.LinkedKey(c.ID)

	session := fiado.NewSession(uc)
	require.NoError(t, session.Refresh(context.Background()))

	_, err := session.ApplyPayment(context.Background(), key, dec("20.00"))
	require.NoError(t, err)

	g := findSessionGroup(t, session, key)
	assert.Equal(t, "30.00", g.Balance.StringFixed(2), "la foto avanza sin Refresh")
}

// Un write fallido NUNCA avanza la foto: la actualización optimista está
// prohibida por contrato.
func TestSession_WriteFallidoNoTocaLaFoto(t *testing.T) {
	store := memory.NewStore()
	uc := fiado.NewLedgerUseCase(
		store.Customers(), store.Credits(), store.Payments(), store.OrderItems(),
		failingTxRunner{}, logger.NewNop(),
	)
	c := seedCustomer(t, store, "Ana", "")
	seedCredit(t, store, &c.ID, "", "50.00", day1)
	key := ledger.LinkedKey(c.ID)

	session := fiado.NewSession(uc)
	require.NoError(t, session.Refresh(context.Background()))

	_, err := session.ApplyPayment(context.Background(), key, dec("20.00"))
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	g := findSessionGroup(t, session, key)
	assert.Equal(t, "50.00", g.Balance.StringFixed(2), "la foto queda intacta tras el fallo")
}

// Un rechazo de validación tampoco toca foto ni almacén.
func TestSession_RechazoNoTocaNada(t *testing.T) {
	uc, store := newTestUC(t)
	c := seedCustomer(t, store, "Ana", "")
	e := seedCredit(t, store, &c.ID, "", "50.00", day1)
	key := ledger.LinkedKey(c.ID)

	session := fiado.NewSession(uc)
	require.NoError(t, session.Refresh(context.Background()))

	_, err := session.ApplyPayment(context.Background(), key, dec("99.00"))
	require.ErrorIs(t, err, domain.ErrAmountExceedsBalance)

	g := findSessionGroup(t, session, key)
	assert.Equal(t, "50.00", g.Balance.StringFixed(2))

	pays, perr := store.Payments().ListByCreditIDs([]string{e.ID})
	require.NoError(t, perr)
	assert.Empty(t, pays)
}

// El fiado manual confirmado también avanza la foto.
func TestSession_FiadoManualAvanzaLaFoto(t *testing.T) {
	uc, _ := newTestUC(t)
	session := fiado.NewSession(uc)
	require.NoError(t, session.Refresh(context.Background()))

	entry, err := session.AddManualCredit(context.Background(), "Don José", dec("12.00"))
	require.NoError(t, err)
	require.NotNil(t, entry.CustomerID)

	g := findSessionGroup(t, session, ledger.LinkedKey(*entry.CustomerID))
	assert.Equal(t, "12.00", g.Taken.StringFixed(2))
}

func findSessionGroup(t *testing.T, s *fiado.Session, key ledger.GroupKey) *ledger.CustomerGroup {
	t.Helper()
	g := ledger.FindGroup(s.Groups(), key)
	require.NotNil(t, g, "el grupo debe existir en la foto de la sesión")
	return g
}
