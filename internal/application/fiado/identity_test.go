package fiado_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/fiado-ledger/internal/application/fiado"
	"github.com/tu-usuario/fiado-ledger/internal/domain"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// NormalizePhone
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "6125550100", fiado.NormalizePhone("612 555-0100"))
	assert.Equal(t, "576125550100", fiado.NormalizePhone("+57 (612) 555.0100"))
	assert.Empty(t, fiado.NormalizePhone("612ABC0100"), "letras mezcladas con dígitos no validan")
	assert.Empty(t, fiado.NormalizePhone("123"), "muy corto para ser teléfono")
}

// ──────────────────────────────────────────────────────────────────────────────
// EnsureCustomer
// ──────────────────────────────────────────────────────────────────────────────

func TestEnsureCustomer_TelefonoExistente(t *testing.T) {
	uc, store := newTestUC(t)
	existing := seedCustomer(t, store, "Ana", "6125550100")

	c, err := uc.EnsureCustomer(context.Background(), "612 555 0100")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, c.ID, "debe resolver al cliente existente por teléfono normalizado")
}

func TestEnsureCustomer_NombreSinDistinguirMayusculas(t *testing.T) {
	uc, store := newTestUC(t)
	existing := seedCustomer(t, store, "María Pérez", "")

	c, err := uc.EnsureCustomer(context.Background(), "maría pérez")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, c.ID)
}

func TestEnsureCustomer_CreaPorNombre(t *testing.T) {
	uc, _ := newTestUC(t)

	c, err := uc.EnsureCustomer(context.Background(), "Don José")
	require.NoError(t, err)
	assert.Equal(t, "Don José", c.Name)
	assert.Empty(t, c.Phone)
}

func TestEnsureCustomer_TelefonoInvalido(t *testing.T) {
	uc, _ := newTestUC(t)
	// Con pinta de teléfono (contiene dígitos) pero no valida numéricamente.
	_, err := uc.EnsureCustomer(context.Background(), "555-CASA")
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
}

func TestEnsureCustomer_ConsultaVacia(t *testing.T) {
	uc, _ := newTestUC(t)
	_, err := uc.EnsureCustomer(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
}

// ──────────────────────────────────────────────────────────────────────────────
// LinkPhoneToCustomer — vinculación idempotente
// ──────────────────────────────────────────────────────────────────────────────

// Tres fiados sueltos con el mismo teléfono: la primera vinculación los
// toma todos; la segunda no cambia nada y devuelve el mismo cliente.
func TestLinkPhoneToCustomer_Idempotente(t *testing.T) {
	uc, store := newTestUC(t)
	existing := seedCustomer(t, store, "Ana", "6125550100")
	for i := 0; i < 3; i++ {
		seedCredit(t, store, nil, "6125550100", "10.00", day1)
	}

	c, linked, err := uc.LinkPhoneToCustomer(context.Background(), "6125550100")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, c.ID)
	assert.EqualValues(t, 3, linked)

	c2, linked2, err := uc.LinkPhoneToCustomer(context.Background(), "6125550100")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, c2.ID, "la segunda llamada devuelve el mismo cliente")
	assert.Zero(t, linked2, "no quedan fiados por vincular")

	unlinked, err := store.Credits().ListUnlinkedByPhone("6125550100")
	require.NoError(t, err)
	assert.Empty(t, unlinked)
}

// Sin cliente previo, la vinculación lo crea con nombre placeholder.
func TestLinkPhoneToCustomer_CreaClientePlaceholder(t *testing.T) {
	uc, store := newTestUC(t)
	seedCredit(t, store, nil, "6125550100", "10.00", day1)

	c, linked, err := uc.LinkPhoneToCustomer(context.Background(), "6125550100")
	require.NoError(t, err)
	assert.Equal(t, entity.PlaceholderName, c.Name)
	assert.Equal(t, "6125550100", c.Phone)
	assert.EqualValues(t, 1, linked)
}

// Tras vincular, el grupo solo-teléfono desaparece y sus entradas agregan
// bajo la clave del cliente para toda agregación futura.
func TestLinkPhoneToCustomer_GrupoMigraAlCliente(t *testing.T) {
	uc, store := newTestUC(t)
	seedCredit(t, store, nil, "6125550100", "10.00", day1)
	seedCredit(t, store, nil, "6125550100", "15.00", day1)

	c, _, err := uc.LinkPhoneToCustomer(context.Background(), "6125550100")
	require.NoError(t, err)

	snap, err := uc.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap.Group(ledger.PhoneKey("6125550100")), "el grupo solo-teléfono ya no existe")

	g := snap.Group(ledger.LinkedKey(c.ID))
	require.NotNil(t, g)
	assert.Equal(t, "25.00", g.Taken.StringFixed(2))
}

func TestLinkPhoneToCustomer_TelefonoInvalido(t *testing.T) {
	uc, _ := newTestUC(t)
	_, _, err := uc.LinkPhoneToCustomer(context.Background(), "no-es-numero-1")
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateCustomerName
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateCustomerName(t *testing.T) {
	uc, store := newTestUC(t)
	c := seedCustomer(t, store, entity.PlaceholderName, "6125550100")

	updated, err := uc.UpdateCustomerName(context.Background(), c.ID, "Rosa López")
	require.NoError(t, err)
	assert.Equal(t, "Rosa López", updated.Name)
}

func TestUpdateCustomerName_MuyCorto(t *testing.T) {
	uc, store := newTestUC(t)
	c := seedCustomer(t, store, "Ana", "")

	_, err := uc.UpdateCustomerName(context.Background(), c.ID, "A")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateCustomerName_NoExiste(t *testing.T) {
	uc, _ := newTestUC(t)
	_, err := uc.UpdateCustomerName(context.Background(), "fantasma", "Rosa")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
