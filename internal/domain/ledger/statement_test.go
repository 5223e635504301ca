package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/ledger"
)

func groupOf(t *testing.T, entries []*entity.CreditEntry, payments []*entity.Payment) *ledger.CustomerGroup {
	t.Helper()
	groups := ledger.BuildGroups(entries, payments, nil)
	require.Len(t, groups, 1)
	return groups[0]
}

// Fiado en T0 y abono en T1 > T0: el estado de cuenta devuelve primero el
// abono (orden por fecha, descendente).
func TestBuildStatement_OrdenDescendente(t *testing.T) {
	g := groupOf(t,
		[]*entity.CreditEntry{debitAt("e1", strPtr("c1"), "", "100.00", t0)},
		[]*entity.Payment{paymentAt("p1", "e1", "40.00", t0.Add(time.Hour))},
	)

	lines := ledger.BuildStatement(g)
	require.Len(t, lines, 2)

	assert.Equal(t, ledger.LinePayment, lines[0].Type)
	assert.Equal(t, "40.00", lines[0].Amount.StringFixed(2))
	assert.Equal(t, ledger.LineDebit, lines[1].Type)
	assert.Equal(t, "100.00", lines[1].Amount.StringFixed(2))
}

// Filas con monto cero son ruido defensivo y se descartan del estado.
func TestBuildStatement_DescartaMontosNoPositivos(t *testing.T) {
	g := groupOf(t,
		[]*entity.CreditEntry{
			debitAt("e1", strPtr("c1"), "", "0.00", t0),
			debitAt("e2", strPtr("c1"), "", "25.00", t0.Add(time.Minute)),
		},
		nil,
	)

	lines := ledger.BuildStatement(g)
	require.Len(t, lines, 1)
	assert.Equal(t, "e2", lines[0].RefID)
}

// El fiado conserva su referencia al pedido de origen; los abonos no llevan.
func TestBuildStatement_ReferenciaDePedido(t *testing.T) {
	oid := "o1"
	e := debitAt("e1", strPtr("c1"), "", "15.00", t0)
	e.OrderID = &oid
	g := groupOf(t, []*entity.CreditEntry{e}, nil)

	lines := ledger.BuildStatement(g)
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].OrderID)
	assert.Equal(t, "o1", *lines[0].OrderID)

	assert.Equal(t, []string{"o1"}, ledger.OrderIDs(lines))
}

// OrderIDs no repite pedidos referenciados por varias líneas.
func TestOrderIDs_SinDuplicados(t *testing.T) {
	oid := "o1"
	e1 := debitAt("e1", strPtr("c1"), "", "15.00", t0)
	e1.OrderID = &oid
	e2 := debitAt("e2", strPtr("c1"), "", "10.00", t0.Add(time.Minute))
	e2.OrderID = &oid
	g := groupOf(t, []*entity.CreditEntry{e1, e2}, nil)

	assert.Equal(t, []string{"o1"}, ledger.OrderIDs(ledger.BuildStatement(g)))
}
