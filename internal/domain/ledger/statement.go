package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
)

// Tipos de línea del estado de cuenta.
const (
	LineDebit   = "debit"
	LinePayment = "payment"
)

// Line línea cronológica del estado de cuenta de un grupo: un fiado o un
// abono, con referencia opcional al pedido de origen.
type Line struct {
	Type    string
	RefID   string // ID del CreditEntry o del Payment
	Amount  decimal.Decimal
	At      time.Time
	OrderID *string            // solo en fiados nacidos de un pedido
	Items   []*entity.OrderItem // decoración perezosa, puede ser nil
}

// BuildStatement fusiona fiados y abonos del grupo en una sola secuencia
// por fecha descendente (desempate por RefID, descendente, para orden
// estable). Las líneas con monto no positivo se descartan: filas de ruido
// cero que no aportan al estado de cuenta.
func BuildStatement(g *CustomerGroup) []Line {
	lines := make([]Line, 0, len(g.Entries)+len(g.Payments))
	for _, e := range g.Entries {
		if !e.Amount.IsPositive() {
			continue
		}
		lines = append(lines, Line{
			Type:    LineDebit,
			RefID:   e.ID,
			Amount:  e.Amount,
			At:      e.CreatedAt,
			OrderID: e.OrderID,
		})
	}
	for _, p := range g.Payments {
		if !p.Amount.IsPositive() {
			continue
		}
		lines = append(lines, Line{
			Type:   LinePayment,
			RefID:  p.ID,
			Amount: p.Amount,
			At:     p.CreatedAt,
		})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].At.Equal(lines[j].At) {
			return lines[i].At.After(lines[j].At)
		}
		return lines[i].RefID > lines[j].RefID
	})
	return lines
}

// OrderIDs IDs de pedido referenciados por las líneas de fiado (sin
// duplicados), para decorar el estado con los ítems del pedido.
func OrderIDs(lines []Line) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, l := range lines {
		if l.OrderID == nil || *l.OrderID == "" || seen[*l.OrderID] {
			continue
		}
		seen[*l.OrderID] = true
		ids = append(ids, *l.OrderID)
	}
	return ids
}
