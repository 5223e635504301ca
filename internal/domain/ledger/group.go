package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
)

// CustomerGroup grupo derivado de fiados y abonos de un mismo cliente
// canónico. No se persiste; se recalcula desde los registros crudos.
type CustomerGroup struct {
	Key      GroupKey
	Title    string
	Entries  []*entity.CreditEntry // orden: más reciente primero (display)
	Payments []*entity.Payment     // abonos que referencian entradas del grupo
	Taken    decimal.Decimal       // Σ entry.Amount
	Paid     decimal.Decimal       // Σ payment.Amount
	Balance  decimal.Decimal       // round2(Taken − Paid)
}

// Anomalous indica paid > taken: estado imposible bajo operación correcta,
// se registra como anomalía de integridad y se muestra con piso en cero.
func (g *CustomerGroup) Anomalous() bool {
	return g.Balance.IsNegative()
}

// DisplayBalance saldo para mostrar: max(Balance, 0). Un saldo negativo no
// tiene significado de negocio aquí (ver Anomalous).
func (g *CustomerGroup) DisplayBalance() decimal.Decimal {
	if g.Balance.IsNegative() {
		return decimal.Zero
	}
	return g.Balance
}

// OldestEntry entrada más antigua del grupo (desempate por ID para
// determinismo). Ancla contable del asignador de abonos.
func (g *CustomerGroup) OldestEntry() *entity.CreditEntry {
	var oldest *entity.CreditEntry
	for _, e := range g.Entries {
		if oldest == nil {
			oldest = e
			continue
		}
		if e.CreatedAt.Before(oldest.CreatedAt) ||
			(e.CreatedAt.Equal(oldest.CreatedAt) && e.ID < oldest.ID) {
			oldest = e
		}
	}
	return oldest
}

// CreditIDs IDs de las entradas del grupo.
func (g *CustomerGroup) CreditIDs() []string {
	ids := make([]string, 0, len(g.Entries))
	for _, e := range g.Entries {
		ids = append(ids, e.ID)
	}
	return ids
}

// BuildGroups particiona las entradas por clave canónica y calcula los
// totales por grupo. Los abonos se asignan al grupo de la entrada que
// referencian. Grupos ordenados por la entrada más reciente, descendente.
func BuildGroups(entries []*entity.CreditEntry, payments []*entity.Payment, customers []*entity.Customer) []*CustomerGroup {
	customersByID := make(map[string]*entity.Customer, len(customers))
	for _, c := range customers {
		customersByID[c.ID] = c
	}

	byKey := make(map[GroupKey]*CustomerGroup)
	var order []GroupKey
	groupOf := make(map[string]GroupKey, len(entries)) // creditID -> clave

	for _, e := range entries {
		key := CanonicalKey(e)
		g, ok := byKey[key]
		if !ok {
			g = &CustomerGroup{
				Key:     key,
				Title:   groupTitle(key, e, customersByID),
				Taken:   decimal.Zero,
				Paid:    decimal.Zero,
				Balance: decimal.Zero,
			}
			byKey[key] = g
			order = append(order, key)
		}
		g.Entries = append(g.Entries, e)
		g.Taken = g.Taken.Add(e.Amount)
		groupOf[e.ID] = key
	}

	for _, p := range payments {
		key, ok := groupOf[p.CreditID]
		if !ok {
			// Abono huérfano (entrada desconocida): no pertenece a ningún grupo.
			continue
		}
		g := byKey[key]
		g.Payments = append(g.Payments, p)
		g.Paid = g.Paid.Add(p.Amount)
	}

	groups := make([]*CustomerGroup, 0, len(order))
	for _, key := range order {
		g := byKey[key]
		g.Balance = g.Taken.Sub(g.Paid).Round(2)
		sort.SliceStable(g.Entries, func(i, j int) bool {
			return g.Entries[i].CreatedAt.After(g.Entries[j].CreatedAt)
		})
		sort.SliceStable(g.Payments, func(i, j int) bool {
			return g.Payments[i].CreatedAt.After(g.Payments[j].CreatedAt)
		})
		groups = append(groups, g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return newestEntryAt(groups[i]).After(newestEntryAt(groups[j]))
	})
	return groups
}

// FindGroup busca el grupo con la clave dada dentro de una agregación ya
// construida. nil si no existe.
func FindGroup(groups []*CustomerGroup, key GroupKey) *CustomerGroup {
	for _, g := range groups {
		if g.Key == key {
			return g
		}
	}
	return nil
}

func newestEntryAt(g *CustomerGroup) time.Time {
	// Entries ya está ordenado descendente.
	return g.Entries[0].CreatedAt
}

func groupTitle(key GroupKey, e *entity.CreditEntry, customersByID map[string]*entity.Customer) string {
	switch key.Kind {
	case KeyLinked:
		if c, ok := customersByID[key.Value]; ok && c.HasName() {
			return c.Name
		}
		if e.Phone != "" {
			return e.Phone
		}
		return entity.PlaceholderName
	case KeyPhoneOnly:
		return key.Value
	default:
		return "Fiado " + shortID(key.Value)
	}
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
