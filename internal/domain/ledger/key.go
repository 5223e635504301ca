package ledger

import (
	"fmt"
	"strings"

	"github.com/tu-usuario/fiado-ledger/internal/domain"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
)

// KeyKind clase de clave canónica de agrupación.
type KeyKind int

const (
	// KeyLinked la entrada tiene cliente estable.
	KeyLinked KeyKind = iota
	// KeyPhoneOnly solo hay teléfono; el grupo se fusionará al vincular.
	KeyPhoneOnly
	// KeyUnknown sin cliente ni teléfono; clave = ID de la propia entrada,
	// nunca se fusiona con nada.
	KeyUnknown
)

// GroupKey clave canónica de un grupo de fiados. Tipo suma comparable:
// usable como llave de mapa y con matching exhaustivo por Kind.
type GroupKey struct {
	Kind  KeyKind
	Value string
}

// LinkedKey clave para entradas vinculadas a un cliente.
func LinkedKey(customerID string) GroupKey {
	return GroupKey{Kind: KeyLinked, Value: customerID}
}

// PhoneKey clave para entradas solo-teléfono.
func PhoneKey(phone string) GroupKey {
	return GroupKey{Kind: KeyPhoneOnly, Value: phone}
}

// UnknownKey clave para entradas sin identidad alguna.
func UnknownKey(entryID string) GroupKey {
	return GroupKey{Kind: KeyUnknown, Value: entryID}
}

// CanonicalKey asigna la clave canónica de agrupación a una entrada.
// Función pura; debe aplicarse idéntica en todo punto donde se agrupe.
func CanonicalKey(e *entity.CreditEntry) GroupKey {
	switch {
	case e.Linked():
		return LinkedKey(*e.CustomerID)
	case e.Phone != "":
		return PhoneKey(e.Phone)
	default:
		return UnknownKey(e.ID)
	}
}

// String serializa la clave para el borde HTTP (cid:…, phone:…, entry:…).
// Solo transporte; la lógica interna trabaja con el tipo suma.
func (k GroupKey) String() string {
	switch k.Kind {
	case KeyLinked:
		return "cid:" + k.Value
	case KeyPhoneOnly:
		return "phone:" + k.Value
	default:
		return "entry:" + k.Value
	}
}

// ParseGroupKey deserializa una clave del borde HTTP.
func ParseGroupKey(s string) (GroupKey, error) {
	prefix, value, ok := strings.Cut(s, ":")
	if !ok || value == "" {
		return GroupKey{}, fmt.Errorf("clave de grupo %q: %w", s, domain.ErrInvalidInput)
	}
	switch prefix {
	case "cid":
		return LinkedKey(value), nil
	case "phone":
		return PhoneKey(value), nil
	case "entry":
		return UnknownKey(value), nil
	default:
		return GroupKey{}, fmt.Errorf("clave de grupo %q: %w", s, domain.ErrInvalidInput)
	}
}
