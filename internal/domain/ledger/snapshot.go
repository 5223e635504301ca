package ledger

import "github.com/tu-usuario/fiado-ledger/internal/domain/entity"

// Snapshot última foto cargada de los registros crudos. Todo el estado del
// motor vive aquí de forma explícita; las funciones puras (BuildGroups,
// BuildStatement) operan sobre la foto, nunca sobre estado ambiente.
type Snapshot struct {
	Entries   []*entity.CreditEntry
	Payments  []*entity.Payment
	Customers []*entity.Customer
}

// Groups agrega la foto en grupos por clave canónica.
func (s *Snapshot) Groups() []*CustomerGroup {
	return BuildGroups(s.Entries, s.Payments, s.Customers)
}

// Group agrega y devuelve solo el grupo con la clave dada (nil si no existe).
func (s *Snapshot) Group(key GroupKey) *CustomerGroup {
	return FindGroup(s.Groups(), key)
}

// AppendPayment avanza la foto con un abono ya confirmado por el almacén.
// Contrato: llamar solo DESPUÉS de un write exitoso; nunca de forma
// optimista (ver ApplyPayment en la capa de aplicación).
func (s *Snapshot) AppendPayment(p *entity.Payment) {
	s.Payments = append(s.Payments, p)
}

// AppendEntry avanza la foto con un fiado ya confirmado por el almacén.
func (s *Snapshot) AppendEntry(e *entity.CreditEntry) {
	s.Entries = append(s.Entries, e)
}
