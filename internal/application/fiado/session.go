package fiado

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/ledger"
)

// Session sostiene la última foto cargada del libro para un consumidor con
// estado (ej. una pantalla de mostrador). Es el único objeto con estado del
// motor: las agregaciones son funciones puras sobre la foto.
//
// Contrato de consistencia: tras un write confirmado, la foto se avanza en
// memoria con el registro nuevo (la vista del caller queda consistente sin
// recargar todo); un write fallido NUNCA toca la foto.
type Session struct {
	uc   *LedgerUseCase
	snap *ledger.Snapshot
}

// NewSession crea una sesión sin foto; llamar Refresh antes de leer.
func NewSession(uc *LedgerUseCase) *Session {
	return &Session{uc: uc, snap: &ledger.Snapshot{}}
}

// Refresh recarga la foto completa desde el almacén.
func (s *Session) Refresh(ctx context.Context) error {
	snap, err := s.uc.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	s.snap = snap
	return nil
}

// Groups agrega la foto actual. No consulta el almacén.
func (s *Session) Groups() []*ledger.CustomerGroup {
	return s.snap.Groups()
}

// Statement estado de cuenta del grupo sobre la foto actual (nil si la
// clave no existe en la foto).
func (s *Session) Statement(key ledger.GroupKey) []ledger.Line {
	g := s.snap.Group(key)
	if g == nil {
		return nil
	}
	return ledger.BuildStatement(g)
}

// ApplyPayment delega en el caso de uso (que valida contra saldo fresco) y,
// solo si el almacén confirmó el write, avanza la foto con el abono nuevo.
func (s *Session) ApplyPayment(ctx context.Context, key ledger.GroupKey, amount decimal.Decimal) (*entity.Payment, error) {
	payment, err := s.uc.ApplyPayment(ctx, key, amount)
	if err != nil {
		return nil, err
	}
	s.snap.AppendPayment(payment)
	return payment, nil
}

// AddManualCredit delega en el caso de uso y avanza la foto con el fiado
// confirmado.
func (s *Session) AddManualCredit(ctx context.Context, identityQuery string, amount decimal.Decimal) (*entity.CreditEntry, error) {
	entry, err := s.uc.AddManualCredit(ctx, identityQuery, amount)
	if err != nil {
		return nil, err
	}
	s.snap.AppendEntry(entry)
	return entry, nil
}
