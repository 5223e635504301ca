package fiado

import (
	"context"

	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

// LedgerTxRunner ejecuta fn dentro de una transacción serializable del
// almacén, con repos atados a la transacción. Es la frontera de corrección
// del asignador de abonos: la validación saldo-antes-de-insertar del caso de
// uso es solo guardia rápida de UX; el invariante real lo garantiza el
// almacén al ejecutar lectura-de-saldo + insert como una unidad.
type LedgerTxRunner interface {
	RunSerializable(ctx context.Context, fn func(
		credits repository.CreditRepository,
		payments repository.PaymentRepository,
	) error) error
}
