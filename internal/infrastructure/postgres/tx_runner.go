package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/fiado-ledger/internal/application/fiado"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

// Ensure TxRunner implements fiado.LedgerTxRunner.
var _ fiado.LedgerTxRunner = (*TxRunner)(nil)

// maxSerializableRetries reintentos ante 40001 (conflicto de serialización).
const maxSerializableRetries = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSerializable ejecuta fn en una transacción SERIALIZABLE con repos
// atados a la tx, y hace Commit o Rollback. Este es el invariante del lado
// del almacén para "leer saldo + insertar abono" como unidad: el chequeo en
// el caso de uso es solo guardia rápida. Ante un conflicto de serialización
// (40001) reintenta la transacción completa, por lo que fn debe releer todo
// lo que valida.
func (r *TxRunner) RunSerializable(ctx context.Context, fn func(
	credits repository.CreditRepository,
	payments repository.PaymentRepository,
) error) error {
	var lastErr error
	for attempt := 0; attempt < maxSerializableRetries; attempt++ {
		lastErr = r.runOnce(ctx, fn)
		if lastErr == nil || !isSerializationFailure(lastErr) {
			return lastErr
		}
	}
	return fmt.Errorf("transacción serializable agotó reintentos: %w", lastErr)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	credits repository.CreditRepository,
	payments repository.PaymentRepository,
) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	creditRepo := NewCreditRepository(tx)
	paymentRepo := NewPaymentRepository(tx)

	if err := fn(creditRepo, paymentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
