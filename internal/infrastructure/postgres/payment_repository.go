package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// ListByCreditIDs abonos que referencian cualquiera de las entradas dadas,
// más antiguos primero.
func (r *PaymentRepo) ListByCreditIDs(creditIDs []string) ([]*entity.Payment, error) {
	if len(creditIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, credit_id, amount, created_at
		FROM payments WHERE credit_id = ANY($1) ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, creditIDs)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.CreditID, &p.Amount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Insert persiste un abono. El CHECK (amount > 0) del esquema rechaza
// montos no positivos también del lado del almacén.
func (r *PaymentRepo) Insert(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, credit_id, amount, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.CreditID, payment.Amount, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}
