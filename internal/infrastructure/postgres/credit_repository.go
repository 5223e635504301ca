package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

var _ repository.CreditRepository = (*CreditRepo)(nil)

// CreditRepo implementación de CreditRepository (usable con pool o tx).
type CreditRepo struct {
	q Querier
}

// NewCreditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditRepository(q Querier) *CreditRepo {
	return &CreditRepo{q: q}
}

const creditColumns = `id, customer_id, COALESCE(phone, ''), order_id, amount, created_at`

// List lista todas las entradas de fiado, más antiguas primero.
func (r *CreditRepo) List() ([]*entity.CreditEntry, error) {
	query := `SELECT ` + creditColumns + ` FROM credit_entries ORDER BY created_at, id`
	return r.scanMany(query)
}

// GetByID obtiene una entrada por ID. nil, nil si no existe.
func (r *CreditRepo) GetByID(id string) (*entity.CreditEntry, error) {
	query := `SELECT ` + creditColumns + ` FROM credit_entries WHERE id = $1`
	var e entity.CreditEntry
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.CustomerID, &e.Phone, &e.OrderID, &e.Amount, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit entry: %w", err)
	}
	return &e, nil
}

// ListByCustomer entradas vinculadas al cliente, más antiguas primero.
func (r *CreditRepo) ListByCustomer(customerID string) ([]*entity.CreditEntry, error) {
	query := `SELECT ` + creditColumns + ` FROM credit_entries
		WHERE customer_id = $1 ORDER BY created_at, id`
	return r.scanMany(query, customerID)
}

// ListUnlinkedByPhone entradas con este teléfono y sin cliente vinculado.
func (r *CreditRepo) ListUnlinkedByPhone(phone string) ([]*entity.CreditEntry, error) {
	query := `SELECT ` + creditColumns + ` FROM credit_entries
		WHERE phone = $1 AND customer_id IS NULL ORDER BY created_at, id`
	return r.scanMany(query, phone)
}

// Insert persiste una nueva entrada de fiado.
func (r *CreditRepo) Insert(entry *entity.CreditEntry) error {
	query := `
		INSERT INTO credit_entries (id, customer_id, phone, order_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.CustomerID, nullIfEmpty(entry.Phone), entry.OrderID,
		entry.Amount, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert credit entry: %w", err)
	}
	return nil
}

// LinkByPhone vincula en UN solo update condicional todas las entradas con
// este teléfono y sin cliente. La condición customer_id IS NULL en el mismo
// statement evita la carrera leer-luego-escribir entre dos vinculaciones
// concurrentes.
func (r *CreditRepo) LinkByPhone(phone, customerID string) (int64, error) {
	query := `
		UPDATE credit_entries SET customer_id = $2
		WHERE phone = $1 AND customer_id IS NULL`
	tag, err := r.q.Exec(context.Background(), query, phone, customerID)
	if err != nil {
		return 0, fmt.Errorf("link credits by phone: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *CreditRepo) scanMany(query string, args ...any) ([]*entity.CreditEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list credit entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.CreditEntry
	for rows.Next() {
		var e entity.CreditEntry
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.Phone, &e.OrderID, &e.Amount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan credit entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
