package repository

import "github.com/tu-usuario/fiado-ledger/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para Payment.
// Los abonos son inmutables y nunca se borran.
type PaymentRepository interface {
	// ListByCreditIDs abonos que referencian cualquiera de las entradas dadas.
	ListByCreditIDs(creditIDs []string) ([]*entity.Payment, error)
	Insert(payment *entity.Payment) error
}
