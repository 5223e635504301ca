package repository

import "github.com/tu-usuario/fiado-ledger/internal/domain/entity"

// CreditRepository define el puerto de persistencia para CreditEntry.
// Las entradas son inmutables salvo el vínculo de cliente (LinkByPhone).
type CreditRepository interface {
	List() ([]*entity.CreditEntry, error)
	GetByID(id string) (*entity.CreditEntry, error)
	ListByCustomer(customerID string) ([]*entity.CreditEntry, error)
	// ListUnlinkedByPhone entradas con este teléfono y sin cliente vinculado.
	ListUnlinkedByPhone(phone string) ([]*entity.CreditEntry, error)
	Insert(entry *entity.CreditEntry) error
	// LinkByPhone vincula en UN solo update condicional todas las entradas con
	// este teléfono y sin cliente. Devuelve cuántas filas cambió. Atómico:
	// nunca leer-y-escribir en bucle (dos vinculaciones concurrentes no deben
	// duplicar ni perder vínculos).
	LinkByPhone(phone, customerID string) (int64, error)
}
