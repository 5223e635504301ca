package repository

import "github.com/tu-usuario/fiado-ledger/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
// Los clientes nunca se borran desde este núcleo.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// FindByPhone coincidencia exacta de teléfono. nil, nil si no existe.
	FindByPhone(phone string) (*entity.Customer, error)
	// FindByName coincidencia exacta sin distinguir mayúsculas. nil, nil si no existe.
	FindByName(name string) (*entity.Customer, error)
	// UpdateName actualiza solo el nombre (la validación len >= 2 es del caso de uso).
	UpdateName(id, name string) (*entity.Customer, error)
	List() ([]*entity.Customer, error)
}
