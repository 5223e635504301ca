package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrInvalidAmount        = errors.New("monto inválido")
	ErrInvalidIdentity      = errors.New("identidad inválida")
	ErrNoOutstandingBalance = errors.New("el cliente no tiene saldo pendiente")
	ErrAmountExceedsBalance = errors.New("el monto excede el saldo pendiente")
	ErrCustomerNotFound     = errors.New("cliente no encontrado")
	ErrStoreUnavailable     = errors.New("almacén de datos no disponible")
)
