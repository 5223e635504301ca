package entity

import "time"

// PlaceholderName nombre usado cuando el cliente se crea solo con teléfono
// (fiado registrado antes de conocer el nombre).
const PlaceholderName = "Cliente sin nombre"

// Customer representa un cliente con fiado (crédito de tienda).
// El teléfono es opcional pero único cuando está presente.
type Customer struct {
	ID        string
	Name      string // puede ser PlaceholderName
	Phone     string // "" = sin teléfono
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasName indica si el cliente tiene un nombre real (no placeholder).
func (c *Customer) HasName() bool {
	return c.Name != "" && c.Name != PlaceholderName
}
