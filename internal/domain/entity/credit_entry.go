package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditEntry representa un fiado: dinero entregado a crédito a un cliente.
// Inmutable una vez creado, salvo CustomerID, que puede poblarse después
// cuando un registro solo-teléfono se vincula a un cliente estable.
type CreditEntry struct {
	ID         string
	CustomerID *string // nil = aún sin vincular
	Phone      string  // teléfono crudo capturado al fiar ("" = ninguno)
	OrderID    *string // pedido de origen, si el fiado nació de un pedido
	Amount     decimal.Decimal // >= 0
	CreatedAt  time.Time
}

// Linked indica si la entrada ya está vinculada a un cliente estable.
func (e *CreditEntry) Linked() bool {
	return e.CustomerID != nil && *e.CustomerID != ""
}
