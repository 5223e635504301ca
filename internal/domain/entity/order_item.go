package entity

import "github.com/shopspring/decimal"

// OrderItem línea de un pedido, leída del almacén externo de pedidos.
// Solo se usa para decorar el estado de cuenta; este núcleo nunca la escribe.
type OrderItem struct {
	OrderID      string
	ProductLabel string
	Qty          decimal.Decimal
	IsWeighted   bool // productos pesados (kg) vs. por unidad
}
