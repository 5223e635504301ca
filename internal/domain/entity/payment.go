package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment representa un abono del cliente. Referencia exactamente un
// CreditEntry como ancla contable; la corrección del saldo se controla a
// nivel de grupo de cliente, no por entrada.
type Payment struct {
	ID        string
	CreditID  string
	Amount    decimal.Decimal // > 0
	CreatedAt time.Time
}
