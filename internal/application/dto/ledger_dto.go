package dto

import "github.com/shopspring/decimal"

// GroupResponse grupo de fiados en la vista general del libro.
type GroupResponse struct {
	Key       string          `json:"key"`   // cid:… | phone:… | entry:…
	Title     string          `json:"title"` // nombre, teléfono o placeholder
	Taken     decimal.Decimal `json:"taken"`
	Paid      decimal.Decimal `json:"paid"`
	Balance   decimal.Decimal `json:"balance"` // con piso en cero para mostrar
	Anomalous bool            `json:"anomalous,omitempty"`
	Entries   int             `json:"entries"`
}

// StatementLineResponse línea del estado de cuenta (fiado o abono).
type StatementLineResponse struct {
	Type    string              `json:"type"` // debit | payment
	RefID   string              `json:"ref_id"`
	Amount  decimal.Decimal     `json:"amount"`
	At      string              `json:"at"` // RFC 3339
	OrderID string              `json:"order_id,omitempty"`
	Items   []OrderItemResponse `json:"items,omitempty"`
}

// StatementResponse estado de cuenta completo de un grupo.
type StatementResponse struct {
	Key     string                  `json:"key"`
	Title   string                  `json:"title"`
	Taken   decimal.Decimal         `json:"taken"`
	Paid    decimal.Decimal         `json:"paid"`
	Balance decimal.Decimal         `json:"balance"`
	Lines   []StatementLineResponse `json:"lines"`
}

// OrderItemResponse línea de pedido que decora un fiado.
type OrderItemResponse struct {
	ProductLabel string          `json:"product_label"`
	Qty          decimal.Decimal `json:"qty"`
	IsWeighted   bool            `json:"is_weighted,omitempty"`
}

// ApplyPaymentRequest body para POST /api/ledger/:key/payments.
type ApplyPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PaymentResponse abono registrado.
type PaymentResponse struct {
	ID       string          `json:"id"`
	CreditID string          `json:"credit_id"`
	Amount   decimal.Decimal `json:"amount"`
	At       string          `json:"at"`
}

// ManualCreditRequest body para POST /api/credits.
// Identity: teléfono normalizable o nombre libre del cliente.
type ManualCreditRequest struct {
	Identity string          `json:"identity"`
	Amount   decimal.Decimal `json:"amount"`
}

// CreditResponse fiado registrado.
type CreditResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id,omitempty"`
	Phone      string          `json:"phone,omitempty"`
	OrderID    string          `json:"order_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	At         string          `json:"at"`
}

// LinkPhoneRequest body para POST /api/customers/link.
type LinkPhoneRequest struct {
	Phone string `json:"phone"`
}

// LinkPhoneResponse resultado de la vinculación (idempotente).
type LinkPhoneResponse struct {
	Customer CustomerResponse `json:"customer"`
	Linked   int64            `json:"linked"` // filas vinculadas en esta llamada
}

// UpdateNameRequest body para PUT /api/customers/:id/name.
type UpdateNameRequest struct {
	Name string `json:"name"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}
