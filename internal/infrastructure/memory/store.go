// Package memory implementa la pasarela de persistencia en memoria:
// doble de prueba de los adaptadores postgres y almacén para desarrollo.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tu-usuario/fiado-ledger/internal/application/fiado"
	"github.com/tu-usuario/fiado-ledger/internal/domain"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

// Ensure Store satisface todos los puertos de la pasarela.
var (
	_ repository.CustomerRepository  = (*customerView)(nil)
	_ repository.CreditRepository    = (*creditView)(nil)
	_ repository.PaymentRepository   = (*paymentView)(nil)
	_ repository.OrderItemRepository = (*orderItemView)(nil)
	_ fiado.LedgerTxRunner           = (*Store)(nil)
)

// Store almacén en memoria. Todas las operaciones copian al entrar y salir:
// el caller nunca comparte punteros con el almacén, igual que con una base
// real. Un solo mutex serializa lectores y escritores, de modo que
// RunSerializable obtiene la misma garantía que una transacción
// SERIALIZABLE: chequear-y-actuar bajo el lock es atómico.
type Store struct {
	mu         sync.Mutex
	customers  map[string]entity.Customer
	credits    map[string]entity.CreditEntry
	payments   map[string]entity.Payment
	orderItems []entity.OrderItem
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		customers: make(map[string]entity.Customer),
		credits:   make(map[string]entity.CreditEntry),
		payments:  make(map[string]entity.Payment),
	}
}

// Customers vista CustomerRepository sobre el almacén.
func (s *Store) Customers() repository.CustomerRepository { return &customerView{s} }

// Credits vista CreditRepository sobre el almacén.
func (s *Store) Credits() repository.CreditRepository { return &creditView{s} }

// Payments vista PaymentRepository sobre el almacén.
func (s *Store) Payments() repository.PaymentRepository { return &paymentView{s} }

// OrderItems vista OrderItemRepository sobre el almacén.
func (s *Store) OrderItems() repository.OrderItemRepository { return &orderItemView{s} }

// SeedOrderItems carga líneas de pedido (el almacén externo de pedidos es
// de solo lectura para el núcleo; esto existe para tests y desarrollo).
func (s *Store) SeedOrderItems(items ...entity.OrderItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderItems = append(s.orderItems, items...)
}

// RunSerializable ejecuta fn bajo el lock del almacén con vistas staging:
// las escrituras de fn se acumulan aparte y solo se aplican si fn retorna
// nil. Un error descarta el staging completo (sin escrituras parciales).
func (s *Store) RunSerializable(ctx context.Context, fn func(
	credits repository.CreditRepository,
	payments repository.PaymentRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &staging{
		store:    s,
		credits:  make(map[string]entity.CreditEntry),
		payments: make(map[string]entity.Payment),
	}
	if err := fn(&txCreditView{tx}, &txPaymentView{tx}); err != nil {
		return err
	}
	for id, e := range tx.credits {
		s.credits[id] = e
	}
	for id, p := range tx.payments {
		s.payments[id] = p
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas internas (requieren lock tomado)
// ──────────────────────────────────────────────────────────────────────────────

func (s *Store) creditsLocked(match func(*entity.CreditEntry) bool) []*entity.CreditEntry {
	var list []*entity.CreditEntry
	for _, e := range s.credits {
		e := e
		if match(&e) {
			list = append(list, &e)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func (s *Store) paymentsLocked(creditIDs []string) []*entity.Payment {
	wanted := make(map[string]bool, len(creditIDs))
	for _, id := range creditIDs {
		wanted[id] = true
	}
	var list []*entity.Payment
	for _, p := range s.payments {
		p := p
		if wanted[p.CreditID] {
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// ──────────────────────────────────────────────────────────────────────────────
// Vistas con lock propio (uso fuera de transacción)
// ──────────────────────────────────────────────────────────────────────────────

type customerView struct{ s *Store }

func (v *customerView) Create(c *entity.Customer) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if c.Phone != "" {
		for _, existing := range v.s.customers {
			if existing.Phone == c.Phone {
				return domain.ErrDuplicate
			}
		}
	}
	if _, ok := v.s.customers[c.ID]; ok {
		return domain.ErrDuplicate
	}
	v.s.customers[c.ID] = *c
	return nil
}

func (v *customerView) GetByID(id string) (*entity.Customer, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if c, ok := v.s.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (v *customerView) FindByPhone(phone string) (*entity.Customer, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, c := range v.s.customers {
		if c.Phone != "" && c.Phone == phone {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (v *customerView) FindByName(name string) (*entity.Customer, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, c := range v.s.customers {
		if strings.EqualFold(c.Name, name) {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (v *customerView) UpdateName(id, name string) (*entity.Customer, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	c, ok := v.s.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	c.Name = name
	v.s.customers[id] = c
	return &c, nil
}

func (v *customerView) List() ([]*entity.Customer, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var list []*entity.Customer
	for _, c := range v.s.customers {
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

type creditView struct{ s *Store }

func (v *creditView) List() ([]*entity.CreditEntry, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.creditsLocked(func(*entity.CreditEntry) bool { return true }), nil
}

func (v *creditView) GetByID(id string) (*entity.CreditEntry, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if e, ok := v.s.credits[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (v *creditView) ListByCustomer(customerID string) ([]*entity.CreditEntry, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.creditsLocked(func(e *entity.CreditEntry) bool {
		return e.Linked() && *e.CustomerID == customerID
	}), nil
}

func (v *creditView) ListUnlinkedByPhone(phone string) ([]*entity.CreditEntry, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.creditsLocked(func(e *entity.CreditEntry) bool {
		return !e.Linked() && e.Phone == phone
	}), nil
}

func (v *creditView) Insert(entry *entity.CreditEntry) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.credits[entry.ID]; ok {
		return domain.ErrDuplicate
	}
	v.s.credits[entry.ID] = *entry
	return nil
}

// LinkByPhone vincula todas las entradas solo-teléfono bajo UN solo lock:
// equivalente en memoria del update condicional atómico.
func (v *creditView) LinkByPhone(phone, customerID string) (int64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var count int64
	for id, e := range v.s.credits {
		if !e.Linked() && e.Phone == phone {
			cid := customerID
			e.CustomerID = &cid
			v.s.credits[id] = e
			count++
		}
	}
	return count, nil
}

type paymentView struct{ s *Store }

func (v *paymentView) ListByCreditIDs(creditIDs []string) ([]*entity.Payment, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.paymentsLocked(creditIDs), nil
}

func (v *paymentView) Insert(payment *entity.Payment) error {
	if !payment.Amount.IsPositive() {
		// Mismo CHECK que el esquema postgres: el almacén también rechaza.
		return domain.ErrInvalidAmount
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.payments[payment.ID]; ok {
		return domain.ErrDuplicate
	}
	v.s.payments[payment.ID] = *payment
	return nil
}

type orderItemView struct{ s *Store }

func (v *orderItemView) ListByOrderIDs(orderIDs []string) ([]*entity.OrderItem, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	wanted := make(map[string]bool, len(orderIDs))
	for _, id := range orderIDs {
		wanted[id] = true
	}
	var list []*entity.OrderItem
	for _, it := range v.s.orderItems {
		it := it
		if wanted[it.OrderID] {
			list = append(list, &it)
		}
	}
	return list, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Vistas transaccionales (lock ya tomado por RunSerializable; staging aparte)
// ──────────────────────────────────────────────────────────────────────────────

type staging struct {
	store    *Store
	credits  map[string]entity.CreditEntry
	payments map[string]entity.Payment
}

func (tx *staging) creditAt(id string) (entity.CreditEntry, bool) {
	if e, ok := tx.credits[id]; ok {
		return e, true
	}
	e, ok := tx.store.credits[id]
	return e, ok
}

type txCreditView struct{ tx *staging }

func (v *txCreditView) List() ([]*entity.CreditEntry, error) {
	return v.merged(func(*entity.CreditEntry) bool { return true }), nil
}

func (v *txCreditView) GetByID(id string) (*entity.CreditEntry, error) {
	if e, ok := v.tx.creditAt(id); ok {
		return &e, nil
	}
	return nil, nil
}

func (v *txCreditView) ListByCustomer(customerID string) ([]*entity.CreditEntry, error) {
	return v.merged(func(e *entity.CreditEntry) bool {
		return e.Linked() && *e.CustomerID == customerID
	}), nil
}

func (v *txCreditView) ListUnlinkedByPhone(phone string) ([]*entity.CreditEntry, error) {
	return v.merged(func(e *entity.CreditEntry) bool {
		return !e.Linked() && e.Phone == phone
	}), nil
}

func (v *txCreditView) Insert(entry *entity.CreditEntry) error {
	if _, ok := v.tx.creditAt(entry.ID); ok {
		return domain.ErrDuplicate
	}
	v.tx.credits[entry.ID] = *entry
	return nil
}

func (v *txCreditView) LinkByPhone(phone, customerID string) (int64, error) {
	var count int64
	for _, e := range v.merged(func(e *entity.CreditEntry) bool {
		return !e.Linked() && e.Phone == phone
	}) {
		cid := customerID
		linked := *e
		linked.CustomerID = &cid
		v.tx.credits[linked.ID] = linked
		count++
	}
	return count, nil
}

func (v *txCreditView) merged(match func(*entity.CreditEntry) bool) []*entity.CreditEntry {
	seen := make(map[string]bool)
	var list []*entity.CreditEntry
	collect := func(src map[string]entity.CreditEntry) {
		for id, e := range src {
			if seen[id] {
				continue
			}
			seen[id] = true
			e := e
			if match(&e) {
				list = append(list, &e)
			}
		}
	}
	collect(v.tx.credits)
	collect(v.tx.store.credits)
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

type txPaymentView struct{ tx *staging }

func (v *txPaymentView) ListByCreditIDs(creditIDs []string) ([]*entity.Payment, error) {
	wanted := make(map[string]bool, len(creditIDs))
	for _, id := range creditIDs {
		wanted[id] = true
	}
	seen := make(map[string]bool)
	var list []*entity.Payment
	collect := func(src map[string]entity.Payment) {
		for id, p := range src {
			if seen[id] {
				continue
			}
			seen[id] = true
			p := p
			if wanted[p.CreditID] {
				list = append(list, &p)
			}
		}
	}
	collect(v.tx.payments)
	collect(v.tx.store.payments)
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (v *txPaymentView) Insert(payment *entity.Payment) error {
	if !payment.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if _, ok := v.tx.payments[payment.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := v.tx.store.payments[payment.ID]; ok {
		return domain.ErrDuplicate
	}
	v.tx.payments[payment.ID] = *payment
	return nil
}

