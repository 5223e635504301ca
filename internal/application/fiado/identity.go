package fiado

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/tu-usuario/fiado-ledger/internal/domain"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
)

// minPhoneDigits mínimo de dígitos para tratar una consulta como teléfono.
const minPhoneDigits = 7

// NormalizePhone limpia separadores comunes (espacios, guiones, paréntesis,
// puntos). Devuelve "" si tras limpiar no queda un número puro de dígitos
// con longitud mínima: un valor "con pinta de teléfono" que no valida
// numéricamente es identidad inválida, no un nombre.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.' || r == '+':
			// separadores tolerados
		default:
			return ""
		}
	}
	if b.Len() < minPhoneDigits {
		return ""
	}
	return b.String()
}

// looksLikePhone la consulta contiene dígitos, así que se interpreta como
// teléfono (y debe validar como tal) en lugar de como nombre.
func looksLikePhone(q string) bool {
	return strings.ContainsFunc(q, unicode.IsDigit)
}

// EnsureCustomer resuelve una consulta (teléfono normalizable o nombre
// libre) a un cliente existente, o lo crea. Coincidencia: teléfono exacto o
// nombre exacto sin distinguir mayúsculas.
func (uc *LedgerUseCase) EnsureCustomer(ctx context.Context, query string) (*entity.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidIdentity
	}

	if looksLikePhone(query) {
		phone := NormalizePhone(query)
		if phone == "" {
			return nil, domain.ErrInvalidIdentity
		}
		return uc.ensureByPhone(ctx, phone, entity.PlaceholderName)
	}

	existing, err := uc.customers.FindByName(query)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente por nombre: %w", err)
	}
	if existing != nil {
		return existing, nil
	}
	return uc.createCustomer(query, "")
}

// LinkPhoneToCustomer resuelve (o crea) el cliente con este teléfono y
// vincula en un solo update condicional todas las entradas solo-teléfono que
// lo comparten. Idempotente: la segunda llamada no cambia nada y devuelve el
// mismo cliente.
func (uc *LedgerUseCase) LinkPhoneToCustomer(ctx context.Context, rawPhone string) (*entity.Customer, int64, error) {
	phone := NormalizePhone(rawPhone)
	if phone == "" {
		return nil, 0, domain.ErrInvalidIdentity
	}

	customer, err := uc.ensureByPhone(ctx, phone, entity.PlaceholderName)
	if err != nil {
		return nil, 0, err
	}

	linked, err := uc.credits.LinkByPhone(phone, customer.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("vincular fiados por teléfono: %w", err)
	}
	if linked > 0 {
		uc.log.Info().
			Str("customer_id", customer.ID).
			Int64("linked", linked).
			Msg("fiados solo-teléfono vinculados a cliente")
	}
	return customer, linked, nil
}

// UpdateCustomerName asigna el nombre real a un cliente (len >= 2).
func (uc *LedgerUseCase) UpdateCustomerName(ctx context.Context, id, name string) (*entity.Customer, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.customers.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrCustomerNotFound
	}
	updated, err := uc.customers.UpdateName(id, name)
	if err != nil {
		return nil, fmt.Errorf("actualizar nombre: %w", err)
	}
	return updated, nil
}

// ensureByPhone busca por teléfono exacto o crea un cliente placeholder.
// La unicidad la garantiza el índice único del almacén: si dos llamadas
// concurrentes intentan crear el mismo teléfono, una recibe ErrDuplicate y
// relee al ganador en vez de duplicar el cliente.
func (uc *LedgerUseCase) ensureByPhone(ctx context.Context, phone, name string) (*entity.Customer, error) {
	existing, err := uc.customers.FindByPhone(phone)
	if err != nil {
		return nil, fmt.Errorf("buscar cliente por teléfono: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	customer, err := uc.createCustomer(name, phone)
	if errors.Is(err, domain.ErrDuplicate) {
		// Carrera de creación: otro actor ganó el índice único; releer.
		winner, ferr := uc.customers.FindByPhone(phone)
		if ferr != nil {
			return nil, fmt.Errorf("releer cliente tras conflicto: %w", ferr)
		}
		if winner == nil {
			return nil, domain.ErrCustomerNotFound
		}
		return winner, nil
	}
	return customer, err
}

func (uc *LedgerUseCase) createCustomer(name, phone string) (*entity.Customer, error) {
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customers.Create(customer); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("crear cliente: %w", err)
	}
	return customer, nil
}
