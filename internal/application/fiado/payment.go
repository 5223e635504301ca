package fiado

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiado-ledger/internal/domain"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/ledger"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

// ApplyPayment valida y registra un abono contra el saldo del grupo.
//
// El saldo se recalcula con lecturas FRESCAS dentro de la transacción
// serializable del almacén: la foto que tenga el caller puede estar vieja y
// no sirve como guardia. El abono entero se ancla a la entrada más antigua
// del grupo (desempate por ID); el saldo se controla por cliente, no por
// entrada, así que el ancla es solo vínculo contable.
//
// Ningún error deja escrituras parciales: o se inserta el abono completo o
// el almacén queda intacto.
func (uc *LedgerUseCase) ApplyPayment(ctx context.Context, key ledger.GroupKey, amount decimal.Decimal) (*entity.Payment, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	var payment *entity.Payment
	err := uc.txRunner.RunSerializable(ctx, func(
		credits repository.CreditRepository,
		payments repository.PaymentRepository,
	) error {
		group, err := loadGroup(credits, payments, key)
		if err != nil {
			return err
		}
		if !group.Balance.IsPositive() {
			return domain.ErrNoOutstandingBalance
		}
		if amount.GreaterThan(group.Balance) {
			return domain.ErrAmountExceedsBalance
		}

		anchor := group.OldestEntry()
		payment = &entity.Payment{
			ID:        uuid.New().String(),
			CreditID:  anchor.ID,
			Amount:    amount,
			CreatedAt: time.Now(),
		}
		if err := payments.Insert(payment); err != nil {
			return fmt.Errorf("insertar abono: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("group", key.String()).
		Str("credit_id", payment.CreditID).
		Str("amount", amount.String()).
		Msg("abono registrado")
	return payment, nil
}

// AddManualCredit registra un fiado manual (sin pedido de origen) para el
// cliente resuelto por identityQuery, creándolo si no existe.
func (uc *LedgerUseCase) AddManualCredit(ctx context.Context, identityQuery string, amount decimal.Decimal) (*entity.CreditEntry, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	customer, err := uc.EnsureCustomer(ctx, identityQuery)
	if err != nil {
		return nil, err
	}

	customerID := customer.ID
	entry := &entity.CreditEntry{
		ID:         uuid.New().String(),
		CustomerID: &customerID,
		Phone:      customer.Phone,
		Amount:     amount,
		CreatedAt:  time.Now(),
	}
	if err := uc.credits.Insert(entry); err != nil {
		return nil, fmt.Errorf("insertar fiado: %w", err)
	}
	return entry, nil
}

// loadGroup carga registros frescos del grupo con la clave dada usando los
// repos recibidos (del pool o de una transacción) y construye el agregado.
// domain.ErrNotFound si la clave no corresponde a ningún grupo actual: una
// clave solo-teléfono deja de existir cuando sus entradas fueron vinculadas.
func loadGroup(credits repository.CreditRepository, payments repository.PaymentRepository, key ledger.GroupKey) (*ledger.CustomerGroup, error) {
	var (
		entries []*entity.CreditEntry
		err     error
	)
	switch key.Kind {
	case ledger.KeyLinked:
		entries, err = credits.ListByCustomer(key.Value)
	case ledger.KeyPhoneOnly:
		entries, err = credits.ListUnlinkedByPhone(key.Value)
	default:
		var e *entity.CreditEntry
		e, err = credits.GetByID(key.Value)
		if e != nil && ledger.CanonicalKey(e) == key {
			entries = []*entity.CreditEntry{e}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("cargar fiados del grupo: %w", err)
	}
	if len(entries) == 0 {
		return nil, domain.ErrNotFound
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	pays, err := payments.ListByCreditIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("cargar abonos del grupo: %w", err)
	}

	group := ledger.FindGroup(ledger.BuildGroups(entries, pays, nil), key)
	if group == nil {
		return nil, domain.ErrNotFound
	}
	return group, nil
}
