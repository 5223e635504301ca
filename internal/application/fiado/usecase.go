package fiado

import (
	"context"
	"fmt"

	"github.com/tu-usuario/fiado-ledger/internal/application/dto"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/ledger"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
	"github.com/tu-usuario/fiado-ledger/pkg/logger"
)

// LedgerUseCase casos de uso del libro de fiados: vista general, estado de
// cuenta, abonos, fiados manuales y reconciliación de identidad.
//
// Toda la lógica de agregación es pura (internal/domain/ledger); aquí solo
// se cargan registros frescos, se invocan las funciones puras y se escribe a
// través de los puertos de persistencia.
type LedgerUseCase struct {
	customers  repository.CustomerRepository
	credits    repository.CreditRepository
	payments   repository.PaymentRepository
	orderItems repository.OrderItemRepository
	txRunner   LedgerTxRunner
	log        *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	customers repository.CustomerRepository,
	credits repository.CreditRepository,
	payments repository.PaymentRepository,
	orderItems repository.OrderItemRepository,
	txRunner LedgerTxRunner,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		customers:  customers,
		credits:    credits,
		payments:   payments,
		orderItems: orderItems,
		txRunner:   txRunner,
		log:        log,
	}
}

// LoadSnapshot carga una foto fresca de todos los registros del libro.
func (uc *LedgerUseCase) LoadSnapshot(ctx context.Context) (*ledger.Snapshot, error) {
	entries, err := uc.credits.List()
	if err != nil {
		return nil, fmt.Errorf("listar fiados: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	pays, err := uc.payments.ListByCreditIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("listar abonos: %w", err)
	}
	custs, err := uc.customers.List()
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	return &ledger.Snapshot{Entries: entries, Payments: pays, Customers: custs}, nil
}

// Overview agrega todos los grupos del libro para la vista general.
// Un grupo con paid > taken se registra como anomalía de integridad y se
// muestra con saldo piso cero, nunca negativo.
func (uc *LedgerUseCase) Overview(ctx context.Context) ([]dto.GroupResponse, error) {
	snap, err := uc.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	groups := snap.Groups()
	out := make([]dto.GroupResponse, 0, len(groups))
	for _, g := range groups {
		if g.Anomalous() {
			uc.log.Warn().
				Str("group", g.Key.String()).
				Str("taken", g.Taken.String()).
				Str("paid", g.Paid.String()).
				Msg("anomalía de integridad: abonos superan lo fiado")
		}
		out = append(out, toGroupResponse(g))
	}
	return out, nil
}

// ListCustomers lista los clientes conocidos.
func (uc *LedgerUseCase) ListCustomers(ctx context.Context) ([]dto.CustomerResponse, error) {
	custs, err := uc.customers.List()
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	out := make([]dto.CustomerResponse, 0, len(custs))
	for _, c := range custs {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

func toGroupResponse(g *ledger.CustomerGroup) dto.GroupResponse {
	return dto.GroupResponse{
		Key:       g.Key.String(),
		Title:     g.Title,
		Taken:     g.Taken,
		Paid:      g.Paid,
		Balance:   g.DisplayBalance(),
		Anomalous: g.Anomalous(),
		Entries:   len(g.Entries),
	}
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{ID: c.ID, Name: c.Name, Phone: c.Phone}
}
