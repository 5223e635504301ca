package fiado

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/fiado-ledger/internal/application/dto"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/ledger"
)

// Statement construye el estado de cuenta cronológico de un grupo. Los
// ítems de pedido solo se leen del almacén externo cuando expandItems es
// true (decoración perezosa: el listado general nunca paga ese costo).
func (uc *LedgerUseCase) Statement(ctx context.Context, key ledger.GroupKey, expandItems bool) (*dto.StatementResponse, error) {
	group, err := loadGroup(uc.credits, uc.payments, key)
	if err != nil {
		return nil, err
	}
	if key.Kind == ledger.KeyLinked {
		// El título del agregado necesita el nombre del cliente.
		if c, cerr := uc.customers.GetByID(key.Value); cerr == nil && c != nil && c.HasName() {
			group.Title = c.Name
		}
	}
	if group.Anomalous() {
		uc.log.Warn().
			Str("group", key.String()).
			Str("taken", group.Taken.String()).
			Str("paid", group.Paid.String()).
			Msg("anomalía de integridad: abonos superan lo fiado")
	}

	lines := ledger.BuildStatement(group)

	var itemsByOrder map[string][]*entity.OrderItem
	if expandItems {
		orderIDs := ledger.OrderIDs(lines)
		if len(orderIDs) > 0 {
			items, err := uc.orderItems.ListByOrderIDs(orderIDs)
			if err != nil {
				return nil, fmt.Errorf("cargar ítems de pedidos: %w", err)
			}
			itemsByOrder = make(map[string][]*entity.OrderItem)
			for _, it := range items {
				itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], it)
			}
		}
	}

	out := &dto.StatementResponse{
		Key:     key.String(),
		Title:   group.Title,
		Taken:   group.Taken,
		Paid:    group.Paid,
		Balance: group.DisplayBalance(),
		Lines:   make([]dto.StatementLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		lr := dto.StatementLineResponse{
			Type:   l.Type,
			RefID:  l.RefID,
			Amount: l.Amount,
			At:     l.At.Format(time.RFC3339),
		}
		if l.OrderID != nil {
			lr.OrderID = *l.OrderID
			for _, it := range itemsByOrder[*l.OrderID] {
				lr.Items = append(lr.Items, dto.OrderItemResponse{
					ProductLabel: it.ProductLabel,
					Qty:          it.Qty,
					IsWeighted:   it.IsWeighted,
				})
			}
		}
		out.Lines = append(out.Lines, lr)
	}
	return out, nil
}
