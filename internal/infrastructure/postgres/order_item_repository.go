package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

var _ repository.OrderItemRepository = (*OrderItemRepo)(nil)

// OrderItemRepo adaptador de SOLO lectura hacia la tabla de líneas de
// pedido del subsistema de pedidos. Este núcleo nunca escribe aquí.
type OrderItemRepo struct {
	q Querier
}

// NewOrderItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderItemRepository(q Querier) *OrderItemRepo {
	return &OrderItemRepo{q: q}
}

// ListByOrderIDs líneas de los pedidos dados, en una sola consulta.
func (r *OrderItemRepo) ListByOrderIDs(orderIDs []string) ([]*entity.OrderItem, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT order_id, product_label, qty, is_weighted
		FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, product_label`
	rows, err := r.q.Query(context.Background(), query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.OrderID, &it.ProductLabel, &it.Qty, &it.IsWeighted); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
