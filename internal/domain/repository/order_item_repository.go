package repository

import "github.com/tu-usuario/fiado-ledger/internal/domain/entity"

// OrderItemRepository puerto de solo lectura hacia el almacén externo de
// líneas de pedido. Solo se usa para decorar el estado de cuenta.
type OrderItemRepository interface {
	ListByOrderIDs(orderIDs []string) ([]*entity.OrderItem, error)
}
