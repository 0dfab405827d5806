package orders

import (
	"context"

	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de pedidos:
// o todas las líneas reservan stock y el pedido se persiste, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		skuRepo repository.SKURepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// EventPublisher publica eventos de dominio después del commit (best-effort,
// nunca bloquea ni falla la operación de negocio).
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev OrderEvent)
}

// IdempotencyStore asocia el external_id del cliente con el pedido creado,
// para que repetir la misma petición devuelva el mismo pedido en vez de
// reservar stock dos veces.
type IdempotencyStore interface {
	GetOrderID(ctx context.Context, externalID string) (orderID string, found bool, err error)
	SaveOrderID(ctx context.Context, externalID, orderID string) error
}

// StatusCache cache de estado de pedido con TTL corto (lecturas de polling).
type StatusCache interface {
	SetStatus(ctx context.Context, orderID, status string)
	GetStatus(ctx context.Context, orderID string) (status string, found bool)
}
