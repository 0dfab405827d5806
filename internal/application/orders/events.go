package orders

import (
	"time"

	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

// Tipos de evento de pedido publicados tras el commit.
const (
	EventOrderCreated   = "order.created"
	EventOrderCancelled = "order.cancelled"
)

// OrderEventItem línea mínima del evento: qué SKU y cuántas unidades.
type OrderEventItem struct {
	SKUID    string `json:"sku_id"`
	Quantity int64  `json:"quantity"`
}

// OrderEvent evento de dominio serializable (JSON) para el bus de eventos.
type OrderEvent struct {
	Type       string           `json:"type"`
	OrderID    string           `json:"order_id"`
	CompanyID  string           `json:"company_id"`
	Status     string           `json:"status"`
	Total      string           `json:"total"`
	Items      []OrderEventItem `json:"items"`
	OccurredAt time.Time        `json:"occurred_at"`
}

func newOrderEvent(eventType string, order *entity.Order, items []*entity.OrderItem) OrderEvent {
	ev := OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		CompanyID:  order.CompanyID,
		Status:     order.Status,
		Total:      order.Total.StringFixed(2),
		OccurredAt: time.Now(),
	}
	for _, it := range items {
		ev.Items = append(ev.Items, OrderEventItem{SKUID: it.SKUID, Quantity: it.Quantity})
	}
	return ev
}
