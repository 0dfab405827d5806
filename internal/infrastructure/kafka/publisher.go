package kafka

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/jhoicas/Mayorista-api/internal/application/orders"
	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

// EventPublisher adapta el Producer al puerto de eventos del motor de pedidos.
type EventPublisher struct {
	producer *Producer
	log      *logger.Logger
}

var _ orders.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher construye el publicador de eventos de pedido.
func NewEventPublisher(producer *Producer, log *logger.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, log: log}
}

// PublishOrderEvent serializa el evento y lo encola con key=order_id para
// preservar el orden por pedido. Best-effort: nunca falla la operación de negocio.
func (p *EventPublisher) PublishOrderEvent(ctx context.Context, ev orders.OrderEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn().Err(err).Str("order_id", ev.OrderID).Msg("no se pudo serializar evento de pedido")
		return
	}
	p.producer.Publish(
		[]byte(ev.OrderID),
		payload,
		kafkago.Header{Key: "event_type", Value: []byte(ev.Type)},
	)
}
