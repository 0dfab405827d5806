package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

// Producer productor asíncrono con buzón en memoria: Publish encola sin
// bloquear el request y una goroutine escribe al broker. Con el buzón lleno el
// mensaje se descarta (los eventos de pedido son best-effort, la fuente de
// verdad es Postgres).
type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
	log     *logger.Logger
}

// NewProducer crea el productor para topic. buf dimensiona el buzón en memoria.
func NewProducer(brokers []string, topic string, buf int, log *logger.Logger) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{}, // misma key (order_id) -> misma partición, orden por pedido
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
		log:     log,
	}
}

// Start lanza la goroutine de escritura. Al cancelar ctx vacía el buzón
// pendiente antes de cerrar el writer.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for {
			select {
			case <-ctx.Done():
				close(p.inbox)
				for m := range p.inbox {
					p.write(m)
				}
				_ = p.w.Close()
				return
			case m, ok := <-p.inbox:
				if !ok {
					_ = p.w.Close()
					return
				}
				p.write(m)
			}
		}
	}()
}

func (p *Producer) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		p.log.Warn().Err(err).Str("key", string(m.Key)).Msg("no se pudo publicar mensaje en kafka")
	}
}

// Publish encola un mensaje; no bloquea, descarta si el buzón está lleno.
func (p *Producer) Publish(key, value []byte, headers ...kafka.Header) {
	m := kafka.Message{
		Key:     key,
		Value:   value,
		Time:    time.Now(),
		Headers: headers,
	}
	select {
	case p.inbox <- m:
	default:
		p.log.Warn().Str("key", string(key)).Msg("buzón kafka lleno, evento descartado")
	}
}

// WaitClosed espera a que la goroutine termine de vaciar el buzón.
func (p *Producer) WaitClosed() { <-p.closeCh }
