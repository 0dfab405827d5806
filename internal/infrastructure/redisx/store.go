package redisx

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Mayorista-api/internal/application/orders"
	"github.com/jhoicas/Mayorista-api/pkg/logger"
)

// Store implementa la idempotencia por external_id y el cache de estado de
// pedido sobre Redis. Ambos usos son best-effort: un Redis caído degrada a
// "sin idempotencia" y "sin cache", nunca tumba la colocación de pedidos.
type Store struct {
	rdb *redis.Client
	log *logger.Logger
}

var (
	_ orders.IdempotencyStore = (*Store)(nil)
	_ orders.StatusCache      = (*Store)(nil)
)

// NewStore construye el store de idempotencia/cache.
func NewStore(rdb *redis.Client, log *logger.Logger) *Store {
	return &Store{rdb: rdb, log: log}
}

// GetOrderID busca el pedido asociado a un external_id ya procesado.
func (s *Store) GetOrderID(ctx context.Context, externalID string) (string, bool, error) {
	orderID, err := s.rdb.Get(ctx, fmt.Sprintf(KeyIdemOrderCreate, externalID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return orderID, true, nil
}

// SaveOrderID registra el external_id -> order_id con TTL. SetNX: el primer
// escritor gana, una repetición concurrente no sobreescribe el mapeo.
func (s *Store) SaveOrderID(ctx context.Context, externalID, orderID string) error {
	return s.rdb.SetNX(ctx, fmt.Sprintf(KeyIdemOrderCreate, externalID), orderID, TTLIdempotency).Err()
}

// SetStatus cachea el estado del pedido con TTL corto para lecturas de polling.
func (s *Store) SetStatus(ctx context.Context, orderID, status string) {
	if err := s.rdb.Set(ctx, fmt.Sprintf(KeyOrderStatus, orderID), status, TTLStatusCache).Err(); err != nil {
		s.log.Warn().Err(err).Str("order_id", orderID).Msg("no se pudo cachear estado de pedido")
	}
}

// GetStatus lee el estado cacheado; found=false si expiró o no existe.
func (s *Store) GetStatus(ctx context.Context, orderID string) (string, bool) {
	status, err := s.rdb.Get(ctx, fmt.Sprintf(KeyOrderStatus, orderID)).Result()
	if err != nil {
		return "", false
	}
	return status, true
}
