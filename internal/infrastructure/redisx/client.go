package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Mayorista-api/pkg/config"
)

// New crea el cliente Redis y verifica conectividad con un ping corto.
func New(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
