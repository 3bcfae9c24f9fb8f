package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client é o contrato mínimo que o rate limiter precisa; mantém o redis
// atrás de uma interface para os testes usarem um contador em memória.
type Client interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type RedisClient struct {
	rdb *redis.Client
}

func NewRedisClient(addr string) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisClient{rdb: rdb}, nil
}

// Incr soma 1 na chave e arma a expiração na primeira contagem da janela.
func (c *RedisClient) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		c.rdb.Expire(ctx, key, window)
	}
	return count, nil
}
