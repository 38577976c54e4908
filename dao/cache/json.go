package cache

import (
	"clipchain/pkg/log"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// jsonCache redis 为 nil 时所有读取都视为未命中，写入直接忽略
type jsonCache[T any] struct {
	redis  *redis.Client
	prefix string
	ttl    time.Duration
}

func (c *jsonCache[T]) key(k string) string {
	return c.prefix + k
}

func (c *jsonCache[T]) get(ctx context.Context, k string) (*T, bool) {
	if c.redis == nil {
		return nil, false
	}
	raw, err := c.redis.Get(ctx, c.key(k)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.L.Warn("cache get failed", zap.String("key", c.key(k)), zap.Error(err))
		}
		return nil, false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return &v, true
}

func (c *jsonCache[T]) set(ctx context.Context, k string, v *T) {
	if c.redis == nil || v == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, c.key(k), raw, c.ttl).Err(); err != nil {
		log.L.Warn("cache set failed", zap.String("key", c.key(k)), zap.Error(err))
	}
}

func (c *jsonCache[T]) del(ctx context.Context, k string) {
	if c.redis == nil {
		return
	}
	c.redis.Del(ctx, c.key(k))
}
