package client

import (
	"clipchain/config"
	"clipchain/pkg/log"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient 未配置 redis 时返回 nil，缓存层会直接穿透
func NewRedisClient(conf *config.Config) *redis.Client {
	if conf.Redis == nil {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr(),
		Password: conf.Redis.Password,
		Username: conf.Redis.Username,
		DB:       conf.Redis.Database,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.L.Fatal("connect redis error", zap.Error(err))
	}
	log.L.Info("redis client success")
	return client
}
