package cache

import (
	"clipchain/config"
	"clipchain/models"
	"context"

	"github.com/redis/go-redis/v9"
)

const trendingKey = "top"

// TrendingCache 热门模板列表的短时缓存，只缓存数据库部分。
// 只存一份最大页，各页大小从中截取，清理时删一个 key 即可。
type TrendingCache struct {
	c jsonCache[[]models.VideoTemplate]
}

func NewTrendingCache(rds *redis.Client, conf *config.Templates) *TrendingCache {
	return &TrendingCache{c: jsonCache[[]models.VideoTemplate]{redis: rds, prefix: "clipchain:trending:", ttl: conf.TrendingCacheTTL}}
}

func (t *TrendingCache) Get(ctx context.Context) ([]models.VideoTemplate, bool) {
	v, ok := t.c.get(ctx, trendingKey)
	if !ok {
		return nil, false
	}
	return *v, true
}

func (t *TrendingCache) Set(ctx context.Context, list []models.VideoTemplate) {
	t.c.set(ctx, trendingKey, &list)
}

// Invalidate 模板新增或使用数变化后调用
func (t *TrendingCache) Invalidate(ctx context.Context) {
	t.c.del(ctx, trendingKey)
}
