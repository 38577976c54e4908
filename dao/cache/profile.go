package cache

import (
	"clipchain/config"
	"clipchain/pkg/neynar"
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// ProfileCache Farcaster 用户资料缓存
type ProfileCache struct {
	c jsonCache[neynar.User]
}

func NewProfileCache(rds *redis.Client, conf *config.Templates) *ProfileCache {
	return &ProfileCache{c: jsonCache[neynar.User]{redis: rds, prefix: "clipchain:profile:", ttl: conf.ProfileCacheTTL}}
}

func (p *ProfileCache) Get(ctx context.Context, fid uint64) (*neynar.User, bool) {
	return p.c.get(ctx, strconv.FormatUint(fid, 10))
}

func (p *ProfileCache) Set(ctx context.Context, u *neynar.User) {
	p.c.set(ctx, strconv.FormatUint(u.Fid, 10), u)
}
