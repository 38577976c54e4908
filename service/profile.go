package service

import (
	"clipchain/config"
	"clipchain/dao/cache"
	"clipchain/pkg/log"
	"clipchain/pkg/neynar"
	"context"
	"errors"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// CommunityTemplateLabel 创作者信息查不到时的展示名
const CommunityTemplateLabel = "Community Template"

// ProfileLookup Farcaster 身份服务
type ProfileLookup interface {
	GetUser(ctx context.Context, fid uint64) (*neynar.User, error)
	GetUsers(ctx context.Context, fids []uint64) (map[uint64]*neynar.User, error)
}

var _ ProfileLookup = (*neynar.Client)(nil)

type ProfileService struct {
	Neynar ProfileLookup
	Cache  *cache.ProfileCache
	Config *config.Templates
}

// Lookup 先查缓存，未命中再调身份服务
func (s *ProfileService) Lookup(ctx context.Context, fid uint64) (*neynar.User, error) {
	if u, ok := s.Cache.Get(ctx, fid); ok {
		return u, nil
	}
	u, err := s.Neynar.GetUser(ctx, fid)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, u)
	return u, nil
}

// LookupMany 尽力而为：批量接口失败时按 fid 并发逐个查，查不到的 fid 不出现在结果里
func (s *ProfileService) LookupMany(ctx context.Context, fids []uint64) map[uint64]*neynar.User {
	out := make(map[uint64]*neynar.User, len(fids))
	missing := make([]uint64, 0, len(fids))
	seen := make(map[uint64]struct{}, len(fids))
	for _, fid := range fids {
		if _, ok := seen[fid]; ok || fid == 0 {
			continue
		}
		seen[fid] = struct{}{}
		if u, ok := s.Cache.Get(ctx, fid); ok {
			out[fid] = u
			continue
		}
		missing = append(missing, fid)
	}
	if len(missing) == 0 {
		return out
	}

	users, err := s.Neynar.GetUsers(ctx, missing)
	if err == nil {
		for fid, u := range users {
			out[fid] = u
			s.Cache.Set(ctx, u)
		}
		return out
	}
	if errors.Is(err, neynar.ErrDisabled) {
		return out
	}
	log.L.Warn("bulk profile lookup failed, falling back to single lookups", zap.Int("fids", len(missing)), zap.Error(err))

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(s.concurrency())
	for _, fid := range missing {
		p.Go(func() {
			u, err := s.Lookup(ctx, fid)
			if err != nil {
				log.L.Debug("profile lookup failed", zap.Uint64("fid", fid), zap.Error(err))
				return
			}
			mu.Lock()
			out[fid] = u
			mu.Unlock()
		})
	}
	p.Wait()
	return out
}

func (s *ProfileService) concurrency() int {
	if s.Config == nil || s.Config.LookupConcurrency <= 0 {
		return 8
	}
	return s.Config.LookupConcurrency
}
