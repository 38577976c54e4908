package service

import (
	"clipchain/config"
	"clipchain/dao"
	"clipchain/dao/cache"
	"clipchain/models"
	"clipchain/pkg/neynar"
	"clipchain/pkg/videogen"
	"context"
	"errors"
	"sync"
	"time"
)

type fakeProfiles struct {
	mu        sync.Mutex
	users     map[uint64]*neynar.User
	bulkErr   error
	failFor   map[uint64]bool
	singleHit int
}

func newFakeProfiles(users ...*neynar.User) *fakeProfiles {
	f := &fakeProfiles{users: map[uint64]*neynar.User{}, failFor: map[uint64]bool{}}
	for _, u := range users {
		f.users[u.Fid] = u
	}
	return f
}

func (f *fakeProfiles) GetUser(_ context.Context, fid uint64) (*neynar.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.singleHit++
	if f.failFor[fid] {
		return nil, errors.New("identity api timeout")
	}
	u, ok := f.users[fid]
	if !ok {
		return nil, neynar.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeProfiles) GetUsers(_ context.Context, fids []uint64) (map[uint64]*neynar.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bulkErr != nil {
		return nil, f.bulkErr
	}
	out := map[uint64]*neynar.User{}
	for _, fid := range fids {
		if u, ok := f.users[fid]; ok && !f.failFor[fid] {
			out[fid] = u
		}
	}
	return out, nil
}

func newProfileService(lookup ProfileLookup) *ProfileService {
	conf := &config.Templates{TrendingCacheTTL: time.Second, ProfileCacheTTL: time.Second, LookupConcurrency: 2}
	return &ProfileService{
		Neynar: lookup,
		Cache:  cache.NewProfileCache(nil, conf),
		Config: conf,
	}
}

func newTemplateService(store dao.TemplateStore, lookup ProfileLookup) *TemplateService {
	conf := &config.Templates{TrendingCacheTTL: time.Second, ProfileCacheTTL: time.Second, LookupConcurrency: 2}
	return &TemplateService{
		Store:    store,
		Trending: cache.NewTrendingCache(nil, conf),
		Profiles: newProfileService(lookup),
		Config:   conf,
	}
}

// memoryTrending 进程内的热门缓存，用来验证失效时机
type memoryTrending struct {
	mu          sync.Mutex
	list        []models.VideoTemplate
	cached      bool
	invalidated int
}

func (m *memoryTrending) Get(context.Context) ([]models.VideoTemplate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list, m.cached
}

func (m *memoryTrending) Set(_ context.Context, list []models.VideoTemplate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list, m.cached = list, true
}

func (m *memoryTrending) Invalidate(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list, m.cached = nil, false
	m.invalidated++
}

type fakeGenerator struct {
	mu    sync.Mutex
	err   error
	calls []videogen.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req videogen.Request) (*videogen.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &videogen.Result{JobID: "job-1", VideoURL: "https://cdn.example.com/v/1.mp4", ThumbnailURL: "https://cdn.example.com/v/1.jpg"}, nil
}

type fakePrompter struct{}

func (fakePrompter) BioPrompt(_ context.Context, username, bio string) string {
	return "scene for @" + username + ": " + bio
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakePublisher) Send(_ context.Context, topic string, key string, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, topic+"/"+key)
	return nil
}

func newRefundService(pub EventPublisher) *RefundService {
	return &RefundService{
		Store:     dao.NewMemoryRefunds(),
		Publisher: pub,
		Payment:   &config.Payment{PriceUSDC: "0.25", Token: "USDC", Chain: "base", RefundSalt: "test-salt"},
		MQ:        &config.RocketMQConfig{Topics: config.Topics{Refund: "clipchain_refund"}},
	}
}
