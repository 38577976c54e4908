package config

import "time"

// Payment USDC 直付配置
type Payment struct {
	PriceUSDC  string `json:"price_usdc" yaml:"price_usdc"`
	Token      string `json:"token" yaml:"token"`
	Chain      string `json:"chain" yaml:"chain"`
	// 退款单对外编号的 hashids 盐
	RefundSalt string `json:"refund_salt" yaml:"refund_salt"`
}

func (p *Payment) fill() {
	if p.PriceUSDC == "" {
		p.PriceUSDC = "0.25"
	}
	if p.Token == "" {
		p.Token = "USDC"
	}
	if p.Chain == "" {
		p.Chain = "base"
	}
	if p.RefundSalt == "" {
		p.RefundSalt = "clipchain-refund"
	}
}

type Ledger struct {
	// 每累计生成 N 次奖励一次免费生成
	GenerationRewardEvery int `json:"generation_reward_every" yaml:"generation_reward_every"`
	// 免费生成次数上限，0 表示不限
	MaxFreeGenerations    int `json:"max_free_generations" yaml:"max_free_generations"`
}

func (l *Ledger) fill() {
	if l.GenerationRewardEvery <= 0 {
		l.GenerationRewardEvery = 5
	}
}

type Templates struct {
	TrendingCacheTTL  time.Duration `json:"trending_cache_ttl" yaml:"trending_cache_ttl"`
	ProfileCacheTTL   time.Duration `json:"profile_cache_ttl" yaml:"profile_cache_ttl"`
	// 创作者信息查询并发数
	LookupConcurrency int           `json:"lookup_concurrency" yaml:"lookup_concurrency"`
	MirrorMedia       bool          `json:"mirror_media" yaml:"mirror_media"`
}

func (t *Templates) fill() {
	if t.TrendingCacheTTL == 0 {
		t.TrendingCacheTTL = 30 * time.Second
	}
	if t.ProfileCacheTTL == 0 {
		t.ProfileCacheTTL = 10 * time.Minute
	}
	if t.LookupConcurrency <= 0 {
		t.LookupConcurrency = 8
	}
}

func ProvideLedgerConfig(cfg *Config) *Ledger {
	return cfg.Ledger
}

func ProvidePaymentConfig(cfg *Config) *Payment {
	return cfg.Payment
}

func ProvideTemplatesConfig(cfg *Config) *Templates {
	return cfg.Templates
}
