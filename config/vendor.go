package config

import "time"

// Neynar Farcaster 身份服务
type Neynar struct {
	BaseURL string        `json:"base_url" yaml:"base_url"`
	ApiKey  string        `json:"api_key" yaml:"api_key"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Video 视频生成服务
type Video struct {
	BaseURL      string        `json:"base_url" yaml:"base_url"`
	ApiKey       string        `json:"api_key" yaml:"api_key"`
	Model        string        `json:"model" yaml:"model"`
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
}

// LLM 用于把 bio 改写成视频提示词
type LLM struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	ApiKey  string `json:"api_key" yaml:"api_key"`
	Model   string `json:"model" yaml:"model"`
}

func ProvideNeynarConfig(cfg *Config) *Neynar {
	return cfg.Neynar
}

func ProvideVideoConfig(cfg *Config) *Video {
	return cfg.Video
}

func ProvideLLMConfig(cfg *Config) *LLM {
	return cfg.LLM
}
