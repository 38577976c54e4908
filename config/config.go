package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App       *App            `json:"app" yaml:"app"`
	Server    *Server         `json:"server" yaml:"server"`
	Redis     *Redis          `json:"redis" yaml:"redis"`
	MySQL     *MySQL          `json:"mysql" yaml:"mysql"`
	Jwt       *Jwt            `json:"jwt" yaml:"jwt"`
	Oss       *OssConfig      `json:"oss" yaml:"oss"`
	RocketMQ  *RocketMQConfig `json:"rocketmq" yaml:"rocketmq"`
	Neynar    *Neynar         `json:"neynar" yaml:"neynar"`
	Video     *Video          `json:"video" yaml:"video"`
	LLM       *LLM            `json:"llm" yaml:"llm"`
	Payment   *Payment        `json:"payment" yaml:"payment"`
	Ledger    *Ledger         `json:"ledger" yaml:"ledger"`
	Templates *Templates      `json:"templates" yaml:"templates"`
}

type Server struct {
	Http          int     `json:"http" yaml:"http"`
	// /generate 每个 fid 每秒允许的请求数与突发上限
	GenerateRate  float64 `json:"generate_rate" yaml:"generate_rate"`
	GenerateBurst int     `json:"generate_burst" yaml:"generate_burst"`
}

func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("解析 %s 读取错误: %v", filename, err))
	}
	return conf
}

// Parse 解析 yaml 并补齐默认值
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}
	conf.fill()
	return &conf, nil
}

func (c *Config) fill() {
	if c.App == nil {
		c.App = &App{Env: "dev"}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Server.GenerateRate <= 0 {
		c.Server.GenerateRate = 0.2
	}
	if c.Server.GenerateBurst <= 0 {
		c.Server.GenerateBurst = 3
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Payment == nil {
		c.Payment = &Payment{}
	}
	c.Payment.fill()
	if c.Ledger == nil {
		c.Ledger = &Ledger{}
	}
	c.Ledger.fill()
	if c.Templates == nil {
		c.Templates = &Templates{}
	}
	c.Templates.fill()
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}

// MemoryStore 未配置 mysql 时使用内存存储，仅用于本地开发
func (c *Config) MemoryStore() bool {
	return c.MySQL == nil
}
