package config

type RocketMQConfig struct {
	NameServer []string `yaml:"nameserver"`

	Producer Producer `yaml:"producer"`

	Topics Topics `yaml:"topics"`
}

type Producer struct {
	Group string `yaml:"group"`
	Retry int    `yaml:"retry"`
}

type Topics struct {
	Refund string `yaml:"refund"`
}

func ProvideRocketMQConfig(cfg *Config) *RocketMQConfig {
	return cfg.RocketMQ
}
