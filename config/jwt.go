package config

type Jwt struct {
	Secret   string `json:"secret" yaml:"secret"`
	// 为 true 时所有写接口必须携带 Bearer token
	Required bool   `json:"required" yaml:"required"`
}
