package config

type App struct {
	Name        string `json:"name" yaml:"name"`
	Env         string `json:"env" yaml:"env"`
	Debug       bool   `json:"debug" yaml:"debug"`
	// 允许跨域的来源，空表示 *
	AllowOrigin string `json:"allow_origin" yaml:"allow_origin"`
}
