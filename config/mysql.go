package config

import "fmt"

type MySQL struct {
	Host        string `json:"host" yaml:"host"`
	Port        int    `json:"port" yaml:"port"`
	Username    string `json:"username" yaml:"username"`
	Password    string `json:"password" yaml:"password"`
	Database    string `json:"database" yaml:"database"`
	Charset     string `json:"charset" yaml:"charset"`
	// 启动时自动建表
	AutoMigrate bool   `json:"auto_migrate" yaml:"auto_migrate"`
}

func (m *MySQL) Dsn() string {
	charset := m.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=UTC",
		m.Username, m.Password, m.Host, m.Port, m.Database, charset)
}
