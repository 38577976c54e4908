package database

import (
	"clipchain/config"
	"clipchain/pkg/log"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 初始化数据库连接，未配置 mysql 时返回 nil
func NewDB(conf *config.Config) *gorm.DB {
	if conf.MemoryStore() {
		log.L.Warn("mysql not configured, using in-memory store")
		return nil
	}
	gormConf := &gorm.Config{}
	if !conf.Debug() {
		gormConf.Logger = logger.Default.LogMode(logger.Warn)
	}
	db, err := gorm.Open(mysql.Open(conf.MySQL.Dsn()), gormConf)
	if err != nil {
		log.L.Fatal("failed to connect database", zap.Error(err))
	}
	log.L.Info("connect database success", zap.String("database", conf.MySQL.Database))
	return db
}
