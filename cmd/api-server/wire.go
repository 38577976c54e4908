//go:build wireinject
// +build wireinject

package main

import (
	"clipchain/config"
	"clipchain/dao"
	"clipchain/dao/cache"
	"clipchain/handler"
	"clipchain/pkg/client"
	"clipchain/pkg/database"
	"clipchain/pkg/llm"
	"clipchain/pkg/neynar"
	"clipchain/pkg/oss"
	"clipchain/pkg/rocketmq"
	"clipchain/pkg/server"
	"clipchain/pkg/videogen"
	"clipchain/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,

		config.ProvideLedgerConfig,
		config.ProvidePaymentConfig,
		config.ProvideTemplatesConfig,
		config.ProvideOssConfig,
		config.ProvideRocketMQConfig,
		config.ProvideNeynarConfig,
		config.ProvideVideoConfig,
		config.ProvideLLMConfig,

		neynar.NewClient,
		videogen.NewClient,
		llm.NewPrompter,
		oss.NewClient,
		rocketmq.NewPublisher,

		dao.ProviderSet,
		cache.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.Credits), "*"),
		wire.Struct(new(handler.Templates), "*"),
		wire.Struct(new(handler.Generate), "*"),
		wire.Struct(new(handler.Leaderboard), "*"),

		server.NewGinEngine,
		wire.Struct(new(server.Handlers), "*"),
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil
}
