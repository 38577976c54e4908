//go:build wireinject
// +build wireinject

package main

import (
	"clipchain/config"
	"clipchain/dao"
	"clipchain/pkg/database"
	"clipchain/pkg/rocketmq"
	"clipchain/service"

	"github.com/google/wire"
)

func InitApp(cfg *config.Config) *App {
	wire.Build(
		database.NewDB,
		config.ProvidePaymentConfig,
		config.ProvideRocketMQConfig,
		config.ProvideLedgerConfig,
		rocketmq.NewPublisher,
		dao.NewRefundStore,
		dao.NewLedgerStore,

		wire.Struct(new(service.RefundService), "*"),
		wire.Bind(new(service.IRefundService), new(*service.RefundService)),
		wire.Bind(new(service.EventPublisher), new(*rocketmq.Publisher)),
		wire.Struct(new(service.LedgerService), "*"),
		wire.Bind(new(service.ILedgerService), new(*service.LedgerService)),

		wire.Struct(new(App), "*"),
	)
	return nil
}
