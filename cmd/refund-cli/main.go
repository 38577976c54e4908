package main

import (
	"clipchain/config"
	"clipchain/pkg/log"
	"clipchain/pkg/rocketmq"
	"clipchain/service"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// App 离线结算工具依赖
type App struct {
	Refunds   service.IRefundService
	Ledger    service.ILedgerService
	Publisher *rocketmq.Publisher
}

// 退款的链上转账由运营人员用钱包完成，这里只维护退款单状态
func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	var app *App
	cliApp := &cli.App{
		Name:  "refund-cli",
		Usage: "settle refund obligations for failed paid generations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   fmt.Sprintf("configs/config.%s.yaml", env),
				Usage:   "config file path",
				EnvVars: []string{"CLIPCHAIN_CONFIG"},
			},
		},
		Before: func(ctx *cli.Context) error {
			cfg := config.New(ctx.String("config"))
			if cfg.MemoryStore() {
				return errors.New("refund-cli needs the mysql section, in-memory data is per process")
			}
			app = InitApp(cfg)
			return nil
		},
		After: func(ctx *cli.Context) error {
			if app == nil {
				return nil
			}
			return app.Publisher.Shutdown()
		},
		Commands: commands(func() *App { return app }),
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("refund-cli failed", zap.Error(err))
	}
}
