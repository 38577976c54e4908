package main

import (
	"clipchain/config"
	"clipchain/dao"
	"clipchain/pkg/database"
	"clipchain/pkg/log"
	"clipchain/pkg/server"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "clipchain mini app backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   fmt.Sprintf("configs/config.%s.yaml", env),
				Usage:   "config file path",
				EnvVars: []string{"CLIPCHAIN_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					cfg := config.New(ctx.String("config"))
					if cfg.MySQL != nil && cfg.MySQL.AutoMigrate {
						if err := migrate(cfg); err != nil {
							return err
						}
					}
					return server.Run(ctx, InitServer(cfg))
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update database tables",
				Action: func(ctx *cli.Context) error {
					return migrate(config.New(ctx.String("config")))
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to start server", zap.Error(err))
	}
}

func migrate(cfg *config.Config) error {
	db := database.NewDB(cfg)
	if db == nil {
		return errors.New("mysql is not configured")
	}
	if err := dao.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.L.Info("database migrated", zap.String("database", cfg.MySQL.Database))
	return nil
}
