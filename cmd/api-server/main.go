package main

import (
	"Focus/config"
	"Focus/pkg/database"
	"Focus/pkg/log"
	"Focus/pkg/server"
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
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)

	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "focus fragment ledger, reward redemption and lottery",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					return server.Run(ctx, InitServer(cfg))
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update fragment tables",
				Action: func(ctx *cli.Context) error {
					return database.Migrate(database.NewDB(cfg))
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to start server", zap.Error(err))
	}
}
