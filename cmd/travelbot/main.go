package main

import (
	"log"

	corebootstrap "github.com/ketravel/travelbot/core/bootstrap"
	corecmd "github.com/ketravel/travelbot/core/cmd"
	coreconfig "github.com/ketravel/travelbot/core/config"
	coredatabase "github.com/ketravel/travelbot/core/database"
	"github.com/ketravel/travelbot/internal/bot"
	"github.com/ketravel/travelbot/internal/storage"
)

type configCarrier struct {
	cfg *coreconfig.Config
}

func (c configCarrier) CoreConfig() *coreconfig.Config { return c.cfg }

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			cfg, err := coreconfig.Load(path)
			if err != nil {
				return nil, err
			}
			return configCarrier{cfg: cfg}, nil
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg := carrier.CoreConfig()

			opts := corebootstrap.Options{Config: cfg}
			if cfg.Storage.Backend == coreconfig.BackendSQLite {
				opts.Database = coredatabase.Config{
					Path:           cfg.Storage.SQLitePath,
					MaxConnections: cfg.Storage.MaxConnections,
				}
				opts.Migrations = storage.Migrations
				opts.MigrationsDir = storage.MigrationsDir
			}
			res, err := corebootstrap.Run(opts)
			if err != nil {
				return nil, err
			}

			backends, err := storage.Open(cfg.Storage, res.DB)
			if err != nil {
				return nil, err
			}
			return bot.New(cfg, backends), nil
		},
	})
	if err != nil {
		log.Fatalf("travelbot: %v", err)
	}
}
