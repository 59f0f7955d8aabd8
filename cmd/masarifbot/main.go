package main

import (
	"fmt"
	"log"
	"os"

	"github.com/waznabudget/masarifbot/app"
	"github.com/waznabudget/masarifbot/core/bootstrap"
	corecmd "github.com/waznabudget/masarifbot/core/cmd"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config/config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return app.LoadConfig(path)
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg, ok := carrier.(*app.BotConfig)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", carrier)
			}
			res, err := bootstrap.Run(bootstrap.Options{
				Config:   cfg.CoreConfig(),
				Database: cfg.Database,
			})
			if err != nil {
				return nil, err
			}
			return app.New(cfg, res.DB), nil
		},
	})
	if err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}
