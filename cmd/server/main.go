package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/fintechlab/accounts/infra/initializer"
	"github.com/fintechlab/accounts/pkg/config"
	accountsvc "github.com/fintechlab/accounts/pkg/service/account"
	"github.com/fintechlab/accounts/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.Init(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	svc := accountsvc.New(deps.Store, deps.History, deps.Logger)
	app := webapi.New(svc, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}
