package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"address-api/internal/config"
	"address-api/internal/logger"

	"github.com/rs/zerolog/log"
)

//	@title			Address API
//	@version		1.0
//	@description	Stores named geographic points and answers radius queries.
//	@BasePath		/
func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		os.Exit(1)
	}

	log.Info().Msg("Application stopped gracefully.")
}

// run owns every deferred cleanup so that main can exit with a status code
// only after they have run.
func run() error {
	// Canceled on SIGINT/SIGTERM to start a graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	logger.Setup(cfg.Environment)

	app, err := newApplication(ctx, cfg)
	if err != nil {
		return fmt.Errorf("cannot initialize application: %w", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}
