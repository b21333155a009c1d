// Command items-local serves the item API over HTTP against LocalStack.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vinicius-dias23/roteiro3/internal/app"
	"github.com/vinicius-dias23/roteiro3/internal/devserver"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running items-local: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger, err := app.Setup()
	if err != nil {
		return err
	}
	if !cfg.AWS.Local() {
		logger.WarnContext(ctx, "items-local running outside local mode", "stage", cfg.AWS.StageName())
	}

	h, err := app.NewAPI(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("error building handler: %w", err)
	}

	return devserver.Run(ctx, cfg.HTTP, devserver.NewRouter(h, logger), logger)
}
