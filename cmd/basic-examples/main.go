package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/awamegit/spotrm-api-go/internal/app"
	"github.com/awamegit/spotrm-api-go/internal/config"
	"github.com/awamegit/spotrm-api-go/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "basic examples failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	log.InfoObj("basic examples starting", "config", cfg.Redacted())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := app.NewRunner(ctx, cfg, log, os.Stdout)
	if err != nil {
		log.ErrorObj("failed to initialize runner", "error", err.Error())
		return err
	}
	defer func() {
		if cerr := runner.Close(); cerr != nil {
			log.WarnObj("runner close failed", "error", cerr.Error())
		}
	}()

	return runner.RunBasic(ctx)
}
