package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"card_tracker/internal/application"
	"card_tracker/internal/config"
	"card_tracker/pkg/contextx"
	"card_tracker/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	log := logx.New(os.Stdout, cfg.App.LogFormat, cfg.App.LogLevel).With(
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err = application.Run(ctx, cfg); err != nil {
		log.Error("application stopped with error", logx.Error(err))
		cancel()
		os.Exit(1) //nolint:gocritic
	}

	log.Info("application stopped")
}
