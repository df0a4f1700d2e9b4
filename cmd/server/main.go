package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"maidlink/internal/platform/config"
	"maidlink/internal/platform/httpserver"
	"maidlink/internal/platform/logger"
)

// main loads configuration, wires the profile services and runs the HTTP
// server alongside the outbox relay until SIGINT or SIGTERM.
func main() {
	cfg := config.MustLoad(".env")
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("maidlink stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("maidlink stopped")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	app, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.close()

	srv := httpserver.New(cfg.Server.Addr, app.router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv, cfg.Server.ShutdownTimeout, log)
	})
	g.Go(func() error {
		if err := app.relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	return g.Wait()
}
