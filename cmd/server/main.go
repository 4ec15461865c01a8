package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"career-sync/internal/app"
	"career-sync/internal/config"
	"career-sync/internal/logger"
)

func main() {
	boot := logger.Startup(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log, closer, err := logger.New(cfg.Log, cfg.App.AppName)
	if err != nil {
		boot.Fatal().Err(err).Msg("failed to init logger")
	}
	defer closer.Close()

	bootstrap, cleanup, err := app.Bootstrap(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap app")
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Error().Err(err).Msg("cleanup error")
		}
	}()

	warmCtx, warmCancel := context.WithTimeout(context.Background(), 10*time.Minute)
	err = bootstrap.Warmup(warmCtx)
	warmCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to train initial model")
	}

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid HTTP port")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- bootstrap.Fiber.Listen(addr)
	}()
	log.Info().Str("addr", addr).Str("env", cfg.App.Environment).Msg("http server started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server error")
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}
}
