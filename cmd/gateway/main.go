package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/kotoba/internal/gateway"
	"github.com/dmitrijs2005/kotoba/internal/gateway/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("error creating logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := gateway.NewApp(cfg, logger).Run(ctx); err != nil {
		logger.Error("gateway exited", zap.Error(err))
		stop()
		os.Exit(1)
	}
}
