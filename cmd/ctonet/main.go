package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aigentincubator/sales-ctonet/internal/config"
	"github.com/aigentincubator/sales-ctonet/internal/facet"
	"github.com/aigentincubator/sales-ctonet/internal/pricing"
	"github.com/aigentincubator/sales-ctonet/internal/server"
	"github.com/aigentincubator/sales-ctonet/internal/version"
	"github.com/aigentincubator/sales-ctonet/pkg/catalog"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("ctonet server starting", zap.String("version", version.Short()))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// The process cannot serve without a valid catalog; fail fast.
	cat := catalog.New(cfg.GetString("catalog.path"))
	if err := cat.Load(); err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	prices, err := pricing.Build(cat)
	if err != nil {
		logger.Fatal("failed to build price matrix", zap.Error(err))
	}

	engine := facet.NewEngine(cat, prices)

	addr := cfg.GetString("server.host") + ":" + cfg.GetString("server.port")
	srv := server.New(addr, engine, logger)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("ctonet server ready",
		zap.String("addr", addr),
		zap.Int("categories", len(cat.Categories())),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("ctonet server stopped")
}
