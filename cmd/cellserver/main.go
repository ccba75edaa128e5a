package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mohammed-shakir/h3-cell-gateway/internal/cache"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/cache/redisstore"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/cache/tiered"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/core/config"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/core/health"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/core/observability"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/core/server"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/gateway"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/hotness/expdecay"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/logger"
	"github.com/mohammed-shakir/h3-cell-gateway/internal/lookupevents"
	"github.com/mohammed-shakir/h3-cell-gateway/pkg/hexgrid"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	addrFlag := flag.String("addr", "", "listen address (overrides ADDR)")
	flag.Parse()

	cfg := config.FromEnv()
	if *addrFlag != "" {
		cfg.Addr = strings.TrimSpace(*addrFlag)
	}

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   strings.ToLower(os.Getenv("LOG_CONSOLE")) == "true",
		Component: "cellserver",
	}, os.Stdout)
	appLog := logger.NewSlog(&zl)

	observability.ExposeBuildInfo(Version)
	appLog.Info("starting cellserver",
		"addr", cfg.Addr,
		"version", Version,
		"default_res", cfg.DefaultRes,
		"cache", cfg.CacheEnabled)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]health.Checker{}

	var rc *redisstore.Client
	if cfg.CacheEnabled {
		var err error
		rc, err = redisstore.New(ctx, cfg.RedisAddr)
		if err != nil {
			// degrade to the memory tier rather than refusing to start
			appLog.Warn("redis unavailable, caching in memory only", "addr", cfg.RedisAddr, "err", err)
			rc = nil
		} else {
			defer func() { _ = rc.Close() }()
			checks["redis"] = rc
		}
	}

	var store cache.Interface
	if cfg.CacheEnabled {
		tc, err := tiered.New(cfg.LRUSize, rc, cfg.CacheOpTimeout)
		if err != nil {
			appLog.Error("cache setup failed", "err", err)
			return 1
		}
		store = tc
	}

	hot := expdecay.New(cfg.HotHalfLife)
	go func() {
		t := time.NewTicker(15 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				observability.SetHotCells(hot.Size())
			}
		}
	}()

	var sink gateway.EventSink
	if cfg.Events.Enabled {
		pub, err := lookupevents.NewPublisher(
			strings.Split(cfg.Events.Brokers, ","), cfg.Events.Topic, cfg.Events.Queue)
		if err != nil {
			appLog.Error("lookup event publisher setup failed", "err", err)
			return 1
		}
		defer func() { _ = pub.Close() }()
		sink = pub
	}

	handler := gateway.New(hexgrid.New(), appLog, store, cfg.CacheTTL, hot, sink)

	if err := server.Run(ctx, cfg, appLog, handler, checks); err != nil {
		appLog.Error("server exited with error", "err", err)
		return 1
	}
	appLog.Info("server stopped")
	return 0
}
