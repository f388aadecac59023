package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pressly/goose/v3"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/config"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/inventory"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/options"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/quote"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/treatment"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/infra/cache"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/infra/db"
	httpx "github.com/dbaltunis/interio-ai-canvas-sub004/internal/infra/http"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/infra/logger"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/infra/metrics"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/infra/telegram"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/infra/twcclient"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfgPath := flag.String("config", "config/example.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	treatments := treatment.NewRepo(pool)
	var pricer options.InventoryPricer = inventory.NewResolver(inventory.NewRepo(pool))

	if cfg.Redis.Addr != "" {
		store, err := cache.NewRedisStore(ctx, cache.RedisConfig{
			Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB,
		})
		if err != nil {
			// без кэша работаем, просто медленнее
			log.Warn("redis unavailable, inventory prices not cached", "err", err)
		} else {
			defer func() { _ = store.Close() }()
			pricer = cache.NewPriceCache(store, pricer, cfg.Redis.TTL, log)
			log.Info("redis connected", "addr", cfg.Redis.Addr)
		}
	}

	deps := quote.Deps{
		Templates: treatments,
		Materials: treatments,
		Options:   options.NewRepo(pool),
		Inventory: pricer,
		Recorder:  metrics.New(prometheus.DefaultRegisterer),
	}
	if cfg.TWC.BaseURL != "" {
		deps.Submitter = twcclient.New(cfg.TWC.BaseURL, cfg.TWC.APIKey, cfg.TWC.Timeout)
	}
	if cfg.Telegram.Token != "" {
		api, err := telegram.Connect(cfg.Telegram.Token)
		if err != nil {
			log.Warn("telegram disabled", "err", err)
		} else {
			deps.Notifier = telegram.New(api, cfg.Telegram.AdminChatID, log)
		}
	}

	svc := quote.NewService(log, deps, quote.Pricing{
		InventoryMode: inventory.PricingMode(cfg.Pricing.InventoryMode),
		MarkupPercent: cfg.Pricing.MarkupPercent,
	}, cfg.TWC.POPrefix)

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, httpx.NewHandlers(log, svc, treatments))
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
			stop()
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
