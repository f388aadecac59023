package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/inventory"
)

var ErrMiss = errors.New("cache miss")

// Store — минимальный key/value, которого хватает кэшу цен.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Pricer — то же, что options.InventoryPricer; объявлен здесь, чтобы
// infra не зависела от пакета опций.
type Pricer interface {
	ResolvePrice(ctx context.Context, itemID string, mode inventory.PricingMode, markupPercent float64) (float64, error)
}

// PriceCache — read-through кэш цен склада. Ошибки хранилища не ломают
// расчёт: идём в источник и пишем предупреждение.
type PriceCache struct {
	store Store
	next  Pricer
	ttl   time.Duration
	log   *slog.Logger
}

func NewPriceCache(store Store, next Pricer, ttl time.Duration, log *slog.Logger) *PriceCache {
	return &PriceCache{store: store, next: next, ttl: ttl, log: log}
}

func priceKey(itemID string, mode inventory.PricingMode, markup float64) string {
	return fmt.Sprintf("inv:price:%s:%s:%s", itemID, mode, strconv.FormatFloat(markup, 'f', -1, 64))
}

func (c *PriceCache) ResolvePrice(ctx context.Context, itemID string, mode inventory.PricingMode, markup float64) (float64, error) {
	key := priceKey(itemID, mode, markup)

	raw, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		if v, perr := strconv.ParseFloat(raw, 64); perr == nil {
			return v, nil
		}
		c.log.Warn("bad cached price", "key", key, "value", raw)
	case !errors.Is(err, ErrMiss):
		c.log.Warn("price cache get failed", "key", key, "err", err)
	}

	v, err := c.next.ResolvePrice(ctx, itemID, mode, markup)
	if err != nil {
		return 0, err
	}
	if err := c.store.Set(ctx, key, strconv.FormatFloat(v, 'f', -1, 64), c.ttl); err != nil {
		c.log.Warn("price cache set failed", "key", key, "err", err)
	}
	return v, nil
}

// RedisStore — Store поверх go-redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "interio:"
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }
