// cache — кэш материализованных представлений (страницы комментариев, ветки).
// Redis — основная реализация; Noop — при отключённом или недоступном Redis;
// Breaker — декоратор с circuit breaker и таймаутом на операцию.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-shorts-platform/internal/config"
)

// Cache — минимальный контракт кэша представлений.
// Промах — (nil, false, nil); ошибка означает недоступность кэша.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeleteByPattern удаляет все ключи по glob-шаблону и возвращает их число.
	DeleteByPattern(ctx context.Context, pattern string) (int64, error)
	Close() error
}

// New собирает кэш по конфигурации. Пустой redis.url или недоступный Redis
// дают Noop: сервис продолжает работать без кэширования.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) Cache {
	if cfg.Redis.URL == "" {
		logger.Info("cache_disabled", "reason", "empty redis url")
		return Noop{}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rc, err := NewRedis(pingCtx, cfg.Redis.URL, cfg.Redis.Prefix)
	if err != nil {
		logger.Warn("cache_disabled", "reason", "redis unavailable", "err", err)
		return Noop{}
	}

	logger.Info("cache_enabled", "prefix", cfg.Redis.Prefix)

	return NewBreaker(rc, BreakerSettings{
		Failures:  cfg.Cache.BreakerFailures,
		Cooldown:  cfg.Cache.BreakerCooldown,
		OpTimeout: cfg.Cache.OpTimeout,
	}, logger)
}
