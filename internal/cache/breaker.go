package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// ErrOpen — breaker разомкнут, Redis временно не вызывается.
var ErrOpen = errors.New("cache: circuit open")

// BreakerSettings — параметры размыкания.
//   - Failures: подряд идущие ошибки до размыкания;
//   - Cooldown: время в open перед пробным запросом;
//   - OpTimeout: дедлайн одной операции с кэшем (0 — без отдельного дедлайна).
type BreakerSettings struct {
	Failures  uint32
	Cooldown  time.Duration
	OpTimeout time.Duration
}

// Breaker — декоратор Cache: после серии ошибок перестаёт обращаться к кэшу
// на время Cooldown и сразу возвращает ErrOpen.
type Breaker struct {
	next      Cache
	cb        *gobreaker.CircuitBreaker[any]
	opTimeout time.Duration
}

type getResult struct {
	val []byte
	ok  bool
}

func NewBreaker(next Cache, s BreakerSettings, logger *slog.Logger) *Breaker {
	if s.Failures == 0 {
		s.Failures = 5
	}

	if s.Cooldown <= 0 {
		s.Cooldown = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "redis-cache",
		MaxRequests: 1,
		Timeout:     s.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.Failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("cache_breaker_state", "name", name, "from", from.String(), "to", to.String())
			}
		},
	})

	return &Breaker{next: next, cb: cb, opTimeout: s.OpTimeout}
}

// State — текущее состояние breaker (для метрик и тестов).
func (b *Breaker) State() gobreaker.State { return b.cb.State() }

func (b *Breaker) run(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	res, err := b.cb.Execute(func() (any, error) {
		if b.opTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, b.opTimeout)
			defer cancel()
		}

		return fn(ctx)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrOpen
	}

	return res, err
}

func (b *Breaker) Get(ctx context.Context, key string) ([]byte, bool, error) {
	res, err := b.run(ctx, func(ctx context.Context) (any, error) {
		val, ok, err := b.next.Get(ctx, key)
		return getResult{val: val, ok: ok}, err
	})
	if err != nil {
		return nil, false, err
	}

	r := res.(getResult)

	return r.val, r.ok, nil
}

func (b *Breaker) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	_, err := b.run(ctx, func(ctx context.Context) (any, error) {
		return nil, b.next.Set(ctx, key, val, ttl)
	})

	return err
}

func (b *Breaker) Delete(ctx context.Context, keys ...string) error {
	_, err := b.run(ctx, func(ctx context.Context) (any, error) {
		return nil, b.next.Delete(ctx, keys...)
	})

	return err
}

func (b *Breaker) DeleteByPattern(ctx context.Context, pattern string) (int64, error) {
	res, err := b.run(ctx, func(ctx context.Context) (any, error) {
		return b.next.DeleteByPattern(ctx, pattern)
	})
	if err != nil {
		return 0, err
	}

	return res.(int64), nil
}

func (b *Breaker) Close() error { return b.next.Close() }

var _ Cache = (*Breaker)(nil)
