package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/pribylovaa/go-shorts-platform/internal/config"
	"github.com/stretchr/testify/require"
	gobreaker "github.com/sony/gobreaker/v2"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var errDown = errors.New("redis down")

// flakyCache — кэш в памяти, который можно «уронить».
type flakyCache struct {
	mu    sync.Mutex
	data  map[string][]byte
	down  bool
	calls int
}

func newFlaky() *flakyCache { return &flakyCache{data: map[string][]byte{}} }

func (f *flakyCache) setDown(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = v
}

func (f *flakyCache) enter() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.down {
		return errDown
	}
	return nil
}

func (f *flakyCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if err := f.enter(); err != nil {
		return nil, false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *flakyCache) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	if err := f.enter(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = val
	return nil
}

func (f *flakyCache) Delete(_ context.Context, keys ...string) error {
	if err := f.enter(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *flakyCache) DeleteByPattern(context.Context, string) (int64, error) {
	if err := f.enter(); err != nil {
		return 0, err
	}
	return 0, nil
}

func (f *flakyCache) Close() error { return nil }

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, v)

	n, err := c.DeleteByPattern(ctx, "*")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestNew_EmptyURL_ReturnsNoop(t *testing.T) {
	c := New(context.Background(), &config.Config{}, quietLogger())
	require.IsType(t, Noop{}, c)
}

func TestNew_Unreachable_ReturnsNoop(t *testing.T) {
	cfg := &config.Config{Redis: config.RedisConfig{URL: "redis://127.0.0.1:1/0"}}
	c := New(context.Background(), cfg, quietLogger())
	require.IsType(t, Noop{}, c)
}

// Промах не считается ошибкой и не размыкает breaker.
func TestBreaker_MissIsNotFailure(t *testing.T) {
	inner := newFlaky()
	b := NewBreaker(inner, BreakerSettings{Failures: 2, Cooldown: time.Minute}, quietLogger())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, ok, err := b.Get(ctx, "missing")
		require.NoError(t, err)
		require.False(t, ok)
	}
	require.Equal(t, gobreaker.StateClosed, b.State())

	require.NoError(t, b.Set(ctx, "k", []byte("v"), time.Minute))
	v, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), v)
}

// После серии ошибок breaker размыкается и перестаёт звать Redis; после cooldown — восстанавливается.
func TestBreaker_OpensAndRecovers(t *testing.T) {
	inner := newFlaky()
	b := NewBreaker(inner, BreakerSettings{Failures: 3, Cooldown: 50 * time.Millisecond}, quietLogger())
	ctx := context.Background()

	inner.setDown(true)
	for i := 0; i < 3; i++ {
		_, _, err := b.Get(ctx, "k")
		require.ErrorIs(t, err, errDown)
	}
	require.Equal(t, gobreaker.StateOpen, b.State())

	callsBefore := inner.calls
	_, err := b.DeleteByPattern(ctx, "comments:*")
	require.ErrorIs(t, err, ErrOpen)
	require.Equal(t, callsBefore, inner.calls)

	inner.setDown(false)
	time.Sleep(80 * time.Millisecond)

	require.NoError(t, b.Delete(ctx, "k"))
	require.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreaker_OpTimeout(t *testing.T) {
	slow := &ctxCache{}
	b := NewBreaker(slow, BreakerSettings{Failures: 5, OpTimeout: 10 * time.Millisecond}, quietLogger())

	_, _, err := b.Get(context.Background(), "k")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

// ctxCache блокируется до отмены контекста.
type ctxCache struct{ Noop }

func (ctxCache) Get(ctx context.Context, _ string) ([]byte, bool, error) {
	<-ctx.Done()
	return nil, false, ctx.Err()
}

// Интеграционный тест Redis (SCAN + UNLINK по шаблону).
//
//	GO_TEST_INTEGRATION=1 go test ./internal/cache -run Integration -v
func TestIntegration_Redis_DeleteByPattern(t *testing.T) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "6379/tcp")

	rc, err := NewRedis(ctx, fmt.Sprintf("redis://%s:%s/0", host, port.Port()), "t:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	for i := 0; i < 1200; i++ {
		require.NoError(t, rc.Set(ctx, fmt.Sprintf("comments:video:v1:p%d:l20:createdAt:desc", i), []byte("x"), time.Minute))
	}
	require.NoError(t, rc.Set(ctx, "comments:video:v2:p1:l20:createdAt:desc", []byte("y"), time.Minute))

	n, err := rc.DeleteByPattern(ctx, "comments:video:v1:*")
	require.NoError(t, err)
	require.EqualValues(t, 1200, n)

	_, ok, err := rc.Get(ctx, "comments:video:v2:p1:l20:createdAt:desc")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, rc.Delete(ctx, "comments:video:v2:p1:l20:createdAt:desc"))
	_, ok, err = rc.Get(ctx, "comments:video:v2:p1:l20:createdAt:desc")
	require.NoError(t, err)
	require.False(t, ok)
}
