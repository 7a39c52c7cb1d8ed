package cache

import (
	"context"
	"time"
)

// Noop — кэш, который ничего не хранит: каждое чтение — промах.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Noop) Delete(context.Context, ...string) error { return nil }

func (Noop) DeleteByPattern(context.Context, string) (int64, error) { return 0, nil }

func (Noop) Close() error { return nil }

var _ Cache = Noop{}
