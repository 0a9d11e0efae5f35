package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// memo is a time-boxed memoizer in front of a Cache. Keys are built from the
// call name and its normalized arguments; only successful results are stored.
type memo struct {
	cache Cache
	group singleflight.Group
}

func newMemo(cache Cache) *memo {
	return &memo{cache: cache}
}

func memoKey(call string, args ...string) string {
	if len(args) == 0 {
		return call
	}

	return call + ":" + strings.Join(args, ":")
}

func remember[T any](ctx context.Context, m *memo, call, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if cached, ok := m.lookup(ctx, call, key); ok {
		var value T
		err := json.Unmarshal(cached, &value)
		if err == nil {
			return value, nil
		}
		slog.Error("memo decode failed", "key", key, "error", err)
	}

	// callers waiting on key share the fetch; it outlives any one of them
	shared := context.WithoutCancel(ctx)

	v, err, _ := m.group.Do(key, func() (any, error) {
		value, err := fetch(shared)
		if err != nil {
			upstreamRequests.WithLabelValues(call, "error").Inc()
			return nil, err
		}
		upstreamRequests.WithLabelValues(call, "ok").Inc()

		m.store(shared, key, value, ttl)

		return value, nil
	})
	if err != nil {
		return zero, err
	}

	return v.(T), nil
}

func (m *memo) lookup(ctx context.Context, call, key string) ([]byte, bool) {
	cached, ok, err := m.cache.Get(ctx, key)
	if err != nil {
		slog.Error("cache get failed", "key", key, "error", err)
		cacheLookups.WithLabelValues(call, "error").Inc()
		return nil, false
	}

	if !ok {
		slog.Debug("cache miss", "key", key)
		cacheLookups.WithLabelValues(call, "miss").Inc()
		return nil, false
	}

	slog.Debug("cache hit", "key", key)
	cacheLookups.WithLabelValues(call, "hit").Inc()

	return cached, true
}

func (m *memo) store(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Error("memo encode failed", "key", key, "error", err)
		return
	}

	if err := m.cache.Set(ctx, key, data, ttl); err != nil {
		slog.Error("cache set failed", "key", key, "error", err)
	}
}
