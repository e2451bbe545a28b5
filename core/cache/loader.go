package cache

import (
	"context"
	"log/slog"

	"github.com/codewandler/hashlru/core/sf"
)

// LoadFunc fetches the value for key from wherever the cache is in front of.
type LoadFunc[V any] func(ctx context.Context, key string) (V, error)

type LoaderOpts struct {
	Name    string
	Log     *slog.Logger
	Metrics Metrics
}

// Loader reads through a Cache: misses are loaded, inserted and returned.
// Concurrent misses for one key share a single load.
type Loader[V any] struct {
	cache  Cache[V]
	load   LoadFunc[V]
	flight *sf.Singleflight[V]

	name    string
	log     *slog.Logger
	metrics Metrics
}

func NewLoader[V any](c Cache[V], load LoadFunc[V], opts LoaderOpts) *Loader[V] {
	if opts.Name == "" {
		opts.Name = "loader"
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NopMetrics()
	}
	return &Loader[V]{
		cache:   c,
		load:    load,
		flight:  sf.New[V](),
		name:    opts.Name,
		log:     opts.Log.With(slog.String("loader", opts.Name)),
		metrics: opts.Metrics,
	}
}

// Get returns the cached value for key or loads it. Callers that join a
// load already in flight get its result even if their own ctx differs.
func (l *Loader[V]) Get(ctx context.Context, key string) (V, error) {
	if v, ok := l.cache.Find(key); ok {
		return v, nil
	}
	v, shared, err := l.flight.Do(key, func() (V, error) {
		// a flight that finished between our miss and this call has filled the cache
		if v, ok := l.cache.Find(key); ok {
			return v, nil
		}
		timer := l.metrics.LoadDuration(l.name)
		defer timer.ObserveDuration()

		v, err := l.load(ctx, key)
		if err != nil {
			return v, err
		}
		if !l.cache.Insert(key, v) {
			l.log.Debug("loaded value not cached", slog.String("key", key))
		}
		return v, nil
	})
	if err != nil {
		l.log.Debug("load failed", slog.String("key", key), slog.Any("error", err))
		return v, err
	}
	if shared {
		l.log.Debug("load shared", slog.String("key", key))
	}
	return v, nil
}

// Cache returns the cache l reads through.
func (l *Loader[V]) Cache() Cache[V] { return l.cache }
