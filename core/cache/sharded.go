package cache

import (
	"fmt"
	"log/slog"

	"github.com/codewandler/hashlru/internal/hrw"
)

const defaultShards = 16

type ShardedOpts[V any] struct {
	// Shards is the number of independent LRUs (default 16).
	Shards int
	// Capacity is the capacity of each shard. Required.
	Capacity int
	// Seed perturbs key placement; two caches with different seeds spread
	// the same keys differently.
	Seed string

	PromoteOnFind bool
	OnEvict       func(key string, val V)

	Name    string
	Log     *slog.Logger
	Metrics Metrics
}

// Sharded spreads keys over several Synchronized LRUs so that unrelated keys
// do not contend on one lock. Recency is tracked per shard: a full shard
// evicts its own oldest entry even if another shard holds older ones.
type Sharded[V any] struct {
	ids    []string
	seed   string
	shards []*Synchronized[V]
}

func NewSharded[V any](opts ShardedOpts[V]) (*Sharded[V], error) {
	if opts.Shards <= 0 {
		opts.Shards = defaultShards
	}
	if opts.Name == "" {
		opts.Name = "sharded"
	}

	s := &Sharded[V]{
		ids:    make([]string, opts.Shards),
		seed:   opts.Seed,
		shards: make([]*Synchronized[V], opts.Shards),
	}
	for i := range opts.Shards {
		s.ids[i] = fmt.Sprintf("shard-%d", i)
		shard, err := NewSynchronized(LRUOpts[V]{
			Capacity:      opts.Capacity,
			PromoteOnFind: opts.PromoteOnFind,
			OnEvict:       opts.OnEvict,
			Name:          fmt.Sprintf("%s/%d", opts.Name, i),
			Log:           opts.Log,
			Metrics:       opts.Metrics,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", s.ids[i], err)
		}
		s.shards[i] = shard
	}
	return s, nil
}

func (s *Sharded[V]) Add(key string, val V) error { return s.shardFor(key).Add(key, val) }

func (s *Sharded[V]) Insert(key string, val V) bool { return s.Add(key, val) == nil }

func (s *Sharded[V]) Find(key string) (V, bool) { return s.shardFor(key).Find(key) }

func (s *Sharded[V]) Remove(key string) (V, bool) { return s.shardFor(key).Remove(key) }

// Len sums the shard sizes. Shards are locked one after another, so the total
// is not a snapshot under concurrent writes.
func (s *Sharded[V]) Len() int {
	n := 0
	for _, shard := range s.shards {
		n += shard.Len()
	}
	return n
}

// Iterate visits shard by shard, each from most to least recently used.
func (s *Sharded[V]) Iterate(fn func(key string, val V)) {
	for _, shard := range s.shards {
		shard.Iterate(fn)
	}
}

func (s *Sharded[V]) Delete(destroy func(V)) {
	for _, shard := range s.shards {
		shard.Delete(destroy)
	}
}

func (s *Sharded[V]) shardFor(key string) *Synchronized[V] {
	return s.shards[hrw.Pick(key, s.ids, s.seed)]
}

var _ Cache[any] = (*Sharded[any])(nil)
