package cache

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/codewandler/hashlru/core/hashtable"
	"github.com/codewandler/hashlru/internal/reflector"
)

type LRUOpts[V any] struct {
	// Capacity is the maximum number of resident entries. Required.
	Capacity int

	// PromoteOnFind moves an entry to the most recently used position when
	// Find hits. Off by default: only insertion sets recency, so eviction
	// order is insertion order.
	PromoteOnFind bool

	// OnEvict is called once for every entry pushed out by capacity.
	OnEvict func(key string, val V)

	Name    string
	Log     *slog.Logger
	Metrics Metrics
}

// LRU is a fixed-capacity cache that evicts the least recently inserted entry.
//
// Entries live in a recency list; a hash index sized to the capacity maps each
// key to its list slot. Both always hold exactly the same keys.
//
// LRU is not safe for concurrent use, see [Synchronized].
type LRU[V any] struct {
	capacity int
	promote  bool
	onEvict  func(key string, val V)

	name    string
	log     *slog.Logger
	metrics Metrics

	list  recency[V]
	index *hashtable.Table[int32]
}

// New creates an LRU holding at most capacity entries.
func New[V any](capacity int) (*LRU[V], error) {
	return NewLRU(LRUOpts[V]{Capacity: capacity})
}

func NewLRU[V any](opts LRUOpts[V]) (*LRU[V], error) {
	if opts.Capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, opts.Capacity)
	}
	index, err := hashtable.New[int32](opts.Capacity)
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	if opts.Name == "" {
		opts.Name = "lru"
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NopMetrics()
	}

	return &LRU[V]{
		capacity: opts.Capacity,
		promote:  opts.PromoteOnFind,
		onEvict:  opts.OnEvict,
		name:     opts.Name,
		log:      opts.Log.With(slog.String("cache", opts.Name)),
		metrics:  opts.Metrics,
		list:     newRecency[V](opts.Capacity),
		index:    index,
	}, nil
}

// Add inserts key with val at the most recently used position.
//
// It fails with ErrEmptyKey, ErrNilValue or ErrDuplicateKey without touching
// the cache. Otherwise, if the cache is full, the least recently used entry is
// evicted first.
func (c *LRU[V]) Add(key string, val V) error {
	if c == nil {
		return ErrNilCache
	}
	if err := c.admit(key, val); err != nil {
		c.metrics.Rejected(c.name, rejectReason(err))
		c.log.Debug("insert rejected", slog.String("key", key), slog.Any("error", err))
		return err
	}

	if c.list.len() >= c.capacity {
		c.evict()
	}

	i := c.list.pushFront(key, val)
	if !c.index.Insert(key, i) {
		// admit saw the key absent, so this only fires if list and index diverged
		c.list.remove(i)
		return fmt.Errorf("%w: index out of sync", ErrDuplicateKey)
	}

	c.metrics.Inserted(c.name)
	c.metrics.Size(c.name, c.list.len())
	return nil
}

// Insert is Add reduced to whether the entry was admitted.
func (c *LRU[V]) Insert(key string, val V) bool {
	return c.Add(key, val) == nil
}

// Find looks key up in the index. It does not change recency unless the cache
// was built with PromoteOnFind.
func (c *LRU[V]) Find(key string) (val V, ok bool) {
	if c == nil {
		return val, false
	}
	i, ok := c.index.Find(key)
	if !ok {
		c.metrics.Miss(c.name)
		return val, false
	}
	c.metrics.Hit(c.name)
	if c.promote {
		c.list.moveToFront(i)
	}
	return c.list.at(i).val, true
}

// Remove takes key out of the cache and returns its value. OnEvict is not
// called; the value goes back to the caller.
func (c *LRU[V]) Remove(key string) (val V, ok bool) {
	if c == nil {
		return val, false
	}
	i, ok := c.index.Remove(key)
	if !ok {
		return val, false
	}
	val = c.list.at(i).val
	c.list.remove(i)
	c.metrics.Size(c.name, c.list.len())
	return val, true
}

// Len returns the number of resident entries.
func (c *LRU[V]) Len() int {
	if c == nil {
		return 0
	}
	return c.list.len()
}

// Cap returns the configured capacity.
func (c *LRU[V]) Cap() int {
	if c == nil {
		return 0
	}
	return c.capacity
}

// Keys returns the resident keys, most recently used first.
func (c *LRU[V]) Keys() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, c.list.len())
	c.list.each(func(key string, _ V) bool {
		out = append(out, key)
		return true
	})
	return out
}

// Iterate calls fn for every entry from most to least recently used.
func (c *LRU[V]) Iterate(fn func(key string, val V)) {
	if c == nil || fn == nil {
		return
	}
	c.list.each(func(key string, val V) bool {
		fn(key, val)
		return true
	})
}

// Print hands every entry to fn together with w, most recently used first.
// Nothing happens for a nil w; a nil cache prints "(null)".
func (c *LRU[V]) Print(w io.Writer, fn func(w io.Writer, key string, val V)) {
	if w == nil {
		return
	}
	if c == nil {
		_, _ = io.WriteString(w, "(null)")
		return
	}
	if fn == nil {
		return
	}
	c.Iterate(func(key string, val V) { fn(w, key, val) })
}

// Delete empties the cache, calling destroy once for each resident value.
// The cache can be used again afterwards.
func (c *LRU[V]) Delete(destroy func(V)) {
	if c == nil {
		return
	}
	if destroy != nil {
		c.list.each(func(_ string, val V) bool {
			destroy(val)
			return true
		})
	}
	c.list.reset()
	c.index.DeleteAll(nil)
	c.metrics.Size(c.name, 0)
}

func (c *LRU[V]) admit(key string, val V) error {
	if key == "" {
		return ErrEmptyKey
	}
	if reflector.IsNil(val) {
		return ErrNilValue
	}
	if _, ok := c.index.Find(key); ok {
		return ErrDuplicateKey
	}
	return nil
}

// evict drops the tail entry from the list and the same key from the index.
func (c *LRU[V]) evict() {
	i := c.list.tail
	if i == noSlot {
		return
	}
	s := c.list.at(i)
	key, val := s.key, s.val
	c.index.Remove(key)
	c.list.remove(i)

	c.metrics.Evicted(c.name)
	c.log.Debug("evicted", slog.String("key", key))
	if c.onEvict != nil {
		c.onEvict(key, val)
	}
}

var _ Cache[any] = (*LRU[any])(nil)
