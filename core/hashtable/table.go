package hashtable

import (
	"errors"
	"fmt"
	"io"

	"github.com/codewandler/hashlru/core/ds"
	"github.com/codewandler/hashlru/internal/shard"
)

var ErrInvalidSlots = errors.New("hashtable: slot count must be positive")

type Table[V any] struct {
	buckets []*ds.List[V]
	router  shard.Sharder
	n       int
}

// New creates a table with slots buckets.
func New[V any](slots int) (*Table[V], error) {
	if slots <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSlots, slots)
	}
	buckets := make([]*ds.List[V], slots)
	for i := range buckets {
		buckets[i] = ds.NewList[V]()
	}
	return &Table[V]{
		buckets: buckets,
		router:  shard.Distributed(slots),
	}, nil
}

// Slots returns the number of buckets.
func (t *Table[V]) Slots() int {
	if t == nil {
		return 0
	}
	return len(t.buckets)
}

// Len returns the number of stored entries.
func (t *Table[V]) Len() int {
	if t == nil {
		return 0
	}
	return t.n
}

// Insert stores val under key. It returns false if the table is nil, the key
// is empty or the key is already present.
func (t *Table[V]) Insert(key string, val V) bool {
	if t == nil || key == "" {
		return false
	}
	if !t.bucket(key).Insert(key, val) {
		return false
	}
	t.n++
	return true
}

func (t *Table[V]) Find(key string) (val V, ok bool) {
	if t == nil || key == "" {
		return val, false
	}
	return t.bucket(key).Find(key)
}

// Remove deletes key and returns the value it held.
func (t *Table[V]) Remove(key string) (val V, ok bool) {
	if t == nil || key == "" {
		return val, false
	}
	val, ok = t.bucket(key).Remove(key)
	if ok {
		t.n--
	}
	return val, ok
}

// RemoveAny deletes the oldest entry of the last bucket, whichever key that is,
// and applies destroy to its value. It reports whether anything was removed.
//
// The removed key is unrelated to any recency order kept outside the table;
// use Remove when a specific key has to go.
func (t *Table[V]) RemoveAny(destroy func(V)) bool {
	if t == nil {
		return false
	}
	if _, _, ok := t.buckets[len(t.buckets)-1].RemoveLast(destroy); !ok {
		return false
	}
	t.n--
	return true
}

// DeleteAll removes every entry, applying destroy to each value exactly once.
// The table keeps its buckets and can be reused.
func (t *Table[V]) DeleteAll(destroy func(V)) {
	if t == nil {
		return
	}
	for _, b := range t.buckets {
		b.Clear(destroy)
	}
	t.n = 0
}

// Iterate calls fn for every entry, bucket by bucket. The order is unspecified.
func (t *Table[V]) Iterate(fn func(key string, val V)) {
	if t == nil || fn == nil {
		return
	}
	for _, b := range t.buckets {
		b.Each(fn)
	}
}

// Print hands every entry to fn together with w. A nil table prints "(null)".
func (t *Table[V]) Print(w io.Writer, fn func(w io.Writer, key string, val V)) {
	if w == nil {
		return
	}
	if t == nil {
		_, _ = io.WriteString(w, "(null)")
		return
	}
	if fn == nil {
		return
	}
	t.Iterate(func(key string, val V) { fn(w, key, val) })
}

func (t *Table[V]) bucket(key string) *ds.List[V] {
	return t.buckets[t.router.GetShardForKey(key)]
}
