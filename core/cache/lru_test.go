package cache

import (
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codewandler/hashlru/core/metrics"
)

// requireConsistent checks that the recency list and the index hold the same
// keys and that every index entry points at its own list slot.
func requireConsistent[V any](t *testing.T, c *LRU[V]) {
	t.Helper()

	var listKeys []string
	c.list.each(func(key string, _ V) bool {
		listKeys = append(listKeys, key)
		return true
	})
	var indexKeys []string
	c.index.Iterate(func(key string, i int32) {
		indexKeys = append(indexKeys, key)
		require.Equal(t, key, c.list.at(i).key)
	})
	sort.Strings(listKeys)
	sort.Strings(indexKeys)
	require.Equal(t, listKeys, indexKeys)
	require.Equal(t, c.list.len(), c.index.Len())
	require.LessOrEqual(t, c.Len(), c.Cap())
}

type recordingMetrics struct {
	mu                            sync.Mutex
	hits, misses, inserts, evicts int
	rejected                      map[string]int
	size                          map[string]int
	loads                         int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{rejected: map[string]int{}, size: map[string]int{}}
}

func (m *recordingMetrics) Hit(string) {
	m.mu.Lock()
	m.hits++
	m.mu.Unlock()
}

func (m *recordingMetrics) Miss(string) {
	m.mu.Lock()
	m.misses++
	m.mu.Unlock()
}

func (m *recordingMetrics) Inserted(string) {
	m.mu.Lock()
	m.inserts++
	m.mu.Unlock()
}

func (m *recordingMetrics) Evicted(string) {
	m.mu.Lock()
	m.evicts++
	m.mu.Unlock()
}

func (m *recordingMetrics) Rejected(_ string, reason string) {
	m.mu.Lock()
	m.rejected[reason]++
	m.mu.Unlock()
}

func (m *recordingMetrics) Size(cache string, n int) {
	m.mu.Lock()
	m.size[cache] = n
	m.mu.Unlock()
}

func (m *recordingMetrics) LoadDuration(string) metrics.Timer {
	m.mu.Lock()
	m.loads++
	m.mu.Unlock()
	return metrics.NopTimer()
}

func TestNew(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		c, err := New[int](capacity)
		require.ErrorIs(t, err, ErrInvalidCapacity)
		require.Nil(t, c)
	}

	c, err := New[int](3)
	require.NoError(t, err)
	require.Equal(t, 0, c.Len())
	require.Equal(t, 3, c.Cap())
	require.Empty(t, c.Keys())
}

func TestLRU_Scenario(t *testing.T) {
	c, err := New[int](2)
	require.NoError(t, err)

	require.True(t, c.Insert("a", 1))
	require.True(t, c.Insert("b", 2))
	require.True(t, c.Insert("c", 3))

	_, ok := c.Find("a")
	require.False(t, ok)
	v, ok := c.Find("b")
	require.True(t, ok)
	require.Equal(t, 2, v)
	v, ok = c.Find("c")
	require.True(t, ok)
	require.Equal(t, 3, v)

	require.Equal(t, []string{"c", "b"}, c.Keys())
	requireConsistent(t, c)
}

func TestLRU_EvictionOrder(t *testing.T) {
	const capacity = 5
	c, err := New[int](capacity)
	require.NoError(t, err)

	for i := 1; i <= capacity+1; i++ {
		require.True(t, c.Insert(fmt.Sprintf("k%d", i), i))
		require.LessOrEqual(t, c.Len(), capacity)
	}

	_, ok := c.Find("k1")
	require.False(t, ok)
	for i := 2; i <= capacity+1; i++ {
		v, ok := c.Find(fmt.Sprintf("k%d", i))
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	requireConsistent(t, c)
}

func TestLRU_FindDoesNotPromote(t *testing.T) {
	c, err := New[int](2)
	require.NoError(t, err)
	c.Insert("a", 1)
	c.Insert("b", 2)

	_, ok := c.Find("a")
	require.True(t, ok)

	c.Insert("c", 3)
	_, ok = c.Find("a")
	require.False(t, ok, "a was inserted first and reads do not promote")
	_, ok = c.Find("b")
	require.True(t, ok)
}

func TestLRU_PromoteOnFind(t *testing.T) {
	c, err := NewLRU(LRUOpts[int]{Capacity: 2, PromoteOnFind: true})
	require.NoError(t, err)
	c.Insert("a", 1)
	c.Insert("b", 2)

	_, ok := c.Find("a")
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, c.Keys())

	c.Insert("c", 3)
	_, ok = c.Find("b")
	require.False(t, ok, "b is least recently used after a was read")
	_, ok = c.Find("a")
	require.True(t, ok)
	requireConsistent(t, c)
}

func TestLRU_Duplicate(t *testing.T) {
	t.Run("not full", func(t *testing.T) {
		c, err := New[string](3)
		require.NoError(t, err)
		require.True(t, c.Insert("a", "first"))
		require.ErrorIs(t, c.Add("a", "second"), ErrDuplicateKey)
		require.False(t, c.Insert("a", "third"))

		require.Equal(t, 1, c.Len())
		v, _ := c.Find("a")
		require.Equal(t, "first", v)
		requireConsistent(t, c)
	})

	t.Run("full cache evicts nothing", func(t *testing.T) {
		c, err := New[int](2)
		require.NoError(t, err)
		c.Insert("a", 1)
		c.Insert("b", 2)

		require.False(t, c.Insert("b", 20))
		require.Equal(t, []string{"b", "a"}, c.Keys())
		_, ok := c.Find("a")
		require.True(t, ok)
		requireConsistent(t, c)
	})
}

func TestLRU_InvalidArguments(t *testing.T) {
	c, err := New[*int](2)
	require.NoError(t, err)
	one := 1

	require.ErrorIs(t, c.Add("", &one), ErrEmptyKey)
	require.ErrorIs(t, c.Add("a", nil), ErrNilValue)
	require.Equal(t, 0, c.Len())

	var nilCache *LRU[*int]
	require.ErrorIs(t, nilCache.Add("a", &one), ErrNilCache)
	require.False(t, nilCache.Insert("a", &one))

	anyCache, err := New[any](1)
	require.NoError(t, err)
	require.False(t, anyCache.Insert("a", nil))
	require.True(t, anyCache.Insert("a", 0), "zero is a value, not nil")
}

func TestLRU_Miss(t *testing.T) {
	c, err := New[int](2)
	require.NoError(t, err)
	_, ok := c.Find("never")
	require.False(t, ok)
	_, ok = c.Find("")
	require.False(t, ok)

	var nilCache *LRU[int]
	_, ok = nilCache.Find("a")
	require.False(t, ok)
}

func TestLRU_Remove(t *testing.T) {
	var evicted []string
	c, err := NewLRU(LRUOpts[int]{
		Capacity: 2,
		OnEvict:  func(key string, _ int) { evicted = append(evicted, key) },
	})
	require.NoError(t, err)
	c.Insert("a", 1)
	c.Insert("b", 2)

	v, ok := c.Remove("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	_, ok = c.Remove("a")
	require.False(t, ok)
	require.Equal(t, 1, c.Len())

	c.Insert("c", 3)
	require.Empty(t, evicted, "removal freed a slot")
	requireConsistent(t, c)

	c.Insert("d", 4)
	require.Equal(t, []string{"b"}, evicted)
	requireConsistent(t, c)
}

func TestLRU_Iterate(t *testing.T) {
	c, err := New[int](3)
	require.NoError(t, err)
	c.Insert("a", 1)
	c.Insert("b", 2)
	c.Insert("c", 3)

	type kv struct {
		k string
		v int
	}
	var got []kv
	c.Iterate(func(key string, val int) { got = append(got, kv{key, val}) })
	require.Equal(t, []kv{{"c", 3}, {"b", 2}, {"a", 1}}, got)

	c.Iterate(nil)
	var nilCache *LRU[int]
	nilCache.Iterate(func(string, int) { t.Fatal("nil cache") })
}

func TestLRU_Print(t *testing.T) {
	c, err := New[int](3)
	require.NoError(t, err)
	c.Insert("a", 1)
	c.Insert("b", 2)

	var buf bytes.Buffer
	c.Print(&buf, func(w io.Writer, key string, val int) { fmt.Fprintf(w, "%s:%d\n", key, val) })
	require.Equal(t, "b:2\na:1\n", buf.String())

	buf.Reset()
	c.Print(&buf, nil)
	require.Empty(t, buf.String())

	c.Print(nil, func(io.Writer, string, int) { t.Fatal("nil sink") })

	var nilCache *LRU[int]
	nilCache.Print(&buf, nil)
	require.Equal(t, "(null)", buf.String())
}

func TestLRU_Delete(t *testing.T) {
	destroyed := map[int]int{}
	destroy := func(v int) { destroyed[v]++ }

	c, err := NewLRU(LRUOpts[int]{
		Capacity: 3,
		OnEvict:  func(_ string, v int) { destroy(v) },
	})
	require.NoError(t, err)

	const n = 10
	for i := range n {
		require.True(t, c.Insert(fmt.Sprintf("k%d", i), i))
	}
	c.Delete(destroy)

	require.Len(t, destroyed, n)
	for v, count := range destroyed {
		require.Equal(t, 1, count, "value %d destroyed %d times", v, count)
	}
	require.Equal(t, 0, c.Len())
	require.Empty(t, c.Keys())
	requireConsistent(t, c)

	// usable again
	require.True(t, c.Insert("k1", 100))
	v, ok := c.Find("k1")
	require.True(t, ok)
	require.Equal(t, 100, v)

	c.Delete(nil)
	var nilCache *LRU[int]
	nilCache.Delete(destroy)
}

func TestLRU_Metrics(t *testing.T) {
	m := newRecordingMetrics()
	c, err := NewLRU(LRUOpts[int]{Capacity: 1, Name: "test", Metrics: m})
	require.NoError(t, err)

	c.Insert("a", 1)
	c.Insert("a", 2)
	c.Insert("", 3)
	c.Insert("b", 4)
	c.Find("b")
	c.Find("a")

	require.Equal(t, 2, m.inserts)
	require.Equal(t, 1, m.evicts)
	require.Equal(t, 1, m.hits)
	require.Equal(t, 1, m.misses)
	require.Equal(t, map[string]int{"duplicate_key": 1, "empty_key": 1}, m.rejected)
	require.Equal(t, 1, m.size["test"])
}

func TestLRU_RandomOps(t *testing.T) {
	const capacity = 8
	for _, promote := range []bool{false, true} {
		t.Run(fmt.Sprintf("promote=%v", promote), func(t *testing.T) {
			c, err := NewLRU(LRUOpts[int]{Capacity: capacity, PromoteOnFind: promote})
			require.NoError(t, err)

			// model: keys in recency order, most recent first
			var model []string
			values := map[string]int{}
			moveFront := func(key string) {
				for i, k := range model {
					if k == key {
						model = append(model[:i], model[i+1:]...)
						break
					}
				}
				model = append([]string{key}, model...)
			}

			rnd := rand.New(rand.NewPCG(1, 2))
			for step := range 2000 {
				key := fmt.Sprintf("k%d", rnd.IntN(20))
				switch rnd.IntN(3) {
				case 0:
					_, resident := values[key]
					require.Equal(t, !resident, c.Insert(key, step))
					if !resident {
						if len(model) == capacity {
							delete(values, model[len(model)-1])
							model = model[:len(model)-1]
						}
						values[key] = step
						moveFront(key)
					}
				case 1:
					v, ok := c.Find(key)
					want, resident := values[key]
					require.Equal(t, resident, ok)
					if ok {
						require.Equal(t, want, v)
						if promote {
							moveFront(key)
						}
					}
				case 2:
					_, ok := c.Remove(key)
					_, resident := values[key]
					require.Equal(t, resident, ok)
					if ok {
						delete(values, key)
						for i, k := range model {
							if k == key {
								model = append(model[:i], model[i+1:]...)
								break
							}
						}
					}
				}
				if len(model) == 0 {
					require.Empty(t, c.Keys())
				} else {
					require.Equal(t, model, c.Keys())
				}
				requireConsistent(t, c)
			}
		})
	}
}
