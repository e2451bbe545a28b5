package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func recencyKeys[V any](r *recency[V]) []string {
	var keys []string
	r.each(func(key string, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

func TestRecency(t *testing.T) {
	r := newRecency[int](4)
	a := r.pushFront("a", 1)
	b := r.pushFront("b", 2)
	c := r.pushFront("c", 3)
	require.Equal(t, []string{"c", "b", "a"}, recencyKeys(&r))
	require.Equal(t, a, r.tail)
	require.Equal(t, c, r.head)

	r.moveToFront(a)
	require.Equal(t, []string{"a", "c", "b"}, recencyKeys(&r))
	require.Equal(t, b, r.tail)

	r.moveToFront(a)
	require.Equal(t, []string{"a", "c", "b"}, recencyKeys(&r))

	r.remove(c)
	require.Equal(t, []string{"a", "b"}, recencyKeys(&r))
	require.Equal(t, 2, r.len())

	// freed slot is reused
	d := r.pushFront("d", 4)
	require.Equal(t, c, d)
	require.Len(t, r.nodes, 3)
	require.Equal(t, []string{"d", "a", "b"}, recencyKeys(&r))

	r.remove(b)
	r.remove(d)
	r.remove(a)
	require.Equal(t, 0, r.len())
	require.Equal(t, noSlot, r.head)
	require.Equal(t, noSlot, r.tail)
	require.Empty(t, recencyKeys(&r))
}

func TestRecency_EachStops(t *testing.T) {
	r := newRecency[int](3)
	r.pushFront("a", 1)
	r.pushFront("b", 2)
	r.pushFront("c", 3)

	var seen []string
	r.each(func(key string, _ int) bool {
		seen = append(seen, key)
		return len(seen) < 2
	})
	require.Equal(t, []string{"c", "b"}, seen)
}

func TestRecency_Reset(t *testing.T) {
	r := newRecency[*int](2)
	v := 1
	r.pushFront("a", &v)
	r.pushFront("b", &v)
	r.remove(r.tail)
	r.reset()

	require.Equal(t, 0, r.len())
	require.Empty(t, r.nodes)
	require.Empty(t, r.free)
	require.Equal(t, noSlot, r.head)

	i := r.pushFront("c", &v)
	require.Equal(t, int32(0), i)
	require.Equal(t, []string{"c"}, recencyKeys(&r))
}
