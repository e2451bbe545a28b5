package cache

import (
	"io"
	"sync"
)

// Synchronized guards an LRU with a single mutex.
type Synchronized[V any] struct {
	mu  sync.Mutex
	lru *LRU[V]
}

func NewSynchronized[V any](opts LRUOpts[V]) (*Synchronized[V], error) {
	lru, err := NewLRU(opts)
	if err != nil {
		return nil, err
	}
	return &Synchronized[V]{lru: lru}, nil
}

func (s *Synchronized[V]) Add(key string, val V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Add(key, val)
}

func (s *Synchronized[V]) Insert(key string, val V) bool {
	return s.Add(key, val) == nil
}

// Find takes the write lock because promotion may reorder the list.
func (s *Synchronized[V]) Find(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Find(key)
}

func (s *Synchronized[V]) Remove(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Remove(key)
}

func (s *Synchronized[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

func (s *Synchronized[V]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Keys()
}

// Iterate holds the lock for the whole walk; fn must not call back into s.
func (s *Synchronized[V]) Iterate(fn func(key string, val V)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Iterate(fn)
}

func (s *Synchronized[V]) Print(w io.Writer, fn func(w io.Writer, key string, val V)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Print(w, fn)
}

func (s *Synchronized[V]) Delete(destroy func(V)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Delete(destroy)
}

var _ Cache[any] = (*Synchronized[any])(nil)
