// Package kv defines the origin store a cache Loader reads through.
package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/codewandler/hashlru/internal/codec"
)

var (
	ErrNotFound = errors.New("not found")
)

type Entry struct {
	Data []byte
}

// Store is a remote or local byte store addressed by string keys.
type Store interface {
	Put(ctx context.Context, key string, entry Entry) error
	// Get returns ErrNotFound for a missing key.
	Get(ctx context.Context, key string) (Entry, error)
	Delete(ctx context.Context, key string) error
}

var defaultCodec codec.Codec = codec.JSON{}

// Put encodes v and stores it under key.
func Put[T any](ctx context.Context, store Store, key string, v T) error {
	data, err := defaultCodec.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Put(ctx, key, Entry{Data: data})
}

// Get loads and decodes the value stored under key.
func Get[T any](ctx context.Context, store Store, key string) (out T, err error) {
	entry, err := store.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if err = defaultCodec.Unmarshal(entry.Data, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

// Loader adapts store to a cache load function (cache.LoadFunc[T]).
func Loader[T any](store Store) func(ctx context.Context, key string) (T, error) {
	return func(ctx context.Context, key string) (T, error) {
		return Get[T](ctx, store, key)
	}
}
