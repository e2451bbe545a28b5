package cache

import "errors"

var (
	ErrInvalidCapacity = errors.New("cache: capacity must be positive")
	ErrNilCache        = errors.New("cache: nil cache")
	ErrEmptyKey        = errors.New("cache: empty key")
	ErrNilValue        = errors.New("cache: nil value")
	ErrDuplicateKey    = errors.New("cache: key already present")
)

// Cache is the surface shared by [LRU], [Synchronized], [Sharded] and [Nop].
type Cache[V any] interface {
	// Insert admits a new key. It returns false for an empty key, a nil value
	// or a key that is already resident, leaving the cache unchanged.
	Insert(key string, val V) bool
	Find(key string) (V, bool)
	Remove(key string) (V, bool)
	Len() int
}

// rejectReason is the metrics label for an Add error.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrEmptyKey):
		return "empty_key"
	case errors.Is(err, ErrNilValue):
		return "nil_value"
	case errors.Is(err, ErrDuplicateKey):
		return "duplicate_key"
	default:
		return "other"
	}
}
