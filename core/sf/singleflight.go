package sf

import "golang.org/x/sync/singleflight"

// Singleflight deduplicates concurrent calls that share a key.
type Singleflight[T any] struct {
	group singleflight.Group
}

// Do runs fn for key unless a call for key is already running, in which case
// it waits for that call and returns its result. shared reports whether the
// result was handed to more than one caller.
func (s *Singleflight[T]) Do(key string, fn func() (T, error)) (v T, shared bool, err error) {
	out, err, shared := s.group.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		return v, shared, err
	}
	v, _ = out.(T)
	return v, shared, nil
}

// Forget drops key so the next Do starts a fresh call.
func (s *Singleflight[T]) Forget(key string) { s.group.Forget(key) }

func New[T any]() *Singleflight[T] {
	return &Singleflight[T]{}
}
