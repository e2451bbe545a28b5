// Package sf wraps golang.org/x/sync/singleflight with a typed result.
//
// The cache Loader uses it so that a burst of misses for the same key
// triggers a single origin load:
//
//	flight := sf.New[*User]()
//	u, _, err := flight.Do("user:123", func() (*User, error) {
//	    return store.GetUser(ctx, "123")
//	})
package sf
