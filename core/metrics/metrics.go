// Package metrics holds the backend-neutral instrumentation types shared by
// the cache packages. Adapters (see adapters/prometheus) provide real ones.
package metrics

// Timer measures one operation. Call ObserveDuration when it completes.
type Timer interface {
	ObserveDuration()
}

type nopTimer struct{}

func (nopTimer) ObserveDuration() {}

// NopTimer returns a Timer that records nothing.
func NopTimer() Timer { return nopTimer{} }
