package cache

import "github.com/codewandler/hashlru/core/metrics"

// Metrics receives cache events. Every method is labeled with the cache name
// set in the options; implementations must be safe for concurrent use.
type Metrics interface {
	Hit(cache string)
	Miss(cache string)
	Inserted(cache string)
	Evicted(cache string)
	Rejected(cache string, reason string)
	Size(cache string, n int)

	// LoadDuration times one origin load of a Loader.
	LoadDuration(cache string) metrics.Timer
}

type nopMetrics struct{}

func (nopMetrics) Hit(string)              {}
func (nopMetrics) Miss(string)             {}
func (nopMetrics) Inserted(string)         {}
func (nopMetrics) Evicted(string)          {}
func (nopMetrics) Rejected(string, string) {}
func (nopMetrics) Size(string, int)        {}

func (nopMetrics) LoadDuration(string) metrics.Timer { return metrics.NopTimer() }

// NopMetrics returns a Metrics that discards everything.
func NopMetrics() Metrics { return nopMetrics{} }
