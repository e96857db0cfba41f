package apiclient

import (
	"sync"
	"sync/atomic"
)

// Tracker counts requests that have been dispatched and not yet resolved.
//
// Every Begin must be matched by exactly one call of the release function it returns; the
// release is idempotent, so the count can neither leak nor drop below zero.
type Tracker struct {
	n atomic.Int64
}

// defaultTracker is the process-wide counter behind IsLoading. It starts at zero and is never reset.
var defaultTracker = &Tracker{}

// DefaultTracker returns the process-wide tracker shared by clients built without WithTracker.
func DefaultTracker() *Tracker { return defaultTracker }

// IsLoading reports whether any request issued through the process-wide tracker is in flight.
func IsLoading() bool { return defaultTracker.Busy() }

// Begin records one more request in flight and returns the function that records its resolution.
func (t *Tracker) Begin() (release func()) {
	t.n.Add(1)
	var once sync.Once
	return func() {
		once.Do(func() { t.n.Add(-1) })
	}
}

// InFlight returns the number of outstanding requests.
func (t *Tracker) InFlight() int64 { return t.n.Load() }

// Busy reports whether at least one request is outstanding.
func (t *Tracker) Busy() bool { return t.n.Load() > 0 }
