// Package debounce suppresses repeated edge triggers of an input source within
// a fixed window. It is safe for use from interrupt context: each source owns a
// single atomic timestamp, and no call blocks or allocates.
package debounce

import (
	"math"
	"sync/atomic"
	"time"
)

// DefaultWindow is the minimum time between two accepted edges of the same source
const DefaultWindow = 200 * time.Millisecond

// MaxSources is the maximum number of distinct input sources
const MaxSources = 8

const never = math.MinInt64

// Source identifies an input source
type Source int

// Debouncer keeps the last accepted edge time per source
type Debouncer struct {
	windowMillis int64
	last         [MaxSources]atomic.Int64
}

// New instantiates a new Debouncer, executing functional options, if any
func New(options ...func(*Debouncer)) *Debouncer {
	d := &Debouncer{
		windowMillis: DefaultWindow.Milliseconds(),
	}
	for i := range d.last {
		d.last[i].Store(never)
	}

	for _, option := range options {
		option(d)
	}

	return d
}

// WithWindow sets the debounce window
func WithWindow(window time.Duration) func(*Debouncer) {
	return func(d *Debouncer) {
		if window >= 0 {
			d.windowMillis = window.Milliseconds()
		}
	}
}

// Window returns the debounce window
func (d *Debouncer) Window() time.Duration {
	return time.Duration(d.windowMillis) * time.Millisecond
}

// ShouldAccept returns true and records the edge time iff more than the window
// has passed since the last accepted edge of the source. Rejected edges leave
// the state untouched. Unknown sources are always rejected
func (d *Debouncer) ShouldAccept(src Source, nowMillis int64) bool {
	if src < 0 || int(src) >= MaxSources {
		return false
	}

	slot := &d.last[src]
	last := slot.Load()
	if last != never && nowMillis-last <= d.windowMillis {
		return false
	}

	// A concurrent edge of the same source may have won the slot in between
	return slot.CompareAndSwap(last, nowMillis)
}

// Reset forgets all accepted edges
func (d *Debouncer) Reset() {
	for i := range d.last {
		d.last[i].Store(never)
	}
}
