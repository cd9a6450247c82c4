package input

import (
	"github.com/fako1024/foodscale/pkg/debounce"
	"github.com/fako1024/foodscale/pkg/scale"
)

// WithDebouncer sets the debouncer used to filter edges
func WithDebouncer(d *debounce.Debouncer) func(*Controller) {
	return func(c *Controller) {
		c.debouncer = d
	}
}

// WithClock sets the millisecond clock used to timestamp edges
func WithClock(now func() int64) func(*Controller) {
	return func(c *Controller) {
		c.now = now
	}
}

// WithGate routes all edges through the given gate, holding them while a
// critical section is active
func WithGate(g *Gate) func(*Controller) {
	return func(c *Controller) {
		c.gate = g
	}
}

// WithRecorder sets the recorder notified about accepted / rejected edges
func WithRecorder(r scale.Recorder) func(*Controller) {
	return func(c *Controller) {
		if r != nil {
			c.recorder = r
		}
	}
}
