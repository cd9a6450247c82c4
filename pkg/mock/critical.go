package mock

import (
	"sync/atomic"

	"github.com/fako1024/foodscale/pkg/scale"
)

// CriticalSection denotes a mock critical section tracking whether edges are suspended
type CriticalSection struct {
	entered atomic.Int64
	active  atomic.Bool
}

// Ensure CriticalSection implements scale.CriticalSection
var _ scale.CriticalSection = (*CriticalSection)(nil)

// Enter marks edge delivery as suspended until the returned function is called
func (c *CriticalSection) Enter() func() {
	c.entered.Add(1)
	c.active.Store(true)
	return func() {
		c.active.Store(false)
	}
}

// Active returns if edge delivery is currently suspended
func (c *CriticalSection) Active() bool {
	return c.active.Load()
}

// Entered returns how often the critical section was entered
func (c *CriticalSection) Entered() int {
	return int(c.entered.Load())
}
