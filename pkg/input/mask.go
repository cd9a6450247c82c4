package input

import (
	"sync"
	"sync/atomic"

	"github.com/fako1024/foodscale/pkg/scale"
)

// EdgeHandler denotes a consumer of button edges
type EdgeHandler interface {
	Handle(action scale.Action) bool
}

// Mask is the counterpart of Gate for interrupt context on a single core: an
// edge arriving while a critical section is active never blocks, it is marked
// pending instead (at most once per action, like a pending interrupt flag) and
// replayed once the critical section ends
type Mask struct {
	handler EdgeHandler
	masked  atomic.Bool
	pending atomic.Uint32
	guard   func() (restore func())
}

// Ensure Mask implements scale.CriticalSection
var _ scale.CriticalSection = (*Mask)(nil)

// NewMask instantiates a new Mask in front of the given handler, executing functional options, if any
func NewMask(handler EdgeHandler, options ...func(*Mask)) *Mask {
	m := &Mask{
		handler: handler,
		guard: func() func() {
			return func() {}
		},
	}

	for _, option := range options {
		option(m)
	}

	return m
}

// WithInterruptGuard sets the function used to briefly suspend interrupts
// while the mask is toggled
func WithInterruptGuard(guard func() (restore func())) func(*Mask) {
	return func(m *Mask) {
		if guard != nil {
			m.guard = guard
		}
	}
}

// Handle forwards an edge to the handler or marks it pending while masked
func (m *Mask) Handle(action scale.Action) bool {
	if action < 0 || int(action) >= scale.NumActions {
		return false
	}
	if m.masked.Load() {
		m.markPending(action)
		return false
	}

	return m.handler.Handle(action)
}

// Enter masks edge delivery until the returned function is called
func (m *Mask) Enter() func() {
	restore := m.guard()
	m.masked.Store(true)
	restore()

	var once sync.Once
	return func() {
		once.Do(m.exit)
	}
}

// Pending returns whether an edge of the given action is held
func (m *Mask) Pending(action scale.Action) bool {
	return m.pending.Load()&(1<<uint(action)) != 0
}

////////////////////////////////////////////////////////////////////////////////

func (m *Mask) markPending(action scale.Action) {
	for {
		old := m.pending.Load()
		if m.pending.CompareAndSwap(old, old|1<<uint(action)) {
			return
		}
	}
}

func (m *Mask) exit() {
	restore := m.guard()
	m.masked.Store(false)
	pending := m.pending.Swap(0)
	restore()

	for i := 0; i < scale.NumActions; i++ {
		if pending&(1<<uint(i)) != 0 {
			m.handler.Handle(scale.Action(i))
		}
	}
}
