package input

import (
	"sync"

	"github.com/fako1024/foodscale/pkg/scale"
)

// Gate emulates interrupt masking on a host: edges are delivered concurrently
// with each other, but never while a critical section is active. Edges arriving
// during a critical section are held and delivered once it ends
type Gate struct {
	mu sync.RWMutex
}

// Ensure Gate implements scale.CriticalSection
var _ scale.CriticalSection = (*Gate)(nil)

// NewGate instantiates a new Gate
func NewGate() *Gate {
	return &Gate{}
}

// Enter suspends edge delivery until the returned function is called
func (g *Gate) Enter() func() {
	g.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(g.mu.Unlock)
	}
}

func (g *Gate) deliver(fn func()) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	fn()
}
