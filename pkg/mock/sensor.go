package mock

import (
	"sync"
	"sync/atomic"

	"github.com/fako1024/foodscale/pkg/scale"
)

// Sensor denotes a mock load cell amplifier returning a settable raw value
type Sensor struct {
	raw   atomic.Int64
	calls atomic.Int64

	mu       sync.Mutex
	sequence []int64
	onSample func(n int64)
}

// Ensure Sensor implements scale.ForceSensor
var _ scale.ForceSensor = (*Sensor)(nil)

// NewSensor instantiates a new mock sensor with the given initial raw value
func NewSensor(raw int64) *Sensor {
	s := &Sensor{}
	s.raw.Store(raw)
	return s
}

// Set changes the raw value returned by subsequent samples
func (s *Sensor) Set(raw int64) {
	s.raw.Store(raw)
}

// Queue schedules raw values that are returned (in order) before falling back to the set value
func (s *Sensor) Queue(raws ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence = append(s.sequence, raws...)
}

// OnSample registers a hook called with the running sample count on each RawAverage call
func (s *Sensor) OnSample(fn func(n int64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSample = fn
}

// RawAverage returns the current raw value
func (s *Sensor) RawAverage(_ int) int64 {
	n := s.calls.Add(1)

	s.mu.Lock()
	hook := s.onSample
	var (
		raw    int64
		queued bool
	)
	if len(s.sequence) > 0 {
		raw, queued = s.sequence[0], true
		s.sequence = s.sequence[1:]
	}
	s.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	if queued {
		return raw
	}
	return s.raw.Load()
}

// Calls returns the number of RawAverage calls so far
func (s *Sensor) Calls() int {
	return int(s.calls.Load())
}
