package input

import (
	"errors"
	"sync/atomic"

	"github.com/fako1024/foodscale/pkg/scale"
)

// State denotes the state shared between edge handlers and the main loop.
//
// Ownership rules:
//   - the category index is written by edge handlers only, read by everyone
//   - the request flags are set by edge handlers and cleared by the main loop
//   - category names are immutable after construction
type State struct {
	categories []string

	index         atomic.Int32
	sendRequested atomic.Bool
	tareRequested atomic.Bool
}

// NewState instantiates a new shared state on the first of the given categories
func NewState(categories []string) (*State, error) {
	if len(categories) == 0 {
		return nil, errors.New("at least one category is required")
	}

	return &State{
		categories: append([]string(nil), categories...),
	}, nil
}

// Category returns the currently selected category
func (s *State) Category() scale.Category {
	idx := int(s.index.Load())
	return scale.Category{
		Index: idx,
		Name:  s.categories[idx],
	}
}

// Categories returns the number of selectable categories
func (s *State) Categories() int {
	return len(s.categories)
}

// Prev selects the previous category, staying on the first one
func (s *State) Prev() {
	for {
		cur := s.index.Load()
		if cur <= 0 {
			return
		}
		if s.index.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

// Next selects the next category, staying on the last one
func (s *State) Next() {
	last := int32(len(s.categories) - 1)
	for {
		cur := s.index.Load()
		if cur >= last {
			return
		}
		if s.index.CompareAndSwap(cur, cur+1) {
			return
		}
	}
}

// RequestSend flags that a reading should be transmitted
func (s *State) RequestSend() {
	s.sendRequested.Store(true)
}

// SendRequested returns if a transmission is pending
func (s *State) SendRequested() bool {
	return s.sendRequested.Load()
}

// ClearSend acknowledges a pending transmission
func (s *State) ClearSend() {
	s.sendRequested.Store(false)
}

// RequestTare flags that the scale should be zeroed
func (s *State) RequestTare() {
	s.tareRequested.Store(true)
}

// TakeTare returns and clears a pending tare request
func (s *State) TakeTare() bool {
	return s.tareRequested.Swap(false)
}
