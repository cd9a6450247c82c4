// Package input dispatches debounced button edges onto the shared state
// polled by the main loop.
package input

import (
	"errors"
	"time"

	"github.com/fako1024/foodscale/pkg/debounce"
	"github.com/fako1024/foodscale/pkg/scale"
)

// Controller binds the four actions to their handlers, gated by a debouncer.
// Handlers only set flags or move the category index, long-running work (tare,
// send) is picked up by the main loop
type Controller struct {
	state     *State
	debouncer *debounce.Debouncer
	gate      *Gate
	recorder  scale.Recorder
	now       func() int64
}

// NewController instantiates a new Controller on the given state, executing functional options, if any
func NewController(state *State, options ...func(*Controller)) (*Controller, error) {
	if state == nil {
		return nil, errors.New("no shared state provided")
	}

	start := time.Now()
	c := &Controller{
		state:    state,
		recorder: scale.NullRecorder{},
		now: func() int64 {
			return time.Since(start).Milliseconds()
		},
	}

	for _, option := range options {
		option(c)
	}

	if c.debouncer == nil {
		c.debouncer = debounce.New()
	}

	return c, nil
}

// Handle processes a single falling edge of the input bound to the action and
// returns whether it was accepted
func (c *Controller) Handle(action scale.Action) (accepted bool) {
	if c.gate != nil {
		c.gate.deliver(func() {
			accepted = c.handle(action)
		})
		return
	}

	return c.handle(action)
}

// Tare handles an edge of the tare button
func (c *Controller) Tare() bool {
	return c.Handle(scale.ActionTare)
}

// Send handles an edge of the send button
func (c *Controller) Send() bool {
	return c.Handle(scale.ActionSend)
}

// Prev handles an edge of the previous category button
func (c *Controller) Prev() bool {
	return c.Handle(scale.ActionPrev)
}

// Next handles an edge of the next category button
func (c *Controller) Next() bool {
	return c.Handle(scale.ActionNext)
}

// State returns the shared state the controller operates on
func (c *Controller) State() *State {
	return c.state
}

////////////////////////////////////////////////////////////////////////////////

func (c *Controller) handle(action scale.Action) bool {
	if !c.debouncer.ShouldAccept(debounce.Source(action), c.now()) {
		c.recorder.EdgeRejected(action)
		return false
	}

	switch action {
	case scale.ActionTare:
		c.state.RequestTare()
	case scale.ActionSend:
		c.state.RequestSend()
	case scale.ActionPrev:
		c.state.Prev()
	case scale.ActionNext:
		c.state.Next()
	default:
		return false
	}

	c.recorder.EdgeAccepted(action)
	return true
}
