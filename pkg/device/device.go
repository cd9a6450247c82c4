// Package device implements the polling main loop of the scale: it consumes
// requests raised by the input handlers, samples the weight, updates the
// display and runs the send session on demand.
package device

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fako1024/foodscale/pkg/display"
	"github.com/fako1024/foodscale/pkg/input"
	"github.com/fako1024/foodscale/pkg/scale"
	"github.com/fako1024/foodscale/pkg/session"
)

const (

	// DefaultPollInterval is the pause between two loop iterations
	DefaultPollInterval = 10 * time.Millisecond

	splashTop    = "Food Scale"
	splashBottom = "Starting..."
)

// Status denotes a snapshot of what the device currently shows
type Status struct {
	Weight   int
	Category scale.Category
	Session  session.State
	Pending  bool
}

// Device ties the main loop components together
type Device struct {
	state     *input.State
	reader    *scale.Reader
	presenter *display.Presenter
	session   *session.Session

	pollInterval time.Duration
	weight       atomic.Int64

	logger   scale.Logger
	recorder scale.Recorder
}

// New instantiates a new Device, executing functional options, if any
func New(state *input.State, reader *scale.Reader, presenter *display.Presenter, sess *session.Session, options ...func(*Device)) (*Device, error) {
	if state == nil || reader == nil || presenter == nil || sess == nil {
		return nil, errors.New("device requires a shared state, a reader, a presenter and a session")
	}

	d := &Device{
		state:        state,
		reader:       reader,
		presenter:    presenter,
		session:      sess,
		pollInterval: DefaultPollInterval,
		logger:       &scale.NullLogger{},
		recorder:     scale.NullRecorder{},
	}

	for _, option := range options {
		option(d)
	}

	return d, nil
}

// WithPollInterval sets the pause between two loop iterations
func WithPollInterval(interval time.Duration) func(*Device) {
	return func(d *Device) {
		if interval > 0 {
			d.pollInterval = interval
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger scale.Logger) func(*Device) {
	return func(d *Device) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithRecorder sets the recorder notified about weight readings
func WithRecorder(r scale.Recorder) func(*Device) {
	return func(d *Device) {
		if r != nil {
			d.recorder = r
		}
	}
}

// Run shows the splash screen, then polls until the context is done
func (d *Device) Run(ctx context.Context) error {
	d.presenter.Splash(splashTop, splashBottom)
	d.logger.Infof("main loop started, polling every %v", d.pollInterval)

	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		d.Step(ctx)

		select {
		case <-ctx.Done():
			d.logger.Infof("main loop stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Step runs a single iteration of the main loop
func (d *Device) Step(ctx context.Context) {
	if d.state.TakeTare() {
		d.reader.Tare()
		d.logger.Infof("tared scale at raw offset %d", d.reader.TareOffset())
	}

	weight := d.reader.Read()
	d.weight.Store(int64(weight))
	d.recorder.WeightMeasured(weight)

	d.presenter.Update(d.state.Category(), weight)

	if d.state.SendRequested() {
		category := d.state.Category()
		d.logger.Debugf("send requested (%dg of %s)", weight, category.Name)
		d.session.Run(ctx)
	}
}

// Status returns what the device currently shows
func (d *Device) Status() Status {
	return Status{
		Weight:   int(d.weight.Load()),
		Category: d.state.Category(),
		Session:  d.session.State(),
		Pending:  d.state.SendRequested(),
	}
}
