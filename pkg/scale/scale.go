package scale

import (
	"context"
	"time"
)

// ForceSensor denotes a load cell amplifier delivering raw (uncalibrated) samples
type ForceSensor interface {

	// RawAverage returns the average of the given number of raw samples
	RawAverage(samples int) int64
}

// Display denotes a fixed-width, row based text surface
type Display interface {

	// ClearRow blanks the full width of a row
	ClearRow(row int)

	// WriteAt writes text at the given row / column
	WriteAt(row, col int, text string)
}

// Network denotes the network stack used to transmit a reading
type Network interface {

	// Associate attempts to join the network, returning true once associated
	Associate(ctx context.Context, creds Credentials) bool

	// Post issues a single blocking POST request and returns the status code
	Post(ctx context.Context, url string, headers map[string]string, body []byte) (int, error)

	// Disconnect tears down the association
	Disconnect() error
}

// CriticalSection denotes a way to suspend the delivery of input edges
type CriticalSection interface {

	// Enter suspends edge delivery until the returned function is called
	Enter() (exit func())
}

// Recorder denotes a sink for operational measurements
type Recorder interface {

	// EdgeAccepted records an input edge that passed the debouncer
	EdgeAccepted(action Action)

	// EdgeRejected records an input edge that was suppressed as bounce
	EdgeRejected(action Action)

	// RowRendered records a redraw of a display row
	RowRendered(row int)

	// WeightMeasured records the most recent weight reading
	WeightMeasured(grams int)

	// SendCompleted records the outcome of a send session
	SendCompleted(status int, err error, elapsed time.Duration)
}

// NullRecorder denotes a null-op recorder that discards all measurements
type NullRecorder struct{}

func (NullRecorder) EdgeAccepted(Action) {}

func (NullRecorder) EdgeRejected(Action) {}

func (NullRecorder) RowRendered(int) {}

func (NullRecorder) WeightMeasured(int) {}

func (NullRecorder) SendCompleted(int, error, time.Duration) {}
