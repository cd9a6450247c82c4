package scale

import (
	"errors"
	"math"
)

const (

	// DefaultScaleFactor is the number of raw counts per gram of the reference load cell
	DefaultScaleFactor = 2067.

	// DefaultSamples is the number of raw samples averaged per reading
	DefaultSamples = 5
)

// Reader converts raw load cell samples into calibrated weights (in grams). The
// tare offset is owned by the Reader and must only be changed from the main loop
type Reader struct {
	sensor     ForceSensor
	factor     float64
	samples    int
	tareOffset int64
}

// NewReader instantiates a new Reader on top of a force sensor, executing functional options, if any
func NewReader(sensor ForceSensor, options ...func(*Reader)) (*Reader, error) {
	if sensor == nil {
		return nil, errors.New("no force sensor provided")
	}

	r := &Reader{
		sensor:  sensor,
		factor:  DefaultScaleFactor,
		samples: DefaultSamples,
	}

	for _, option := range options {
		option(r)
	}

	if r.factor == 0 || math.IsNaN(r.factor) || math.IsInf(r.factor, 0) {
		return nil, errors.New("invalid scale factor")
	}
	if r.samples <= 0 {
		r.samples = 1
	}

	return r, nil
}

// WithScaleFactor sets the calibration factor (raw counts per gram)
func WithScaleFactor(factor float64) func(*Reader) {
	return func(r *Reader) {
		r.factor = factor
	}
}

// WithSamples sets the number of raw samples averaged per reading
func WithSamples(n int) func(*Reader) {
	return func(r *Reader) {
		r.samples = n
	}
}

// Read takes an averaged sample and returns the calibrated weight in grams
func (r *Reader) Read() int {
	raw := r.sensor.RawAverage(r.samples)
	return int(math.Round(float64(raw-r.tareOffset) / r.factor))
}

// Tare captures the current raw baseline as the new zero
func (r *Reader) Tare() {
	r.tareOffset = r.sensor.RawAverage(r.samples)
}

// TareOffset returns the current raw zero baseline
func (r *Reader) TareOffset() int64 {
	return r.tareOffset
}
