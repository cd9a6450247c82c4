// Package hx711 reads an HX711 load cell amplifier by bit-banging its two wire
// serial interface.
package hx711

import (
	"errors"
	"time"

	"github.com/fako1024/foodscale/pkg/scale"
)

const (
	dataBits = 24

	defaultTimeout = 200 * time.Millisecond
	pollInterval   = time.Millisecond
)

// ErrTimeout is returned if the amplifier does not finish a conversion in time
var ErrTimeout = errors.New("hx711: conversion timed out")

// Gain denotes the channel / gain selected for the next conversion
type Gain int

const (

	// GainA128 selects channel A with a gain of 128
	GainA128 Gain = iota

	// GainB32 selects channel B with a gain of 32
	GainB32

	// GainA64 selects channel A with a gain of 64
	GainA64
)

// pulses returns the number of clock pulses needed to select the gain
func (g Gain) pulses() int {
	return dataBits + 1 + int(g)
}

// InputPin denotes the data (DOUT) line
type InputPin interface {
	Get() bool
}

// OutputPin denotes the clock (PD_SCK) line
type OutputPin interface {
	High()
	Low()
}

// Device denotes an HX711 attached to two GPIO lines
type Device struct {
	data    InputPin
	clock   OutputPin
	gain    Gain
	timeout time.Duration
	guard   func() (restore func())
	sleep   func(time.Duration)

	last int64
}

// Ensure Device implements scale.ForceSensor
var _ scale.ForceSensor = (*Device)(nil)

// New instantiates a new Device on the given lines, executing functional options, if any
func New(data InputPin, clock OutputPin, options ...func(*Device)) *Device {
	d := &Device{
		data:    data,
		clock:   clock,
		gain:    GainA128,
		timeout: defaultTimeout,
		guard: func() func() {
			return func() {}
		},
		sleep: time.Sleep,
	}

	for _, option := range options {
		option(d)
	}

	d.clock.Low()

	return d
}

// WithGain sets the channel / gain
func WithGain(g Gain) func(*Device) {
	return func(d *Device) {
		d.gain = g
	}
}

// WithTimeout sets how long to wait for a conversion
func WithTimeout(timeout time.Duration) func(*Device) {
	return func(d *Device) {
		d.timeout = timeout
	}
}

// WithInterruptGuard sets the function used to suspend interrupts while a
// value is shifted out. A clock pulse held high for more than 60µs powers the
// amplifier down
func WithInterruptGuard(guard func() (restore func())) func(*Device) {
	return func(d *Device) {
		if guard != nil {
			d.guard = guard
		}
	}
}

// Ready returns whether a conversion is available
func (d *Device) Ready() bool {
	return !d.data.Get()
}

// Read waits for a conversion and returns the signed raw value
func (d *Device) Read() (int64, error) {
	for waited := time.Duration(0); !d.Ready(); waited += pollInterval {
		if waited >= d.timeout {
			return 0, ErrTimeout
		}
		d.sleep(pollInterval)
	}

	restore := d.guard()
	var word uint32
	for i := 0; i < d.gain.pulses(); i++ {
		d.clock.High()
		if i < dataBits {
			word <<= 1
			if d.data.Get() {
				word |= 1
			}
		}
		d.clock.Low()
	}
	restore()

	return signExtend(word), nil
}

// RawAverage returns the average of the given number of conversions. A timed
// out conversion counts as the last value read
func (d *Device) RawAverage(samples int) int64 {
	if samples <= 0 {
		samples = 1
	}

	var sum int64
	for i := 0; i < samples; i++ {
		v, err := d.Read()
		if err == nil {
			d.last = v
		}
		sum += d.last
	}

	return sum / int64(samples)
}

// PowerDown puts the amplifier into power down mode
func (d *Device) PowerDown() {
	d.clock.Low()
	d.clock.High()
	d.sleep(100 * time.Microsecond)
}

// PowerUp wakes the amplifier, the next conversion uses channel A / gain 128
func (d *Device) PowerUp() {
	d.clock.Low()
}

////////////////////////////////////////////////////////////////////////////////

func signExtend(word uint32) int64 {
	v := int64(word & 0xFFFFFF)
	if v&0x800000 != 0 {
		v -= 1 << dataBits
	}
	return v
}
