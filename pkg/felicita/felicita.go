package felicita

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fako1024/foodscale/pkg/scale"
	"github.com/fako1024/gatt"
)

const (
	defaultDeviceName  = "FELICITA"
	dataService        = "ffe0"
	dataCharacteristic = "ffe1"

	frameLength = 18

	// CountsPerGram is the scale factor to use for readings from a Felicita
	CountsPerGram = 100.

	// ring holds the most recent raw readings
	ringSize = 32
)

// State denotes a connection state
type State int

const (

	// StateScanning is active while scanning for a bluetooth device
	StateScanning State = iota

	// StateConnected is active while being connected to the scale
	StateConnected

	// StateDisconnected is active after being disconnected from the scale
	StateDisconnected
)

// String returns the name of the state
func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Felicita denotes a Felicita bluetooth scale used as remote load cell. It
// reports raw readings in centigrams, so a scale factor of 100 yields grams
type Felicita struct {
	mu       sync.Mutex
	state    State
	ring     [ringSize]int64
	next     int
	received int
	lastSeen time.Time

	deviceID   string
	deviceName string

	doneChan chan struct{}

	btDevice         gatt.Device
	btPeripheral     gatt.Peripheral
	btCharacteristic *gatt.Characteristic

	logger scale.Logger
}

// Ensure Felicita implements scale.ForceSensor
var _ scale.ForceSensor = (*Felicita)(nil)

// New instantiates a new Felicita struct, executing functional options, if any
func New(options ...func(*Felicita)) (*Felicita, error) {

	// Initialize a new instance of a Felicita scale
	f := &Felicita{
		deviceName: defaultDeviceName,
		doneChan:   make(chan struct{}),
		logger:     &scale.NullLogger{},
	}

	// Execute functional options (if any), see options.go for implementation
	for _, option := range options {
		option(f)
	}

	// Initialize a new GATT device (if not provided as option)
	if f.btDevice == nil {
		btDevice, err := gatt.NewDevice(defaultBTClientOptions...)
		if err != nil {
			return nil, err
		}
		f.btDevice = btDevice
	}

	return f, f.subscribe()
}

// RawAverage returns the average of the most recent raw readings (at most the
// ring size). Without any reading yet, zero is returned
func (f *Felicita) RawAverage(samples int) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := samples
	if n > f.received {
		n = f.received
	}
	if n > ringSize {
		n = ringSize
	}
	if n <= 0 {
		return 0
	}

	var sum int64
	for i := 1; i <= n; i++ {
		sum += f.ring[(f.next-i+ringSize)%ringSize]
	}

	return sum / int64(n)
}

// State returns the current connection state
func (f *Felicita) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastSeen returns the time of the most recent reading
func (f *Felicita) LastSeen() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSeen
}

// Close terminates the connection to the device
func (f *Felicita) Close() error {
	close(f.doneChan)

	_ = f.btDevice.StopScanning()
	return f.btDevice.RemoveAllServices()
}

////////////////////////////////////////////////////////////////////////////////

func (f *Felicita) subscribe() error {

	// Register handlers
	f.btDevice.Handle(
		gatt.AddPeripheralDiscovered(f.genOnPeriphDiscovered()),
		gatt.AddPeripheralConnected(f.onPeriphConnected),
		gatt.AddPeripheralDisconnected(f.onPeriphDisconnected),
	)

	// Initialize the device
	return f.btDevice.Init(f.onStateChanged)
}

func (f *Felicita) setState(state State, err error) {
	f.mu.Lock()
	f.state = state
	f.mu.Unlock()

	if err != nil {
		f.logger.Warnf("connection state changed to %s: %s", state, err)
		return
	}
	f.logger.Debugf("connection state changed to %s", state)
}

func (f *Felicita) onStateChanged(d gatt.Device, s gatt.State) {
	switch s {
	case gatt.StatePoweredOn:
		f.setState(StateScanning, nil)
		if err := d.Scan([]gatt.UUID{}, false); err != nil {
			f.logger.Warnf("failed to enable initial scanning: %s", err)
		}
		return
	case gatt.StatePoweredOff:
		f.setState(StateDisconnected, nil)
		return
	default:
		if err := d.StopScanning(); err != nil {
			f.logger.Warnf("failed to stop initial scanning: %s", err)
		}
	}
}

func (f *Felicita) genOnPeriphDiscovered() func(p gatt.Peripheral, arg2 *gatt.Advertisement, arg3 int) {
	return func(p gatt.Peripheral, _ *gatt.Advertisement, _ int) {
		if !f.thisDevice(p) {
			return
		}

		f.logger.Debugf("connecting load cell `%s/%s`", p.Name(), p.ID())

		// Stop scanning once we've got the peripheral we're looking for.
		if err := p.Device().StopScanning(); err != nil {
			f.logger.Warnf("failed to stop initial scanning: %s", err)
		}
		if err := p.Device().Connect(p); err != nil {
			f.logger.Errorf("failed to connect load cell `%s/%s`: %s", p.Name(), p.ID(), err)
		}
	}
}

func (f *Felicita) onPeriphConnected(p gatt.Peripheral, connErr error) {
	if !f.thisDevice(p) {
		return
	}

	f.setState(StateConnected, nil)
	defer func() {
		_ = p.Device().CancelConnection(p)
		f.setState(StateDisconnected, connErr)
	}()

	if connErr = f.subscribeData(p); connErr != nil {
		return
	}

	<-f.doneChan
	f.logger.Debugf("released load cell `%s/%s`", p.Name(), p.ID())
}

func (f *Felicita) subscribeData(p gatt.Peripheral) error {

	// Set connection MTU
	if err := p.SetMTU(500); err != nil {
		return fmt.Errorf("failed to set MTU: %w", err)
	}

	// Discover services
	ss, err := p.DiscoverServices(nil)
	if err != nil {
		return fmt.Errorf("failed to discover services: %w", err)
	}
	for _, s := range ss {
		if s.UUID().String() != dataService {
			continue
		}

		// Discover characteristics
		cs, err := p.DiscoverCharacteristics(nil, s)
		if err != nil {
			return fmt.Errorf("failed to discover characteristics: %w", err)
		}
		for _, c := range cs {
			if c.UUID().String() != dataCharacteristic {
				continue
			}
			f.btPeripheral = p
			f.btCharacteristic = c

			// Discover descriptors
			if _, err := p.DiscoverDescriptors(nil, c); err != nil {
				return fmt.Errorf("failed to discover descriptors: %w", err)
			}

			if err := p.SetNotifyValue(c, f.receiveData); err != nil {
				return fmt.Errorf("failed to subscribe characteristic: %w", err)
			}
			return nil
		}
	}

	return fmt.Errorf("data characteristic %s not found", dataCharacteristic)
}

func (f *Felicita) onPeriphDisconnected(p gatt.Peripheral, _ error) {
	if !f.thisDevice(p) {
		return
	}

	f.disconnect()

	time.Sleep(100 * time.Millisecond)
	f.setState(StateScanning, nil)
	if err := f.btDevice.Scan([]gatt.UUID{}, false); err != nil {
		f.logger.Warnf("failed to re-enable scanning after disconnect: %s", err)
	}
}

func (f *Felicita) thisDevice(p gatt.Peripheral) bool {

	// Check if name and / or device ID have been overridden
	if f.deviceID != "" && strings.EqualFold(p.ID(), f.deviceID) {
		return true
	}
	return strings.EqualFold(p.Name(), f.deviceName)
}

func (f *Felicita) disconnect() {
	select {
	case f.doneChan <- struct{}{}:
	default:
	}
}

func (f *Felicita) receiveData(_ *gatt.Characteristic, req []byte, err error) {
	if err != nil {
		return
	}

	raw, ok := parseFrame(req)
	if !ok {
		return
	}

	f.push(raw, time.Now())
}

func (f *Felicita) push(raw int64, at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ring[f.next] = raw
	f.next = (f.next + 1) % ringSize
	f.received++
	f.lastSeen = at
}

// parseFrame extracts the signed weight in centigrams from a notification frame
func parseFrame(req []byte) (int64, bool) {
	if len(req) != frameLength {
		return 0, false
	}

	raw, err := strconv.ParseInt(strings.TrimSpace(string(req[2:9])), 10, 64)
	if err != nil {
		return 0, false
	}

	// Readings in ounces cannot be calibrated to grams
	if !strings.Contains(strings.ToLower(string(req[9:11])), "g") {
		return 0, false
	}

	return raw, true
}
