// Package session implements the blocking send sequence: associate with the
// network, sample and serialize the current reading, POST it once and tear down.
// Edge delivery is suspended for the whole sequence so the transmitted
// (category, weight) pair is never torn.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fako1024/foodscale/pkg/input"
	"github.com/fako1024/foodscale/pkg/scale"
	"github.com/fatih/stopwatch"
	"github.com/google/uuid"
)

const (

	// DefaultEndpoint is the collector the readings are posted to
	DefaultEndpoint = "http://192.168.0.151:8090/postjson"

	// DefaultAssociateAttempts bounds the association loop (0 = unbounded)
	DefaultAssociateAttempts = 100

	// DefaultRetryDelay is the pause between two association attempts
	DefaultRetryDelay = 100 * time.Millisecond

	contentType = "application/json"
)

// ErrNotAssociated is returned if the network could not be joined
var ErrNotAssociated = errors.New("network association failed")

// State denotes the state of the send session
type State int32

const (

	// StateIdle is active while no send is in progress
	StateIdle State = iota

	// StateConnecting is active while associating with the network
	StateConnecting

	// StateSending is active while the request is in flight
	StateSending
)

// String returns the name of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateSending:
		return "sending"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Result denotes the outcome of a single send attempt
type Result struct {
	ID      uuid.UUID
	Message Message
	Status  int
	Err     error
	Elapsed time.Duration
}

// Session orchestrates a send attempt
type Session struct {
	network  scale.Network
	reader   *scale.Reader
	state    *input.State
	critical scale.CriticalSection

	creds             scale.Credentials
	endpoint          string
	associateAttempts int
	retryDelay        time.Duration

	current  atomic.Int32
	logger   scale.Logger
	recorder scale.Recorder
}

// New instantiates a new Session, executing functional options, if any
func New(network scale.Network, reader *scale.Reader, state *input.State, critical scale.CriticalSection, options ...func(*Session)) (*Session, error) {
	if network == nil || reader == nil || state == nil || critical == nil {
		return nil, errors.New("session requires a network, a reader, a shared state and a critical section")
	}

	s := &Session{
		network:           network,
		reader:            reader,
		state:             state,
		critical:          critical,
		endpoint:          DefaultEndpoint,
		associateAttempts: DefaultAssociateAttempts,
		retryDelay:        DefaultRetryDelay,
		logger:            &scale.NullLogger{},
		recorder:          scale.NullRecorder{},
	}

	for _, option := range options {
		option(s)
	}

	if s.endpoint == "" {
		return nil, errors.New("no endpoint provided")
	}

	return s, nil
}

// State returns the current session state
func (s *Session) State() State {
	return State(s.current.Load())
}

// Run executes one complete send attempt and returns its outcome. The pending
// send request is cleared once the attempt ends, regardless of its outcome
func (s *Session) Run(ctx context.Context) (res Result) {
	res.ID = uuid.New()
	sw := stopwatch.Start(0)

	exit := s.critical.Enter()
	defer func() {
		sw.Stop()
		res.Elapsed = sw.ElapsedTime()

		s.state.ClearSend()
		s.setState(StateIdle)
		exit()

		s.recorder.SendCompleted(res.Status, res.Err, res.Elapsed)
		if res.Err != nil {
			s.logger.Errorf("attempt %s failed after %v: %s", res.ID, res.Elapsed, res.Err)
			return
		}
		s.logger.Infof("attempt %s finished after %v with status %d", res.ID, res.Elapsed, res.Status)
	}()

	s.setState(StateConnecting)
	if res.Err = s.associate(ctx, res.ID); res.Err != nil {
		return
	}
	defer func() {
		if err := s.network.Disconnect(); err != nil {
			s.logger.Warnf("attempt %s: failed to disconnect: %s", res.ID, err)
		}
	}()

	s.setState(StateSending)

	// Values are sampled now, not when the button was pressed
	res.Message = NewMessage(s.reader.Read(), s.state.Category())
	payload, err := res.Message.Encode()
	if err != nil {
		res.Err = fmt.Errorf("failed to encode message: %w", err)
		return
	}
	s.logger.Debugf("attempt %s: posting %s to %s", res.ID, payload, s.endpoint)

	res.Status, err = s.network.Post(ctx, s.endpoint, map[string]string{
		"Content-Type": contentType,
	}, payload)
	if err != nil {
		res.Err = fmt.Errorf("failed to post reading: %w", err)
		return
	}
	if res.Status < 200 || res.Status > 299 {
		s.logger.Warnf("attempt %s: endpoint responded with status %d", res.ID, res.Status)
	}

	return
}

////////////////////////////////////////////////////////////////////////////////

func (s *Session) associate(ctx context.Context, id uuid.UUID) error {
	for attempt := 1; s.associateAttempts <= 0 || attempt <= s.associateAttempts; attempt++ {
		if s.network.Associate(ctx, s.creds) {
			s.logger.Debugf("attempt %s: associated with `%s` after %d tries", id, s.creds.SSID, attempt)
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrNotAssociated, ctx.Err())
		case <-time.After(s.retryDelay):
		}
	}

	return fmt.Errorf("%w: gave up after %d tries", ErrNotAssociated, s.associateAttempts)
}

func (s *Session) setState(state State) {
	s.current.Store(int32(state))
}
