package session

import (
	"time"

	"github.com/fako1024/foodscale/pkg/scale"
)

// WithCredentials sets the network login
func WithCredentials(creds scale.Credentials) func(*Session) {
	return func(s *Session) {
		s.creds = creds
	}
}

// WithEndpoint sets the URL readings are posted to
func WithEndpoint(url string) func(*Session) {
	return func(s *Session) {
		s.endpoint = url
	}
}

// WithAssociateAttempts bounds the number of association attempts, 0 retries forever
func WithAssociateAttempts(n int) func(*Session) {
	return func(s *Session) {
		s.associateAttempts = n
	}
}

// WithRetryDelay sets the pause between association attempts
func WithRetryDelay(d time.Duration) func(*Session) {
	return func(s *Session) {
		s.retryDelay = d
	}
}

// WithLogger sets the logger
func WithLogger(logger scale.Logger) func(*Session) {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder sets the recorder notified about completed attempts
func WithRecorder(r scale.Recorder) func(*Session) {
	return func(s *Session) {
		if r != nil {
			s.recorder = r
		}
	}
}
