//go:build tinygo

package main

import (
	"errors"
	"machine"
	"time"
)

var errLinkTimeout = errors.New("no reply from bridge")

// serialLine turns the non-blocking UART into a blocking reader with a deadline
type serialLine struct {
	uart    *machine.UART
	timeout time.Duration
}

func (s *serialLine) Read(p []byte) (int, error) {
	deadline := time.Now().Add(s.timeout)
	for s.uart.Buffered() == 0 {
		if time.Now().After(deadline) {
			return 0, errLinkTimeout
		}
		time.Sleep(time.Millisecond)
	}
	return s.uart.Read(p)
}

func (s *serialLine) Write(p []byte) (int, error) {
	return s.uart.Write(p)
}
