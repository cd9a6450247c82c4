package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateHoldsEdges(t *testing.T) {
	gate := NewGate()
	c, _ := newTestController(t, WithGate(gate))

	exit := gate.Enter()

	done := make(chan bool)
	go func() {
		done <- c.Next()
	}()

	select {
	case <-done:
		t.Fatal("edge was delivered during critical section")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, 0, c.State().Category().Index)

	exit()
	exit()

	select {
	case accepted := <-done:
		require.True(t, accepted)
	case <-time.After(time.Second):
		t.Fatal("edge was not delivered after critical section")
	}
	assert.Equal(t, 1, c.State().Category().Index)
}

func TestGateConcurrentEdges(t *testing.T) {
	gate := NewGate()
	c, _ := newTestController(t, WithGate(gate))

	results := make(chan bool, 4)
	go func() { results <- c.Next() }()
	go func() { results <- c.Send() }()
	go func() { results <- c.Tare() }()
	go func() { results <- c.Prev() }()

	for i := 0; i < 4; i++ {
		select {
		case ok := <-results:
			assert.True(t, ok)
		case <-time.After(time.Second):
			t.Fatal("edges were not delivered")
		}
	}
}
