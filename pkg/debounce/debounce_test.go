package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFirstEdgeAccepted(t *testing.T) {
	d := New()
	assert.Equal(t, DefaultWindow, d.Window())

	// Edges right after boot must not be mistaken for bounces
	assert.True(t, d.ShouldAccept(0, 0))
	assert.True(t, d.ShouldAccept(1, 5))
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name  string
		edges []int64
		want  []bool
	}{
		{
			name:  "single",
			edges: []int64{1000},
			want:  []bool{true},
		},
		{
			name:  "bounces inside window",
			edges: []int64{1000, 1001, 1050, 1199, 1200},
			want:  []bool{true, false, false, false, false},
		},
		{
			name:  "strictly greater than window",
			edges: []int64{1000, 1201},
			want:  []bool{true, true},
		},
		{
			name:  "rejected edges do not extend the window",
			edges: []int64{1000, 1150, 1201, 1300, 1402},
			want:  []bool{true, false, true, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			for i, edge := range tt.edges {
				assert.Equal(t, tt.want[i], d.ShouldAccept(0, edge), "edge %d at %dms", i, edge)
			}
		})
	}
}

func TestExactlyOncePerWindow(t *testing.T) {
	d := New()

	accepted := 0
	for now := int64(10_000); now <= 10_200; now += 5 {
		if d.ShouldAccept(2, now) {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
}

func TestSourcesIndependent(t *testing.T) {
	d := New()
	assert.True(t, d.ShouldAccept(0, 500))
	assert.True(t, d.ShouldAccept(3, 510))
	assert.False(t, d.ShouldAccept(0, 520))
	assert.False(t, d.ShouldAccept(3, 530))
}

func TestInvalidSource(t *testing.T) {
	d := New()
	assert.False(t, d.ShouldAccept(-1, 1000))
	assert.False(t, d.ShouldAccept(MaxSources, 1000))
}

func TestCustomWindow(t *testing.T) {
	d := New(WithWindow(50 * time.Millisecond))
	assert.True(t, d.ShouldAccept(0, 100))
	assert.False(t, d.ShouldAccept(0, 150))
	assert.True(t, d.ShouldAccept(0, 151))

	d.Reset()
	assert.True(t, d.ShouldAccept(0, 151))
}

func TestConcurrentEdges(t *testing.T) {
	d := New()

	var (
		wg       sync.WaitGroup
		accepted atomic.Int64
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d.ShouldAccept(1, 42_000) {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), accepted.Load())
}
