package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	for _, a := range []Action{ActionTare, ActionSend, ActionPrev, ActionNext} {
		parsed, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}

	parsed, err := ParseAction("NEXT")
	require.NoError(t, err)
	assert.Equal(t, ActionNext, parsed)

	_, err = ParseAction("reset")
	assert.Error(t, err)
	assert.Equal(t, "action(7)", Action(7).String())
}

type recordingLogger struct {
	NullLogger
	lines []string
}

func (l *recordingLogger) Infof(format string, _ ...interface{}) {
	l.lines = append(l.lines, format)
}

func TestPrefixed(t *testing.T) {
	base := &recordingLogger{}
	Prefixed(base, "session").Infof("sent %d", 1)
	assert.Equal(t, []string{"session: sent %d"}, base.lines)

	assert.NotNil(t, Prefixed(nil, "x"))
}
