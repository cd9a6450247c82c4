package scale

import (
	"fmt"
	"strings"
)

// Action denotes one of the physical push-buttons
type Action int

const (

	// ActionTare zeroes the scale
	ActionTare Action = iota

	// ActionSend transmits the current reading
	ActionSend

	// ActionPrev selects the previous category
	ActionPrev

	// ActionNext selects the next category
	ActionNext

	// NumActions is the number of distinct actions / input sources
	NumActions = 4
)

var actionNames = [NumActions]string{"tare", "send", "prev", "next"}

// String returns the lower case name of the action
func (a Action) String() string {
	if a < 0 || int(a) >= NumActions {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction parses an action from its (case insensitive) name
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if strings.EqualFold(n, name) {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action `%s`", name)
}

// Category denotes a selectable food category
type Category struct {
	Index int
	Name  string
}

// Credentials denotes the network login
type Credentials struct {
	SSID     string
	Password string
}
