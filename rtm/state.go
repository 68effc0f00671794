package rtm

import "fmt"

// State of the rtm connection
type State int

// State values
const (
	StateConnecting State = iota
	StateConnected
	StateNoNetwork
	StateFailed
	StateClosed
)

var stateNames = [...]string{"connecting", "connected", "noNetwork", "failed", "closed"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Banner information text shown for the state, closed falls back to the connecting text
func (s State) Banner() string {
	switch s {
	case StateConnected:
		return "Connected"
	case StateNoNetwork:
		return "No connection"
	case StateFailed:
		return "Something is not right. We will be connecting shortly."
	default:
		return "Connecting..."
	}
}
