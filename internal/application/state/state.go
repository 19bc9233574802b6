package state

// SessionState represents the lifecycle state of a level session
type SessionState int

const (
	StateIdle SessionState = iota
	StateLoading
	StatePlaying
	StateDead
	StateCleared
	StateExited
)

// String returns the string representation of the session state
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StateDead:
		return "Dead"
	case StateCleared:
		return "Cleared"
	case StateExited:
		return "Exited"
	default:
		return "Unknown"
	}
}

// IsSimulating reports whether gameplay phases run in this state.
func (s SessionState) IsSimulating() bool {
	return s == StatePlaying || s == StateDead
}
