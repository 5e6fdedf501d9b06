package eval

// State is the evaluator lifecycle state
type State int

const (
	StateIdle      State = iota // No run has started
	StateRunning                // Run in progress
	StateAborted                // Last run stopped on a fatal error
	StateCompleted              // Last run executed every statement
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateAborted:
		return "aborted"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
