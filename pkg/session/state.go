package session

// SessionState. lifecycle of one navigation session.
type SessionState uint8

const (
	IDLE SessionState = iota
	PLANNING
	ACTIVE
	ARRIVED
	FAILED
)

func (s SessionState) String() string {
	switch s {
	case IDLE:
		return "idle"
	case PLANNING:
		return "planning"
	case ACTIVE:
		return "active"
	case ARRIVED:
		return "arrived"
	case FAILED:
		return "failed"
	default:
		return "unknown"
	}
}

// FailureReason. stable machine-matchable codes, the presentation layer maps
// each to differentiated user guidance.
type FailureReason string

const (
	NO_REASON           FailureReason = ""
	NO_LOCATION         FailureReason = "NO_LOCATION"
	NO_NODES            FailureReason = "NO_NODES"
	NO_START_NODE       FailureReason = "NO_START_NODE"
	NO_DESTINATION_NODE FailureReason = "NO_DESTINATION_NODE"
	NO_PATH             FailureReason = "NO_PATH"
	TRACKING_FAILED     FailureReason = "TRACKING_FAILED"
	UNKNOWN_ERROR       FailureReason = "UNKNOWN_ERROR"
)

// Event. one state transition, pushed to subscribers.
type Event struct {
	State  SessionState  `json:"state"`
	Reason FailureReason `json:"reason,omitempty"`
}

func NewEvent(state SessionState, reason FailureReason) Event {
	return Event{State: state, Reason: reason}
}
