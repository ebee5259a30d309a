package pkg

// enum of turn direction for one guidance step
type TurnDirection uint8

const (
	START TurnDirection = iota
	CONTINUE_STRAIGHT
	TURN_SLIGHT_LEFT
	TURN_LEFT
	TURN_SHARP_LEFT
	TURN_SLIGHT_RIGHT
	TURN_RIGHT
	TURN_SHARP_RIGHT
	U_TURN
	ARRIVE
)

func (t TurnDirection) String() string {
	switch t {
	case START:
		return "start"
	case CONTINUE_STRAIGHT:
		return "straight"
	case TURN_SLIGHT_LEFT:
		return "turn-slight-left"
	case TURN_LEFT:
		return "turn-left"
	case TURN_SHARP_LEFT:
		return "turn-sharp-left"
	case TURN_SLIGHT_RIGHT:
		return "turn-slight-right"
	case TURN_RIGHT:
		return "turn-right"
	case TURN_SHARP_RIGHT:
		return "turn-sharp-right"
	case U_TURN:
		return "u-turn"
	case ARRIVE:
		return "arrive"
	default:
		return "unknown"
	}
}

func (t TurnDirection) IsLeft() bool {
	return t == TURN_SLIGHT_LEFT || t == TURN_LEFT || t == TURN_SHARP_LEFT
}

func (t TurnDirection) IsRight() bool {
	return t == TURN_SLIGHT_RIGHT || t == TURN_RIGHT || t == TURN_SHARP_RIGHT
}

const (
	INF_WEIGHT float64 = 1e15

	// assumed walking speed for eta computation (~5 km/h)
	WALKING_SPEED_MS = 1.4

	// proximity threshold for auto-connecting nearby nodes (meter)
	AUTO_CONNECT_THRESHOLD_METERS = 100.0

	// radius around a waypoint that counts as reached during live tracking (meter)
	ARRIVAL_RADIUS_METERS = 10.0
)

const (
	DEBUG = false
)
