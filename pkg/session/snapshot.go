package session

import (
	"github.com/lintang-b-s/wayfinder/pkg/datastructure"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
	"github.com/lintang-b-s/wayfinder/pkg/util"
)

// Snapshot. immutable read-only view of the session, safe for concurrent
// readers. the tracker publishes a fresh snapshot after every accepted
// mutation; consumers never observe partial state.
type Snapshot struct {
	State              SessionState
	Reason             FailureReason
	Route              *datastructure.RouteResult
	StepIndex          int
	CurrentInstruction string
	DistanceToNext     float64 // meter, to the current instruction node
	OffRouteDistance   float64 // meter, perpendicular distance to the current leg
	RemainingDistance  string  // formatted, see util.FormatDistance
	RemainingTime      string  // formatted, see util.FormatDuration
	Polyline           []geo.Coordinate
	EncodedPolyline    string
	LastPosition       *geo.Coordinate
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		State:             IDLE,
		RemainingDistance: util.FormatDistance(0),
		RemainingTime:     util.FormatDuration(0),
		Polyline:          []geo.Coordinate{},
	}
}

// remainingDistance. total minus the distance already consumed to reach the
// current step, clamped at zero.
func remainingDistance(route *datastructure.RouteResult, stepIndex int) float64 {
	instructions := route.GetInstructions()
	remaining := route.GetTotalDistance() - instructions[stepIndex].GetDistanceFromStart()
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// remainingTime. linear interpolation over step count, not over remaining
// distance. coarse but cheap, and what the rendered countdown has always
// shown; do not silently "fix" it to be distance-proportional.
func remainingTime(route *datastructure.RouteResult, stepIndex int) float64 {
	count := route.NumberOfInstructions()
	if count == 0 {
		return 0
	}
	return route.GetEta() * (1.0 - float64(stepIndex)/float64(count))
}

// routePolyline. live position first, then every remaining node position, so
// the rendered line starts exactly at the user instead of snapping to the
// nearest node. never empty while a route is loaded.
func routePolyline(route *datastructure.RouteResult, stepIndex int, livePosition geo.Coordinate) []geo.Coordinate {
	instructions := route.GetInstructions()
	line := make([]geo.Coordinate, 0, len(instructions)-stepIndex+1)
	line = append(line, livePosition)
	for i := stepIndex; i < len(instructions); i++ {
		line = append(line, instructions[i].GetPoint())
	}
	return line
}
