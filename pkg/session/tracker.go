package session

import (
	"context"
	"sync/atomic"

	"github.com/lintang-b-s/wayfinder/pkg"
	"github.com/lintang-b-s/wayfinder/pkg/datastructure"
	"github.com/lintang-b-s/wayfinder/pkg/engine/routing"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
	"github.com/lintang-b-s/wayfinder/pkg/util"
	"go.uber.org/zap"
)

type RoutePlanner interface {
	PlanRoute(graph *datastructure.Graph, startId, goalId string) (*datastructure.RouteResult, *routing.PlanningError)
}

type command interface{ isCommand() }

type startCmd struct {
	graph    *datastructure.Graph
	position *geo.Coordinate
	goalId   string
	done     chan struct{}
}

type positionCmd struct {
	sample datastructure.PositionSample
}

type stopCmd struct {
	done chan struct{}
}

type failCmd struct {
	reason FailureReason
}

type subscribeCmd struct {
	events chan Event
}

type closeCmd struct {
	done chan struct{}
}

func (startCmd) isCommand()     {}
func (positionCmd) isCommand()  {}
func (stopCmd) isCommand()      {}
func (failCmd) isCommand()      {}
func (subscribeCmd) isCommand() {}
func (closeCmd) isCommand()     {}

/*
Tracker. live navigation session state machine.

single-writer actor: every mutation funnels through one goroutine consuming
the command channel, so a concurrent Start while already active serializes as
stop-then-start and can never interleave with a position update mid-transition.
readers get lock-free immutable snapshots.
*/
type Tracker struct {
	log     *zap.Logger
	planner RoutePlanner

	cmds     chan command
	snapshot atomic.Pointer[Snapshot]

	// owned by the run goroutine, never touched from outside
	graph          *datastructure.Graph
	route          *datastructure.RouteResult
	stepIndex      int
	lastPosition   *geo.Coordinate
	distanceToNext float64
	state          SessionState
	reason         FailureReason
	subscribers    []chan Event
}

func NewTracker(log *zap.Logger, planner RoutePlanner) *Tracker {
	t := &Tracker{
		log:         log,
		planner:     planner,
		cmds:        make(chan command, 64),
		state:       IDLE,
		subscribers: make([]chan Event, 0),
	}
	t.snapshot.Store(emptySnapshot())

	go t.run()
	return t
}

func (t *Tracker) run() {
	for cmd := range t.cmds {
		switch c := cmd.(type) {
		case startCmd:
			t.handleStart(c)
			close(c.done)
		case positionCmd:
			t.handlePositionUpdate(c.sample)
		case stopCmd:
			t.handleStop()
			close(c.done)
		case failCmd:
			t.handleTrackingFailure(c.reason)
		case subscribeCmd:
			t.subscribers = append(t.subscribers, c.events)
		case closeCmd:
			for _, sub := range t.subscribers {
				close(sub)
			}
			close(c.done)
			return
		}
	}
}

// Start. plan a route from the node nearest to startPosition to goalNodeId and
// begin live tracking. an in-flight session is stopped first. blocks until the
// transition (to ACTIVE or FAILED) is done.
func (t *Tracker) Start(graph *datastructure.Graph, startPosition *geo.Coordinate, goalNodeId string) {
	done := make(chan struct{})
	t.cmds <- startCmd{graph: graph, position: startPosition, goalId: goalNodeId, done: done}
	<-done
}

// OnPositionUpdate. feed one live position sample. ignored unless ACTIVE.
func (t *Tracker) OnPositionUpdate(sample datastructure.PositionSample) {
	t.cmds <- positionCmd{sample: sample}
}

// Stop. clear route, cursor and metrics and return to IDLE. idempotent. a
// position update arriving after Stop is a no-op.
func (t *Tracker) Stop() {
	done := make(chan struct{})
	t.cmds <- stopCmd{done: done}
	<-done
}

// ReportTrackingFailure. the position feed collaborator failed (sensor denied,
// stream torn down). only demotes an ACTIVE session.
func (t *Tracker) ReportTrackingFailure() {
	t.cmds <- failCmd{reason: TRACKING_FAILED}
}

// Subscribe. register a state-transition event channel. sends are
// non-blocking, a slow consumer misses events instead of stalling the tracker.
func (t *Tracker) Subscribe(buffer int) chan Event {
	events := make(chan Event, buffer)
	t.cmds <- subscribeCmd{events: events}
	return events
}

// ConsumeFeed. pump a position-sample stream into the tracker until the stream
// closes or ctx is cancelled. the feed is injected, the tracker never reaches
// out to ambient location state.
func (t *Tracker) ConsumeFeed(ctx context.Context, feed <-chan datastructure.PositionSample) {
	for {
		select {
		case <-ctx.Done():
			return
		case sample, ok := <-feed:
			if !ok {
				return
			}
			t.OnPositionUpdate(sample)
		}
	}
}

// Snapshot. current read-only state, safe from any goroutine.
func (t *Tracker) Snapshot() *Snapshot {
	return t.snapshot.Load()
}

// Close. terminate the actor goroutine. the tracker must not be used afterwards.
func (t *Tracker) Close() {
	done := make(chan struct{})
	t.cmds <- closeCmd{done: done}
	<-done
}

func (t *Tracker) handleStart(c startCmd) {
	if t.state != IDLE {
		t.handleStop()
	}

	t.graph = c.graph
	t.transition(PLANNING, NO_REASON)

	if c.position == nil {
		t.fail(NO_LOCATION)
		return
	}
	t.lastPosition = c.position

	startNodeId, ok := t.nearestAccessibleNode(*c.position)
	if !ok {
		t.fail(NO_NODES)
		return
	}

	route, planErr := t.planner.PlanRoute(t.graph, startNodeId, c.goalId)
	if planErr != nil {
		t.fail(planReason(planErr, startNodeId, c.goalId))
		return
	}

	t.route = route
	t.stepIndex = 0
	t.distanceToNext = geo.HaversineDistance(*c.position,
		route.GetInstructions()[t.nextWaypointIndex()].GetPoint())
	t.transition(ACTIVE, NO_REASON)
}

/*
nearestAccessibleNode. linear nearest-neighbor over every accessible node,
ties broken by first-encountered iteration order.

there is deliberately no maximum snap distance: with no nearby node the agent
is routed from an arbitrarily distant one, matching long-standing behavior.
*/
func (t *Tracker) nearestAccessibleNode(position geo.Coordinate) (string, bool) {
	bestId := ""
	bestDist := pkg.INF_WEIGHT
	found := false

	t.graph.ForNodes(func(n datastructure.Node) {
		if !n.Accessible {
			return
		}
		dist := geo.HaversineDistance(position, n.Position)
		if dist < bestDist {
			bestId = n.Id
			bestDist = dist
			found = true
		}
	})

	return bestId, found
}

// nextWaypointIndex. instruction index of the waypoint currently walked
// toward. the cursor itself counts completed steps, the proximity check always
// targets the step after it (or the goal once the cursor sits on it).
func (t *Tracker) nextWaypointIndex() int {
	lastStep := t.route.NumberOfInstructions() - 1
	if t.stepIndex < lastStep {
		return t.stepIndex + 1
	}
	return lastStep
}

func (t *Tracker) handlePositionUpdate(sample datastructure.PositionSample) {
	if t.state != ACTIVE {
		return
	}

	position := sample.Position
	t.lastPosition = &position

	instructions := t.route.GetInstructions()
	lastStep := len(instructions) - 1

	dist := geo.HaversineDistance(position, instructions[t.nextWaypointIndex()].GetPoint())
	if dist < pkg.ARRIVAL_RADIUS_METERS {
		if t.stepIndex < lastStep {
			// one proximity event advances the cursor exactly once, it never regresses
			t.stepIndex++
			if t.stepIndex == lastStep {
				t.distanceToNext = dist
				t.transition(ARRIVED, NO_REASON)
				return
			}
			dist = geo.HaversineDistance(position, instructions[t.nextWaypointIndex()].GetPoint())
		} else {
			// single-instruction route: already standing on the goal
			t.distanceToNext = dist
			t.transition(ARRIVED, NO_REASON)
			return
		}
	}
	t.distanceToNext = dist

	t.publishSnapshot()
}

func (t *Tracker) handleStop() {
	t.graph = nil
	t.route = nil
	t.stepIndex = 0
	t.lastPosition = nil
	t.distanceToNext = 0
	t.transition(IDLE, NO_REASON)
}

func (t *Tracker) handleTrackingFailure(reason FailureReason) {
	if t.state != ACTIVE {
		return
	}
	t.fail(reason)
}

func (t *Tracker) fail(reason FailureReason) {
	t.route = nil
	t.stepIndex = 0
	t.distanceToNext = 0
	t.transition(FAILED, reason)
}

func (t *Tracker) transition(state SessionState, reason FailureReason) {
	t.state = state
	t.reason = reason
	t.publishSnapshot()

	event := NewEvent(state, reason)
	for _, sub := range t.subscribers {
		select {
		case sub <- event:
		default:
		}
	}

	t.log.Debug("session transition",
		zap.String("state", state.String()), zap.String("reason", string(reason)))
}

func (t *Tracker) publishSnapshot() {
	snap := emptySnapshot()
	snap.State = t.state
	snap.Reason = t.reason
	snap.LastPosition = t.lastPosition

	if t.route != nil && (t.state == ACTIVE || t.state == ARRIVED) {
		instructions := t.route.GetInstructions()
		snap.Route = t.route
		snap.StepIndex = t.stepIndex
		snap.CurrentInstruction = instructions[t.stepIndex].GetText()
		snap.DistanceToNext = t.distanceToNext
		snap.RemainingDistance = util.FormatDistance(remainingDistance(t.route, t.stepIndex))
		snap.RemainingTime = util.FormatDuration(remainingTime(t.route, t.stepIndex))
		if t.lastPosition != nil {
			snap.Polyline = routePolyline(t.route, t.stepIndex, *t.lastPosition)
			snap.EncodedPolyline = geo.PolylineFromCoords(snap.Polyline)
			snap.OffRouteDistance = t.offRouteDistance(*t.lastPosition)
		}
	}

	t.snapshot.Store(snap)
}

// offRouteDistance. perpendicular distance from the live position to the
// current leg. exposed as a metric only, it never drives a transition.
func (t *Tracker) offRouteDistance(position geo.Coordinate) float64 {
	instructions := t.route.GetInstructions()
	lastStep := len(instructions) - 1
	if len(instructions) < 2 || t.stepIndex >= lastStep {
		return 0
	}
	legStart := instructions[t.stepIndex].GetPoint()
	legEnd := instructions[t.stepIndex+1].GetPoint()
	return geo.PointLinePerpendicularDistance(legStart, legEnd, position)
}

// planReason. map a typed planner failure onto the session reason codes.
func planReason(planErr *routing.PlanningError, startId, goalId string) FailureReason {
	switch planErr.GetCode() {
	case routing.UNKNOWN_NODE:
		if planErr.GetNodeId() == goalId {
			return NO_DESTINATION_NODE
		}
		return NO_START_NODE
	case routing.UNREACHABLE, routing.NO_PATH_FOUND:
		return NO_PATH
	default:
		return UNKNOWN_ERROR
	}
}
