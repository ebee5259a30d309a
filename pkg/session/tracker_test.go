package session

import (
	"context"
	"testing"
	"time"

	da "github.com/lintang-b-s/wayfinder/pkg/datastructure"
	"github.com/lintang-b-s/wayfinder/pkg/engine"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func corridorNode(id, label string, lat, lon float64, accessible bool) da.Node {
	return da.NewNode(id, label, geo.NewCoordinate(lat, lon), [2]float64{0, 0}, "p1", accessible)
}

// corridorGraph. a(0,0) "Lobby" -> b ~100m north -> c ~100m further.
func corridorGraph() *da.Graph {
	nodes := []da.Node{
		corridorNode("a", "Lobby", 0, 0, true),
		corridorNode("b", "Hallway", 0.0009, 0, true),
		corridorNode("c", "Cafeteria", 0.0018, 0, true),
	}
	edges := []da.Edge{
		da.NewEdge("e1", "a", "b", 100, "p1", true, true, ""),
		da.NewEdge("e2", "b", "c", 100, "p1", true, true, ""),
	}
	return da.BuildGraph(nodes, edges)
}

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	tracker := NewTracker(zap.NewNop(), engine.NewEngine(zap.NewNop()))
	t.Cleanup(tracker.Close)
	return tracker
}

func sampleAt(lat, lon float64) da.PositionSample {
	return da.NewPositionSample(geo.NewCoordinate(lat, lon), 5, 1.4, 0, time.Now())
}

// waitForPosition. position updates are processed asynchronously; every
// accepted update republishes the snapshot with the sample's position.
func waitForPosition(t *testing.T, tracker *Tracker, lat, lon float64) *Snapshot {
	t.Helper()
	var snap *Snapshot
	require.Eventually(t, func() bool {
		snap = tracker.Snapshot()
		return snap.LastPosition != nil &&
			snap.LastPosition.Lat == lat && snap.LastPosition.Lon == lon
	}, 2*time.Second, 5*time.Millisecond)
	return snap
}

func TestStartActiveSession(t *testing.T) {
	tracker := newTestTracker(t)
	startPos := geo.NewCoordinate(0, 0)

	tracker.Start(corridorGraph(), &startPos, "c")

	snap := tracker.Snapshot()
	require.Equal(t, ACTIVE, snap.State)
	assert.Equal(t, NO_REASON, snap.Reason)
	assert.Equal(t, 0, snap.StepIndex)
	assert.Equal(t, "Start at Lobby", snap.CurrentInstruction)
	assert.InDelta(t, 100.0, snap.DistanceToNext, 1.0)
	assert.InDelta(t, 200.0, snap.Route.GetTotalDistance(), 1.0)

	// polyline starts at the live position, then covers every remaining node
	require.Len(t, snap.Polyline, 4)
	assert.Equal(t, startPos, snap.Polyline[0])
	assert.NotEmpty(t, snap.EncodedPolyline)
}

func TestProgressThroughRoute(t *testing.T) {
	tracker := newTestTracker(t)
	startPos := geo.NewCoordinate(0, 0)
	tracker.Start(corridorGraph(), &startPos, "c")

	// far from the next waypoint: cursor stays put
	tracker.OnPositionUpdate(sampleAt(0.0004, 0))
	snap := waitForPosition(t, tracker, 0.0004, 0)
	assert.Equal(t, ACTIVE, snap.State)
	assert.Equal(t, 0, snap.StepIndex)

	// within the arrival radius of b: cursor advances exactly once
	tracker.OnPositionUpdate(sampleAt(0.00089, 0))
	snap = waitForPosition(t, tracker, 0.00089, 0)
	assert.Equal(t, ACTIVE, snap.State)
	assert.Equal(t, 1, snap.StepIndex)
	assert.Equal(t, "Continue straight to Hallway", snap.CurrentInstruction)

	// still near b: no regression, no double advance
	tracker.OnPositionUpdate(sampleAt(0.000895, 0))
	snap = waitForPosition(t, tracker, 0.000895, 0)
	assert.Equal(t, ACTIVE, snap.State)
	assert.Equal(t, 1, snap.StepIndex)

	// within the arrival radius of the goal
	tracker.OnPositionUpdate(sampleAt(0.00181, 0))
	snap = waitForPosition(t, tracker, 0.00181, 0)
	assert.Equal(t, ARRIVED, snap.State)
	assert.Equal(t, 2, snap.StepIndex)
	assert.Equal(t, "Arrive at Cafeteria", snap.CurrentInstruction)
}

func TestStartWithoutPosition(t *testing.T) {
	tracker := newTestTracker(t)

	tracker.Start(corridorGraph(), nil, "c")

	snap := tracker.Snapshot()
	assert.Equal(t, FAILED, snap.State)
	assert.Equal(t, NO_LOCATION, snap.Reason)
}

func TestStartNoAccessibleNodes(t *testing.T) {
	tracker := newTestTracker(t)
	g := da.BuildGraph([]da.Node{
		corridorNode("a", "Closed Wing", 0, 0, false),
	}, []da.Edge{})
	startPos := geo.NewCoordinate(0, 0)

	tracker.Start(g, &startPos, "a")

	snap := tracker.Snapshot()
	assert.Equal(t, FAILED, snap.State)
	assert.Equal(t, NO_NODES, snap.Reason)
}

func TestStartUnknownGoal(t *testing.T) {
	tracker := newTestTracker(t)
	startPos := geo.NewCoordinate(0, 0)

	tracker.Start(corridorGraph(), &startPos, "ghost")

	snap := tracker.Snapshot()
	assert.Equal(t, FAILED, snap.State)
	assert.Equal(t, NO_DESTINATION_NODE, snap.Reason)
}

func TestStartUnreachableGoal(t *testing.T) {
	tracker := newTestTracker(t)
	nodes := []da.Node{
		corridorNode("a", "A", 0, 0, true),
		corridorNode("b", "B", 0.0009, 0, true),
		corridorNode("island", "Island", 0.1, 0.1, true),
		corridorNode("island2", "Island 2", 0.1009, 0.1, true),
	}
	edges := []da.Edge{
		da.NewEdge("e1", "a", "b", 100, "p1", true, true, ""),
		da.NewEdge("e2", "island", "island2", 100, "p1", true, true, ""),
	}
	g := da.BuildGraph(nodes, edges)
	startPos := geo.NewCoordinate(0, 0)

	tracker.Start(g, &startPos, "island")

	snap := tracker.Snapshot()
	assert.Equal(t, FAILED, snap.State)
	assert.Equal(t, NO_PATH, snap.Reason)
}

func TestStopClearsSession(t *testing.T) {
	tracker := newTestTracker(t)
	startPos := geo.NewCoordinate(0, 0)
	tracker.Start(corridorGraph(), &startPos, "c")
	require.Equal(t, ACTIVE, tracker.Snapshot().State)

	tracker.Stop()

	snap := tracker.Snapshot()
	assert.Equal(t, IDLE, snap.State)
	assert.Nil(t, snap.Route)
	assert.Equal(t, 0, snap.StepIndex)
	assert.Nil(t, snap.LastPosition)

	// stop is idempotent
	tracker.Stop()
	assert.Equal(t, IDLE, tracker.Snapshot().State)
}

func TestPositionUpdateAfterStopIsNoop(t *testing.T) {
	tracker := newTestTracker(t)
	startPos := geo.NewCoordinate(0, 0)
	tracker.Start(corridorGraph(), &startPos, "c")
	tracker.Stop()

	tracker.OnPositionUpdate(sampleAt(0.00089, 0))
	// commands are consumed in order, so a second blocking stop guarantees
	// the update above has already been processed
	tracker.Stop()

	snap := tracker.Snapshot()
	assert.Equal(t, IDLE, snap.State)
	assert.Nil(t, snap.Route)
	assert.Nil(t, snap.LastPosition)
}

func TestReportTrackingFailure(t *testing.T) {
	tracker := newTestTracker(t)
	startPos := geo.NewCoordinate(0, 0)
	tracker.Start(corridorGraph(), &startPos, "c")

	tracker.ReportTrackingFailure()

	require.Eventually(t, func() bool {
		return tracker.Snapshot().State == FAILED
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, TRACKING_FAILED, tracker.Snapshot().Reason)
}

func TestReportTrackingFailureIgnoredWhenIdle(t *testing.T) {
	tracker := newTestTracker(t)

	tracker.ReportTrackingFailure()
	// flush the command queue
	tracker.Stop()

	assert.Equal(t, IDLE, tracker.Snapshot().State)
	assert.Equal(t, NO_REASON, tracker.Snapshot().Reason)
}

func TestSubscribeReceivesTransitions(t *testing.T) {
	tracker := newTestTracker(t)
	events := tracker.Subscribe(16)
	startPos := geo.NewCoordinate(0, 0)

	tracker.Start(corridorGraph(), &startPos, "c")

	// start blocks until the transition completed, both events must be buffered
	got := make([]SessionState, 0, 2)
	for i := 0; i < 2; i++ {
		select {
		case ev := <-events:
			got = append(got, ev.State)
		case <-time.After(2 * time.Second):
			t.Fatal("missing transition event")
		}
	}
	assert.Equal(t, []SessionState{PLANNING, ACTIVE}, got)
}

func TestStartWhileActiveRestarts(t *testing.T) {
	tracker := newTestTracker(t)
	startPos := geo.NewCoordinate(0, 0)
	tracker.Start(corridorGraph(), &startPos, "c")
	require.Equal(t, ACTIVE, tracker.Snapshot().State)

	tracker.Start(corridorGraph(), &startPos, "b")

	snap := tracker.Snapshot()
	require.Equal(t, ACTIVE, snap.State)
	assert.Equal(t, []string{"a", "b"}, snap.Route.GetNodeIds())
}

func TestConsumeFeedDrivesArrival(t *testing.T) {
	tracker := newTestTracker(t)
	startPos := geo.NewCoordinate(0, 0)
	tracker.Start(corridorGraph(), &startPos, "c")

	feed := make(chan da.PositionSample, 4)
	feed <- sampleAt(0.0004, 0)
	feed <- sampleAt(0.00089, 0)
	feed <- sampleAt(0.00181, 0)
	close(feed)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	tracker.ConsumeFeed(ctx, feed)

	require.Eventually(t, func() bool {
		return tracker.Snapshot().State == ARRIVED
	}, 2*time.Second, 5*time.Millisecond)
}

func TestSnapshotRemainingMetrics(t *testing.T) {
	tracker := newTestTracker(t)
	startPos := geo.NewCoordinate(0, 0)
	tracker.Start(corridorGraph(), &startPos, "c")

	snap := tracker.Snapshot()
	// full route still ahead
	assert.Equal(t, "200 m", snap.RemainingDistance)

	tracker.OnPositionUpdate(sampleAt(0.00089, 0))
	snap = waitForPosition(t, tracker, 0.00089, 0)
	// one of two legs consumed
	assert.Equal(t, "100 m", snap.RemainingDistance)
}
