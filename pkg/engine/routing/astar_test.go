package routing

import (
	"fmt"
	"math"
	"testing"

	da "github.com/lintang-b-s/wayfinder/pkg/datastructure"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNode(id string, lat, lon float64) da.Node {
	return da.NewNode(id, "node "+id, geo.NewCoordinate(lat, lon), [2]float64{0, 0}, "p1", true)
}

func geoEdge(id string, nodes map[string]da.Node, from, to string, bidirectional bool) da.Edge {
	dist := geo.HaversineDistance(nodes[from].Position, nodes[to].Position)
	return da.NewEdge(id, from, to, dist, "p1", bidirectional, true, "")
}

func TestFindPathEndToEnd(t *testing.T) {
	// a(0,0), b ~100m north, c ~100m further north, no direct a-c edge
	nodes := []da.Node{
		testNode("a", 0, 0),
		testNode("b", 0.0009, 0),
		testNode("c", 0.0018, 0),
	}
	edges := []da.Edge{
		da.NewEdge("e1", "a", "b", 100, "p1", true, true, ""),
		da.NewEdge("e2", "b", "c", 100, "p1", true, true, ""),
	}
	g := da.BuildGraph(nodes, edges)

	result, planErr := NewAStar(g).FindPath("a", "c")
	require.Nil(t, planErr)

	assert.Equal(t, []string{"a", "b", "c"}, result.GetNodeIds())
	assert.InDelta(t, 200.0, result.GetTotalDistance(), 1.0)
	assert.InDelta(t, 200.0/1.4/60.0, result.GetEta(), 0.01)
}

func TestFindPathSameNode(t *testing.T) {
	// valid even for a fully isolated node
	g := da.BuildGraph([]da.Node{testNode("a", 0, 0)}, []da.Edge{})

	result, planErr := NewAStar(g).FindPath("a", "a")
	require.Nil(t, planErr)

	assert.Equal(t, []string{"a"}, result.GetNodeIds())
	assert.Equal(t, 0.0, result.GetTotalDistance())
	assert.Equal(t, 0.0, result.GetEta())
}

func TestFindPathUnknownNodes(t *testing.T) {
	g := da.BuildGraph([]da.Node{testNode("a", 0, 0)}, []da.Edge{})

	_, planErr := NewAStar(g).FindPath("ghost", "a")
	require.NotNil(t, planErr)
	assert.Equal(t, UNKNOWN_NODE, planErr.GetCode())
	assert.Equal(t, "ghost", planErr.GetNodeId())

	_, planErr = NewAStar(g).FindPath("a", "ghost")
	require.NotNil(t, planErr)
	assert.Equal(t, UNKNOWN_NODE, planErr.GetCode())
	assert.Equal(t, "ghost", planErr.GetNodeId())
}

func TestFindPathIsolatedStart(t *testing.T) {
	nodes := []da.Node{testNode("a", 0, 0), testNode("b", 0.0009, 0)}
	edges := []da.Edge{da.NewEdge("e1", "b", "a", 100, "p1", false, true, "")}
	g := da.BuildGraph(nodes, edges)

	_, planErr := NewAStar(g).FindPath("a", "b")
	require.NotNil(t, planErr)
	assert.Equal(t, UNREACHABLE, planErr.GetCode())
	assert.Equal(t, "a", planErr.GetNodeId())
}

func TestFindPathIsolatedGoal(t *testing.T) {
	nodes := []da.Node{testNode("a", 0, 0), testNode("b", 0.0009, 0), testNode("c", 0.0018, 0)}
	edges := []da.Edge{da.NewEdge("e1", "a", "b", 100, "p1", true, true, "")}
	g := da.BuildGraph(nodes, edges)

	_, planErr := NewAStar(g).FindPath("a", "c")
	require.NotNil(t, planErr)
	assert.Equal(t, UNREACHABLE, planErr.GetCode())
	assert.Equal(t, "c", planErr.GetNodeId())
}

func TestFindPathDisjointComponents(t *testing.T) {
	nodes := []da.Node{
		testNode("a", 0, 0), testNode("b", 0.0009, 0),
		testNode("c", 0.1, 0.1), testNode("d", 0.1009, 0.1),
	}
	edges := []da.Edge{
		da.NewEdge("e1", "a", "b", 100, "p1", true, true, ""),
		da.NewEdge("e2", "c", "d", 100, "p1", true, true, ""),
	}
	g := da.BuildGraph(nodes, edges)

	_, planErr := NewAStar(g).FindPath("a", "c")
	require.NotNil(t, planErr)
	assert.Equal(t, NO_PATH_FOUND, planErr.GetCode())
}

func TestFindPathDeterministic(t *testing.T) {
	g, _ := gridFixture(4, 4)

	first, planErr := NewAStar(g).FindPath("n0_0", "n3_3")
	require.Nil(t, planErr)

	for i := 0; i < 5; i++ {
		again, planErr := NewAStar(g).FindPath("n0_0", "n3_3")
		require.Nil(t, planErr)
		assert.Equal(t, first.GetTotalDistance(), again.GetTotalDistance())
		assert.Equal(t, first.GetNodeIds(), again.GetNodeIds())
	}
}

// gridFixture. rows x cols lattice (~55m spacing) with every
// horizontal/vertical neighbor connected plus a few diagonal shortcuts.
func gridFixture(rows, cols int) (*da.Graph, map[string]da.Node) {
	nodes := make([]da.Node, 0, rows*cols)
	nodeMap := make(map[string]da.Node)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			n := testNode(fmt.Sprintf("n%d_%d", i, j), float64(i)*0.0005, float64(j)*0.0005)
			nodes = append(nodes, n)
			nodeMap[n.Id] = n
		}
	}

	edges := make([]da.Edge, 0)
	eid := 0
	addEdge := func(from, to string) {
		edges = append(edges, geoEdge(fmt.Sprintf("e%d", eid), nodeMap, from, to, true))
		eid++
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if j+1 < cols {
				addEdge(fmt.Sprintf("n%d_%d", i, j), fmt.Sprintf("n%d_%d", i, j+1))
			}
			if i+1 < rows {
				addEdge(fmt.Sprintf("n%d_%d", i, j), fmt.Sprintf("n%d_%d", i+1, j))
			}
			if i+1 < rows && j+1 < cols && (i+j)%2 == 0 {
				addEdge(fmt.Sprintf("n%d_%d", i, j), fmt.Sprintf("n%d_%d", i+1, j+1))
			}
		}
	}

	return da.BuildGraph(nodes, edges), nodeMap
}

// dijkstraDistance. plain O(n²) reference implementation for cross-checking.
func dijkstraDistance(g *da.Graph, startId, goalId string) float64 {
	dist := make(map[string]float64)
	visited := make(map[string]bool)
	g.ForNodes(func(n da.Node) {
		dist[n.Id] = math.Inf(1)
	})
	dist[startId] = 0

	for {
		currId := ""
		best := math.Inf(1)
		for id, d := range dist {
			if !visited[id] && d < best {
				currId = id
				best = d
			}
		}
		if currId == "" {
			return math.Inf(1)
		}
		if currId == goalId {
			return best
		}
		visited[currId] = true

		g.ForNeighborsOf(currId, func(n da.Neighbor) {
			if best+n.Distance < dist[n.NodeId] {
				dist[n.NodeId] = best + n.Distance
			}
		})
	}
}

func TestFindPathOptimalityCrossCheck(t *testing.T) {
	g, _ := gridFixture(4, 5)

	queries := [][2]string{
		{"n0_0", "n3_4"},
		{"n0_4", "n3_0"},
		{"n1_1", "n2_3"},
		{"n3_2", "n0_0"},
		{"n2_0", "n1_4"},
	}

	for _, q := range queries {
		t.Run(fmt.Sprintf("%s->%s", q[0], q[1]), func(t *testing.T) {
			result, planErr := NewAStar(g).FindPath(q[0], q[1])
			require.Nil(t, planErr)

			want := dijkstraDistance(g, q[0], q[1])
			assert.InDelta(t, want, result.GetTotalDistance(), 1e-6)
		})
	}
}
