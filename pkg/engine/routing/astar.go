package routing

import (
	"github.com/lintang-b-s/wayfinder/pkg"
	da "github.com/lintang-b-s/wayfinder/pkg/datastructure"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
	"github.com/lintang-b-s/wayfinder/pkg/util"
)

type nodeInfo struct {
	gScore   float64
	parent   string
	edgeCost float64 // cost of the relaxed edge (parent -> node)
}

func newNodeInfo(gScore float64, parent string, edgeCost float64) nodeInfo {
	return nodeInfo{gScore: gScore, parent: parent, edgeCost: edgeCost}
}

// AStar. point-to-point shortest path search over a site graph, with the
// great-circle distance to the goal as heuristic. admissible because edge
// costs are themselves great-circle distances, so no direct edge is ever
// shorter than the straight line.
type AStar struct {
	graph *da.Graph

	info    map[string]nodeInfo
	settled map[string]struct{}
	pqNodes map[string]*da.PriorityQueueNode[string]
	pq      *da.MinHeap[string]

	numSettledNodes int
}

func NewAStar(graph *da.Graph) *AStar {
	return &AStar{
		graph:   graph,
		info:    make(map[string]nodeInfo),
		settled: make(map[string]struct{}),
		pqNodes: make(map[string]*da.PriorityQueueNode[string]),
		pq:      da.NewBinaryHeap[string](),
	}
}

/*
FindPath. compute the lowest-cost node sequence from startId to goalId.

failure pre-checks, in order, each a distinct reported value:
 1. startId not in graph -> UNKNOWN_NODE
 2. goalId not in graph -> UNKNOWN_NODE
 3. startId has no outgoing adjacency -> UNREACHABLE (isolated start)
 4. goalId appears in no adjacency list -> UNREACHABLE (isolated goal)
 5. open set exhausted -> NO_PATH_FOUND

startId == goalId short-circuits to the single-node path with distance 0,
valid even for a fully isolated node.
*/
func (as *AStar) FindPath(startId, goalId string) (*da.RouteResult, *PlanningError) {
	if !as.graph.HasNode(startId) {
		return nil, NewUnknownNodeError(startId)
	}
	if !as.graph.HasNode(goalId) {
		return nil, NewUnknownNodeError(goalId)
	}

	if startId == goalId {
		return as.buildResult([]string{startId}), nil
	}

	if as.graph.OutDegree(startId) == 0 {
		return nil, NewUnreachableError(startId, "isolated, it has no outgoing edges")
	}
	if as.graph.InDegree(goalId) == 0 {
		return nil, NewUnreachableError(goalId, "isolated, it has no incoming edges")
	}

	goalPos := as.graph.GetNodeCoordinate(goalId)

	as.info[startId] = newNodeInfo(0, "", 0)
	startNode := da.NewPriorityQueueNode(as.heuristic(startId, goalPos), startId)
	as.pqNodes[startId] = startNode
	as.pq.Insert(startNode)

	for !as.pq.IsEmpty() {
		pqNode, _ := as.pq.ExtractMin()
		currId := pqNode.GetItem()
		delete(as.pqNodes, currId)

		if currId == goalId {
			return as.buildResult(as.reconstructPath(startId, goalId)), nil
		}

		as.settled[currId] = struct{}{}
		as.numSettledNodes++

		as.graph.ForNeighborsOf(currId, func(n da.Neighbor) {
			if _, done := as.settled[n.NodeId]; done {
				return
			}

			newGScore := as.info[currId].gScore + n.Distance
			if newGScore >= pkg.INF_WEIGHT {
				return
			}

			neighborInfo, visited := as.info[n.NodeId]
			if visited && newGScore >= neighborInfo.gScore {
				// not better, do nothing
				return
			}

			as.info[n.NodeId] = newNodeInfo(newGScore, currId, n.Distance)

			priority := newGScore + as.heuristic(n.NodeId, goalPos)
			if openNode, inQueue := as.pqNodes[n.NodeId]; inQueue {
				as.pq.DecreaseKey(openNode, priority)
			} else {
				openNode := da.NewPriorityQueueNode(priority, n.NodeId)
				as.pqNodes[n.NodeId] = openNode
				as.pq.Insert(openNode)
			}
		})
	}

	return nil, NewNoPathFoundError(startId, goalId)
}

func (as *AStar) heuristic(nodeId string, goalPos geo.Coordinate) float64 {
	return geo.HaversineDistance(as.graph.GetNodeCoordinate(nodeId), goalPos)
}

// reconstructPath. walk predecessor pointers from goal back to start, then reverse.
func (as *AStar) reconstructPath(startId, goalId string) []string {
	backward := make([]string, 0)
	for currId := goalId; currId != startId; currId = as.info[currId].parent {
		backward = append(backward, currId)
	}
	backward = append(backward, startId)

	return util.ReverseG(backward)
}

// buildResult. total distance is the literal sum of the relaxed edge costs
// along the realized path, not re-derived from straight-line distance.
func (as *AStar) buildResult(path []string) *da.RouteResult {
	totalDistance := 0.0
	for _, nodeId := range path[1:] {
		totalDistance += as.info[nodeId].edgeCost
	}

	eta := util.SecondsToMinutes(totalDistance / pkg.WALKING_SPEED_MS)

	return da.NewRouteResult(path, totalDistance, eta, nil)
}

func (as *AStar) NumSettledNodes() int {
	return as.numSettledNodes
}
