package datastructure

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/lintang-b-s/wayfinder/pkg/concurrent"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
)

/*
AutoConnect. synthesize one bidirectional, accessible edge for every unordered
pair of distinct nodes within thresholdMeters of each other. O(n²) on node
count, which stays cheap for per-project node counts (tens, not thousands).

row scans run on a worker pool, one job per source node; each worker only pairs
its node with higher indices so every unordered pair is emitted exactly once.
*/
func AutoConnect(nodes []Node, thresholdMeters float64) []Edge {
	if len(nodes) < 2 {
		return []Edge{}
	}

	pool := concurrent.NewWorkerPool[int, []Edge](4, len(nodes))

	for i := range nodes {
		pool.AddJob(i)
	}
	pool.Close()

	pool.Start(func(i int) []Edge {
		rowEdges := make([]Edge, 0)
		for j := i + 1; j < len(nodes); j++ {
			dist := geo.HaversineDistance(nodes[i].Position, nodes[j].Position)
			if dist <= thresholdMeters {
				rowEdges = append(rowEdges, NewEdge(
					uuid.NewString(),
					nodes[i].Id, nodes[j].Id,
					dist,
					nodes[i].ProjectId,
					true, true,
					fmt.Sprintf("auto-connected: %s - %s", nodes[i].Label, nodes[j].Label),
				))
			}
		}
		return rowEdges
	})
	pool.Wait()

	edges := make([]Edge, 0)
	for rowEdges := range pool.CollectResults() {
		edges = append(edges, rowEdges...)
	}

	// worker completion order is nondeterministic, keep the output stable
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].FromNodeId != edges[b].FromNodeId {
			return edges[a].FromNodeId < edges[b].FromNodeId
		}
		return edges[a].ToNodeId < edges[b].ToNodeId
	})

	return edges
}
