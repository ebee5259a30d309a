package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/wayfinder/pkg"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
)

// Node. one navigable, geo-referenced point of a project.
// identity is the Id string alone, other fields are presentation payload.
type Node struct {
	Id          string         `json:"id"`
	Label       string         `json:"label"`
	Position    geo.Coordinate `json:"position"`
	ImageOffset [2]float64     `json:"image_offset"` // pixel offset into the overlay image, carried for the presentation layer
	ProjectId   string         `json:"project_id"`
	Accessible  bool           `json:"accessible"`
}

func NewNode(id, label string, position geo.Coordinate, imageOffset [2]float64,
	projectId string, accessible bool) Node {
	return Node{
		Id:          id,
		Label:       label,
		Position:    position,
		ImageOffset: imageOffset,
		ProjectId:   projectId,
		Accessible:  accessible,
	}
}

// Edge. one traversable connection between two nodes.
type Edge struct {
	Id             string  `json:"id"`
	FromNodeId     string  `json:"from_node_id"`
	ToNodeId       string  `json:"to_node_id"`
	DistanceMeters float64 `json:"distance_meters"`
	ProjectId      string  `json:"project_id"`
	Bidirectional  bool    `json:"bidirectional"`
	Accessible     bool    `json:"accessible"`
	Description    string  `json:"description,omitempty"`
}

func NewEdge(id, fromNodeId, toNodeId string, distanceMeters float64,
	projectId string, bidirectional, accessible bool, description string) Edge {
	return Edge{
		Id:             id,
		FromNodeId:     fromNodeId,
		ToNodeId:       toNodeId,
		DistanceMeters: distanceMeters,
		ProjectId:      projectId,
		Bidirectional:  bidirectional,
		Accessible:     accessible,
		Description:    description,
	}
}

// Neighbor. one directed adjacency entry.
type Neighbor struct {
	NodeId   string
	Distance float64
}

func NewNeighbor(nodeId string, distance float64) Neighbor {
	return Neighbor{NodeId: nodeId, Distance: distance}
}

// Graph. id->node map plus directed adjacency lists, built once per planning call.
// no connectivity invariant: disconnected components are a planning failure,
// never a crash.
type Graph struct {
	nodes     map[string]Node
	adjacency map[string][]Neighbor
	inDegree  map[string]int
}

/*
BuildGraph. build the node map and adjacency lists in one pass.

edges with Accessible == false are invisible to the planner. bidirectional
edges get a reverse entry with identical cost. parallel edges are kept as-is,
the planner's relaxation naturally settles on the cheaper one.

an edge referencing a node id missing from nodes is a collaborator contract
violation and panics here, at construction time, rather than surfacing mid-search.
*/
func BuildGraph(nodes []Node, edges []Edge) *Graph {
	g := &Graph{
		nodes:     make(map[string]Node, len(nodes)),
		adjacency: make(map[string][]Neighbor, len(nodes)),
		inDegree:  make(map[string]int, len(nodes)),
	}

	for _, n := range nodes {
		g.nodes[n.Id] = n
	}

	for _, e := range edges {
		if _, ok := g.nodes[e.FromNodeId]; !ok {
			panic(fmt.Sprintf("edge %s references unknown node %s", e.Id, e.FromNodeId))
		}
		if _, ok := g.nodes[e.ToNodeId]; !ok {
			panic(fmt.Sprintf("edge %s references unknown node %s", e.Id, e.ToNodeId))
		}

		if !e.Accessible {
			continue
		}

		g.addAdjacency(e.FromNodeId, e.ToNodeId, e.DistanceMeters)
		if e.Bidirectional {
			g.addAdjacency(e.ToNodeId, e.FromNodeId, e.DistanceMeters)
		}
	}

	return g
}

func (g *Graph) addAdjacency(from, to string, distance float64) {
	g.adjacency[from] = append(g.adjacency[from], NewNeighbor(to, distance))
	g.inDegree[to]++
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *Graph) GetNode(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) GetNodeCoordinate(id string) geo.Coordinate {
	return g.nodes[id].Position
}

func (g *Graph) NumberOfNodes() int {
	return len(g.nodes)
}

func (g *Graph) OutDegree(id string) int {
	return len(g.adjacency[id])
}

func (g *Graph) InDegree(id string) int {
	return g.inDegree[id]
}

func (g *Graph) ForNeighborsOf(id string, handle func(n Neighbor)) {
	for _, n := range g.adjacency[id] {
		handle(n)
	}
}

func (g *Graph) ForNodes(handle func(n Node)) {
	for _, n := range g.nodes {
		handle(n)
	}
}

// EdgeCost. cheapest adjacency cost between two directly connected nodes.
// used to re-derive the realized path cost from the chosen edges.
func (g *Graph) EdgeCost(from, to string) (float64, bool) {
	best := pkg.INF_WEIGHT
	found := false
	for _, n := range g.adjacency[from] {
		if n.NodeId == to && n.Distance < best {
			best = n.Distance
			found = true
		}
	}
	return best, found
}
