package spatialindex

import (
	"math"

	"github.com/lintang-b-s/wayfinder/pkg/datastructure"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// Rtree. spatial index over project nodes, used to snap arbitrary tap/sensor
// coordinates onto a navigable node without scanning every node.
type Rtree struct {
	tr *rtree.RTreeG[datastructure.Node]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Node]
	return &Rtree{
		tr: &tr,
	}
}

// Build. index every node as a degenerate (point) bounding box.
func (rt *Rtree) Build(nodes []datastructure.Node, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("nodes", len(nodes)))
	for _, node := range nodes {
		point := [2]float64{node.Position.Lon, node.Position.Lat}
		rt.tr.Insert(point, point, node)
	}
	log.Info("R-tree spatial index built.")
}

// SearchWithinRadius search for all nodes within radius (in meter) from the query point
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []datastructure.Node {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius*math.Sqrt2)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius*math.Sqrt2)

	results := make([]datastructure.Node, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, node datastructure.Node) bool {
			if geo.CalculateHaversineDistance(qLat, qLon, node.Position.Lat, node.Position.Lon) <= radius {
				results = append(results, node)
			}
			return true
		})
	return results
}

// NearestNode. nearest indexed node to the query point via the rtree distance
// traversal. second return is false when the index is empty.
func (rt *Rtree) NearestNode(qLat, qLon float64) (datastructure.Node, bool) {
	var (
		nearest datastructure.Node
		found   bool
	)
	rt.tr.Nearby(
		func(min, max [2]float64, node datastructure.Node, item bool) float64 {
			dLon := (min[0]+max[0])/2 - qLon
			dLat := (min[1]+max[1])/2 - qLat
			return dLon*dLon + dLat*dLat
		},
		func(min, max [2]float64, node datastructure.Node, dist float64) bool {
			nearest = node
			found = true
			return false
		})
	return nearest, found
}
