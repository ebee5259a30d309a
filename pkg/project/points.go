package project

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lintang-b-s/wayfinder/pkg/datastructure"
	"github.com/lintang-b-s/wayfinder/pkg/geo"
)

// PointRecord. flat per-project point shape supplied by the storage collaborator.
type PointRecord struct {
	Label     string  `json:"label"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	ImageX    float64 `json:"image_x"`
	ImageY    float64 `json:"image_y"`
	ProjectId string  `json:"project_id"`
}

func NewPointRecord(label string, lat, lng, imageX, imageY float64, projectId string) PointRecord {
	return PointRecord{
		Label:     label,
		Lat:       lat,
		Lng:       lng,
		ImageX:    imageX,
		ImageY:    imageY,
		ProjectId: projectId,
	}
}

// reserved label substrings marking image-overlay calibration corners, matched
// case-insensitively. such points never become navigable nodes.
var calibrationMarkers = []string{"sw corner", "ne corner", "bound"}

func IsCalibrationPoint(label string) bool {
	lowered := strings.ToLower(label)
	for _, marker := range calibrationMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

/*
DeriveNodes. convert point records into navigable nodes, skipping calibration
corners. every derived node gets a uuid assigned exactly once here; the id
stays stable for the lifetime of the node regardless of later label or
position edits.
*/
func DeriveNodes(points []PointRecord) []datastructure.Node {
	nodes := make([]datastructure.Node, 0, len(points))
	for _, p := range points {
		if IsCalibrationPoint(p.Label) {
			continue
		}
		nodes = append(nodes, datastructure.NewNode(
			uuid.NewString(),
			p.Label,
			geo.NewCoordinate(p.Lat, p.Lng),
			[2]float64{p.ImageX, p.ImageY},
			p.ProjectId,
			true,
		))
	}
	return nodes
}
