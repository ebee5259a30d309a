package datastructure

import (
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/wayfinder/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	nodes := []Node{
		NewNode("a", "Main Entrance", geo.NewCoordinate(-7.7713, 110.3774), [2]float64{10, 20}, "p1", true),
		NewNode("b", "Food Court Level 2", geo.NewCoordinate(-7.7690, 110.3780), [2]float64{30, 40}, "p1", false),
	}
	edges := []Edge{
		NewEdge("e1", "a", "b", 123.456, "p1", true, true, "auto-connected: Main Entrance - Food Court Level 2"),
		NewEdge("e2", "b", "a", 99, "p1", false, false, ""),
	}

	filename := filepath.Join(t.TempDir(), "p1.graph")
	require.NoError(t, WriteSnapshot(filename, nodes, edges))

	gotNodes, gotEdges, err := ReadSnapshot(filename)
	require.NoError(t, err)

	assert.Equal(t, nodes, gotNodes)
	assert.Equal(t, edges, gotEdges)
}

func TestSnapshotRoundTripSeparatorCharacters(t *testing.T) {
	// tabs and newlines inside free text must not break the line-oriented format
	nodes := []Node{
		NewNode("a", "Hall\tA\nWest", geo.NewCoordinate(0, 0), [2]float64{0, 0}, "p1", true),
		NewNode("b", "back\\slash", geo.NewCoordinate(0.0009, 0), [2]float64{0, 0}, "p1", true),
	}
	edges := []Edge{
		NewEdge("e1", "a", "b", 100, "p1", true, true, "via\tservice\ncorridor"),
	}

	filename := filepath.Join(t.TempDir(), "p1.graph")
	require.NoError(t, WriteSnapshot(filename, nodes, edges))

	gotNodes, gotEdges, err := ReadSnapshot(filename)
	require.NoError(t, err)

	assert.Equal(t, nodes, gotNodes)
	assert.Equal(t, edges, gotEdges)
}

func TestReadSnapshotMissingFile(t *testing.T) {
	_, _, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope.graph"))
	assert.Error(t, err)
}
