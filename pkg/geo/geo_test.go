package geo

import (
	"testing"

	"github.com/lintang-b-s/wayfinder/pkg"
	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	testCases := []struct {
		name string
		a    Coordinate
		b    Coordinate
		want float64
	}{
		{
			name: "coincident points",
			a:    NewCoordinate(-7.7713, 110.3774),
			b:    NewCoordinate(-7.7713, 110.3774),
			want: 0,
		},
		{
			name: "100m north at the equator",
			a:    NewCoordinate(0, 0),
			b:    NewCoordinate(0.0009, 0),
			want: 100.08,
		},
		{
			name: "100m east at the equator",
			a:    NewCoordinate(0, 0),
			b:    NewCoordinate(0, 0.0009),
			want: 100.08,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistance(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 0.5)
		})
	}
}

func TestTurnAngleSignConvention(t *testing.T) {
	// heading east, then north: left turn, positive angle
	angle := TurnAngle(
		NewCoordinate(0, 0),
		NewCoordinate(0, 0.001),
		NewCoordinate(0.001, 0.001),
	)
	assert.InDelta(t, 90.0, angle, 0.01)

	// heading east, then south: right turn, negative angle
	angle = TurnAngle(
		NewCoordinate(0, 0),
		NewCoordinate(0, 0.001),
		NewCoordinate(-0.001, 0.001),
	)
	assert.InDelta(t, -90.0, angle, 0.01)

	// collinear: straight on
	angle = TurnAngle(
		NewCoordinate(0, 0),
		NewCoordinate(0, 0.001),
		NewCoordinate(0, 0.002),
	)
	assert.InDelta(t, 0.0, angle, 0.01)

	// full reversal maps to +180, never -180
	angle = TurnAngle(
		NewCoordinate(0, 0),
		NewCoordinate(0, 0.001),
		NewCoordinate(0, 0),
	)
	assert.InDelta(t, 180.0, angle, 0.01)
}

func TestClassifyTurnBoundaries(t *testing.T) {
	testCases := []struct {
		name  string
		angle float64
		want  pkg.TurnDirection
	}{
		{"zero is straight", 0, pkg.CONTINUE_STRAIGHT},
		{"boundary 15 stays straight", 15.0, pkg.CONTINUE_STRAIGHT},
		{"just past 15 is slight", 15.1, pkg.TURN_SLIGHT_LEFT},
		{"boundary 45 stays slight", 45.0, pkg.TURN_SLIGHT_LEFT},
		{"just past 45 is turn", 45.1, pkg.TURN_LEFT},
		{"boundary 135 stays turn", 135.0, pkg.TURN_LEFT},
		{"just past 135 is sharp", 135.1, pkg.TURN_SHARP_LEFT},
		{"reversal is u-turn", 180.0, pkg.U_TURN},
		{"negative slight", -20, pkg.TURN_SLIGHT_RIGHT},
		{"negative turn", -90, pkg.TURN_RIGHT},
		{"negative sharp", -150, pkg.TURN_SHARP_RIGHT},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTurn(tt.angle))
		})
	}
}

func TestBearingTo(t *testing.T) {
	// due north
	assert.InDelta(t, 0.0, BearingTo(0, 0, 1, 0), 0.01)
	// due east
	assert.InDelta(t, 90.0, BearingTo(0, 0, 0, 1), 0.01)
}

func TestPolylineRoundTrip(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(-7.7713, 110.3774),
		NewCoordinate(-7.7690, 110.3780),
		NewCoordinate(-7.7665, 110.3795),
	}

	encoded := PolylineFromCoords(coords)
	assert.NotEmpty(t, encoded)

	decoded, err := CoordsFromPolyline(encoded)
	assert.NoError(t, err)
	assert.Len(t, decoded, len(coords))
	for i := range coords {
		assert.InDelta(t, coords[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, coords[i].Lon, decoded[i].Lon, 1e-5)
	}
}

func TestPointLinePerpendicularDistance(t *testing.T) {
	// point ~100m north of the midpoint of a west-east segment
	dist := PointLinePerpendicularDistance(
		NewCoordinate(0, 0),
		NewCoordinate(0, 0.002),
		NewCoordinate(0.0009, 0.001),
	)
	assert.InDelta(t, 100.08, dist, 1.0)
}
