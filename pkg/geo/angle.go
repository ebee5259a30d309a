package geo

import (
	"math"

	"github.com/lintang-b-s/wayfinder/pkg"
	"github.com/lintang-b-s/wayfinder/pkg/util"
)

/*
BearingTo. compute initial bearing for edge (p1,p2).
https://www.movable-type.co.uk/scripts/latlong.html
*/
func BearingTo(p1Lat, p1Lon, p2Lat, p2Lon float64) float64 {

	dLon := util.DegreeToRadians(p2Lon - p1Lon)

	lat1 := util.DegreeToRadians(p1Lat)
	lat2 := util.DegreeToRadians(p2Lat)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	brng := math.Mod(util.RadiansToDegree(math.Atan2(y, x))+360, 360.0)

	return brng
}

/*
TurnAngle. signed angle in (-180,180] between incoming vector (curr-prev) and
outgoing vector (next-curr), computed with planar cross/dot product on raw
lat/lon deltas. positive = left turn, negative = right turn.

this small-scale planar approximation only holds for the short legs of a
single site, not for long-haul geodesics.
*/
func TurnAngle(prev, curr, next Coordinate) float64 {
	inLat := curr.Lat - prev.Lat
	inLon := curr.Lon - prev.Lon
	outLat := next.Lat - curr.Lat
	outLon := next.Lon - curr.Lon

	cross := inLon*outLat - inLat*outLon
	dot := inLon*outLon + inLat*outLat

	angle := util.RadiansToDegree(math.Atan2(cross, dot))
	if angle <= -180 {
		angle += 360
	}
	return angle
}

// ClassifyTurn. map a signed turn angle onto the discrete turn table.
// boundary angles (15, 45, 135) fall on the smaller class.
func ClassifyTurn(angleDegree float64) pkg.TurnDirection {
	absAngle := math.Abs(angleDegree)

	switch {
	case absAngle <= 15:
		return pkg.CONTINUE_STRAIGHT
	case absAngle <= 45:
		if angleDegree > 0 {
			return pkg.TURN_SLIGHT_LEFT
		}
		return pkg.TURN_SLIGHT_RIGHT
	case absAngle <= 135:
		if angleDegree > 0 {
			return pkg.TURN_LEFT
		}
		return pkg.TURN_RIGHT
	case absAngle < 180:
		if angleDegree > 0 {
			return pkg.TURN_SHARP_LEFT
		}
		return pkg.TURN_SHARP_RIGHT
	default:
		return pkg.U_TURN
	}
}
