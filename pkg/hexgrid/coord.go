package hexgrid

import "math"

const (
	degsToRads = math.Pi / 180.0
	radsToDegs = 180.0 / math.Pi
)

// Coordinate is a point on the earth in degrees (EPSG:4326 axis order
// lat/lng). Degrees are the only unit this package exposes; no range
// clamping is performed, out-of-range values are passed through to the
// engine, whose behavior is authoritative.
type Coordinate struct {
	Lat float64
	Lng float64
}

// radians mirrors Coordinate in the unit the engine contract speaks. It
// exists only to cross that boundary and is never exposed.
type radians struct {
	lat float64
	lng float64
}

func (c Coordinate) toRadians() radians {
	return radians{lat: c.Lat * degsToRads, lng: c.Lng * degsToRads}
}

func (r radians) toDegrees() Coordinate {
	return Coordinate{Lat: r.lat * radsToDegs, Lng: r.lng * radsToDegs}
}
