// Package geodesy interpolates great-circle paths for route arcs.
package geodesy

import (
	"iter"
	"math"
	"slices"

	"github.com/skypies/geo"
)

// DefaultSteps is the number of segments used for route arcs.
const DefaultSteps = 64

// CentralAngle is the haversine angular distance between two points, in radians.
func CentralAngle(p1, p2 geo.Latlong) float64 {
	lat1, lon1 := toRadians(p1.Lat), toRadians(p1.Long)
	lat2, lon2 := toRadians(p2.Lat), toRadians(p2.Long)

	sinLat := math.Sin((lat2 - lat1) / 2)
	sinLon := math.Sin((lon2 - lon1) / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * math.Asin(math.Sqrt(math.Min(1, h)))
}

// GreatCircleArc yields steps+1 points along the great circle from p1 to p2
// using spherical linear interpolation. The first point is exactly p1 and the
// last exactly p2. Identical endpoints yield the two-point segment [p1, p2].
// A non-positive steps is treated as 1.
func GreatCircleArc(p1, p2 geo.Latlong, steps int) iter.Seq[geo.Latlong] {
	if steps < 1 {
		steps = 1
	}
	d := CentralAngle(p1, p2)

	return func(yield func(geo.Latlong) bool) {
		if d == 0 {
			if yield(p1) {
				yield(p2)
			}
			return
		}

		lat1, lon1 := toRadians(p1.Lat), toRadians(p1.Long)
		lat2, lon2 := toRadians(p2.Lat), toRadians(p2.Long)
		sinD := math.Sin(d)

		for i := 0; i <= steps; i++ {
			var pt geo.Latlong
			switch i {
			case 0:
				pt = p1
			case steps:
				pt = p2
			default:
				f := float64(i) / float64(steps)
				a := math.Sin((1-f)*d) / sinD
				b := math.Sin(f*d) / sinD

				x := a*math.Cos(lat1)*math.Cos(lon1) + b*math.Cos(lat2)*math.Cos(lon2)
				y := a*math.Cos(lat1)*math.Sin(lon1) + b*math.Cos(lat2)*math.Sin(lon2)
				z := a*math.Sin(lat1) + b*math.Sin(lat2)

				pt = geo.Latlong{
					Lat:  toDegrees(math.Atan2(z, math.Sqrt(x*x+y*y))),
					Long: toDegrees(math.Atan2(y, x)),
				}
			}
			if !yield(pt) {
				return
			}
		}
	}
}

// Arc collects GreatCircleArc into a slice.
func Arc(p1, p2 geo.Latlong, steps int) []geo.Latlong {
	return slices.Collect(GreatCircleArc(p1, p2, steps))
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }
