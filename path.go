package geodetic

import (
	"fmt"
	"math"
)

// Point2D is a position in the calculator's coordinate space.
type Point2D struct {
	X, Y float64
}

// maxPathDepth bounds the subdivision of a single path segment. With each
// level halving the segment, 30 levels take a full circumference of the
// Earth below micrometre-sized segments, so reaching the bound means the
// flatness tolerance is unattainably tight rather than merely strict.
const maxPathDepth = 30

// pathSegment is a piece of the geodesic between the distance parameters d0
// and d1 (metres from the start point), with its end points already
// unwrapped and expressed in geographic degrees.
type pathSegment struct {
	d0, d1     float64
	lat0, lon0 float64
	lat1, lon1 float64
	depth      int
}

// GeodesicPath returns a polyline approximating the geodesic from the start
// point to the end point, expressed in the calculator's CRS. The flatness
// parameter is the maximum deviation, in CRS units, between the polyline and
// the true geodesic.
//
// Segments crossing the antimeridian are produced with longitudes shifted by
// ±360° instead of wrapped, so consecutive vertices always change
// monotonically and a renderer never draws a line across the whole map.
//
// The result is recomputed on every call; mutate the calculator and call
// again for a new path.
func (c *Calculator) GeodesicPath(flatness float64) ([]Point2D, error) {
	if !(flatness > 0) {
		return nil, fmt.Errorf("%w: flatness %v is not positive", ErrInvalidArgument, flatness)
	}
	if err := c.resolve(); err != nil {
		return nil, err
	}

	lat1, lon1 := c.φ1*degrees, wrap180(c.λ1*degrees)

	start, err := c.toPosition(lat1, lon1)
	if err != nil {
		return nil, err
	}
	path := []Point2D{start}
	if c.s12 == 0 {
		return append(path, start), nil
	}

	// A single chord cannot express a longitude sweep of half a turn or
	// more, which azimuth-driven geodesics may have. Cut the geodesic into
	// pieces no longer than a quarter of the circumference and chain the
	// longitude unwrapping through them, so every piece spans well under
	// 180° and the whole sequence stays monotonic.
	n := 1 + int(math.Abs(c.s12)/(0.5*math.Pi*c.e.authalic))
	pieces := make([]pathSegment, n)
	d0, plat, plon := 0.0, lat1, lon1
	for i := range pieces {
		d1 := c.s12 * float64(i+1) / float64(n)
		lat, lon := c.φ2*degrees, c.λ2*degrees
		if i < n-1 {
			φ, λ, _ := solveDirect(c.e, c.φ1, c.λ1, c.α1, d1)
			lat, lon = φ*degrees, λ*degrees
		} else {
			d1 = c.s12
		}
		lon = unwrapLongitude(wrap180(lon), plon)
		pieces[i] = pathSegment{
			d0: d0, d1: d1,
			lat0: plat, lon0: plon,
			lat1: lat, lon1: lon,
		}
		d0, plat, plon = d1, lat, lon
	}

	// Depth-first over an explicit stack, pieces and left halves pushed
	// last so the vertices come out in travel order.
	stack := make([]pathSegment, 0, n+2*maxPathDepth)
	for i := n - 1; i >= 0; i-- {
		stack = append(stack, pieces[i])
	}
	for len(stack) > 0 {
		seg := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// True geodesic midpoint: half the distance parameter along the
		// starting azimuth, not the chord midpoint.
		φm, λm, _ := solveDirect(c.e, c.φ1, c.λ1, c.α1, (seg.d0+seg.d1)/2)
		latm := φm * degrees
		lonm := unwrapLongitude(wrap180(λm*degrees), seg.lon0)

		p0, err := c.toPosition(seg.lat0, seg.lon0)
		if err != nil {
			return nil, err
		}
		p1, err := c.toPosition(seg.lat1, seg.lon1)
		if err != nil {
			return nil, err
		}
		pm, err := c.toPosition(latm, lonm)
		if err != nil {
			return nil, err
		}
		if distanceToChord(pm, p0, p1) <= flatness || seg.depth >= maxPathDepth {
			path = append(path, p1)
			continue
		}
		mid := (seg.d0 + seg.d1) / 2
		stack = append(stack, pathSegment{
			d0: mid, d1: seg.d1,
			lat0: latm, lon0: lonm,
			lat1: seg.lat1, lon1: seg.lon1,
			depth: seg.depth + 1,
		})
		stack = append(stack, pathSegment{
			d0: seg.d0, d1: mid,
			lat0: seg.lat0, lon0: seg.lon0,
			lat1: latm, lon1: lonm,
			depth: seg.depth + 1,
		})
	}
	return path, nil
}

// toPosition converts unwrapped geographic degrees to the calculator's CRS.
func (c *Calculator) toPosition(lat, lon float64) (Point2D, error) {
	x, y, err := c.tr.Reverse(lat, lon)
	if err != nil {
		return Point2D{}, fmt.Errorf("%w: path point (%v, %v): %v", ErrTransform, lat, lon, err)
	}
	return Point2D{X: x, Y: y}, nil
}

// unwrapLongitude shifts lon by a multiple of 360° so it lies within 180° of
// the reference longitude, which itself may already be unwrapped.
func unwrapLongitude(lon, ref float64) float64 {
	for lon-ref > 180 {
		lon -= 360
	}
	for lon-ref < -180 {
		lon += 360
	}
	return lon
}

// distanceToChord returns the perpendicular distance from p to the segment
// joining a and b, or the distance to the nearest end point when the
// projection falls outside the segment.
func distanceToChord(p, a, b Point2D) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	length := math.Hypot(abx, aby)
	if length < 1e-10 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / (length * length)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(p.X-(a.X+abx*t), p.Y-(a.Y+aby*t))
}
