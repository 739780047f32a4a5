package geodetic

import (
	"errors"
	"fmt"
	"math"
)

// Errors reported by the calculator. Setter validation failures and
// transform failures wrap the sentinels below so callers can test them with
// errors.Is.
var (
	// ErrInvalidArgument reports a latitude outside [-90,90], a non-finite
	// coordinate, or a non-finite azimuth or distance.
	ErrInvalidArgument = errors.New("geodetic: invalid argument")

	// ErrIncompleteState reports a getter called before the inputs it
	// derives from were supplied.
	ErrIncompleteState = errors.New("geodetic: end point, or azimuth and distance, not set")

	// ErrTransform reports a failure of the CRS transform. No geodesic
	// computation is attempted on coordinates that failed to transform.
	ErrTransform = errors.New("geodetic: coordinate transform failed")
)

// Validity bits for the lazily computed quantities.
const (
	validEndPoint = 1 << iota
	validStartAzimuth
	validEndAzimuth
	validDistance
	validRhumb
)

// Calculator performs geodetic computations between two points on an
// ellipsoid. It holds a start point, and either an end point or a starting
// azimuth and geodesic distance, whichever was set last. The remaining
// quantities are computed on demand and cached until a setter invalidates
// them.
//
// A Calculator is not safe for concurrent use; create one instance per
// goroutine or synchronize externally. The underlying Ellipsoid is
// immutable and safely shared.
type Calculator struct {
	crs CRS
	e   *Ellipsoid
	tr  Transform

	φ1, λ1   float64 // start point (radians); always valid, defaults to (0,0)
	φ2, λ2   float64 // end point (radians)
	α1, α2   float64 // azimuths (radians)
	s12      float64 // geodesic distance (metres)
	rhumb    float64 // rhumb-line length (metres)
	accuracy float64 // accuracy estimate of the last inverse solution

	valid     uint8
	byAzimuth bool // driving input is azimuth+distance rather than the end point
}

// NewCalculator returns a calculator operating on the given CRS. The
// geographic transform of the CRS is resolved once and cached. The start
// point defaults to latitude 0, longitude 0.
func NewCalculator(crs CRS) (*Calculator, error) {
	tr, err := crs.Geographic()
	if err != nil {
		return nil, fmt.Errorf("%w: resolving geographic transform: %v", ErrTransform, err)
	}
	return &Calculator{crs: crs, e: crs.Ellipsoid(), tr: tr}, nil
}

// Ellipsoid returns the reference ellipsoid of the calculator.
func (c *Calculator) Ellipsoid() *Ellipsoid {
	return c.e
}

// CRS returns the coordinate reference system the calculator was created
// with.
func (c *Calculator) CRS() CRS {
	return c.crs
}

func checkPoint(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90,90]", ErrInvalidArgument, lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return fmt.Errorf("%w: longitude %v is not finite", ErrInvalidArgument, lon)
	}
	return nil
}

// SetStartPoint sets the start point to the given geographic coordinates in
// degrees. An explicitly set end point is kept, but every quantity computed
// from the previous pair of points is invalidated. In azimuth-and-distance
// mode the azimuth and distance are kept as the driving inputs and the
// derived end point is invalidated instead.
func (c *Calculator) SetStartPoint(lat, lon float64) error {
	if err := checkPoint(lat, lon); err != nil {
		return err
	}
	c.φ1 = lat * radians
	c.λ1 = wrapπ(lon * radians)
	if c.byAzimuth {
		c.valid &^= validEndPoint | validEndAzimuth | validRhumb
	} else {
		c.valid &^= validStartAzimuth | validEndAzimuth | validDistance | validRhumb
	}
	return nil
}

// SetEndPoint sets the end point to the given geographic coordinates in
// degrees and makes the two points the driving inputs. Azimuths, distance
// and rhumb-line length become derivable and are computed lazily.
func (c *Calculator) SetEndPoint(lat, lon float64) error {
	if err := checkPoint(lat, lon); err != nil {
		return err
	}
	c.φ2 = lat * radians
	c.λ2 = wrapπ(lon * radians)
	c.byAzimuth = false
	c.valid = c.valid&^(validStartAzimuth|validEndAzimuth|validDistance|validRhumb) | validEndPoint
	return nil
}

// SetStartingAzimuth sets the azimuth, in degrees clockwise from north, of
// the geodesic leaving the start point, and switches the calculator to
// azimuth-and-distance mode. The value is normalized modulo 360° before
// storage. The end point becomes a derived quantity, recomputed lazily once
// a geodesic distance is also available.
func (c *Calculator) SetStartingAzimuth(azimuth float64) error {
	if math.IsNaN(azimuth) || math.IsInf(azimuth, 0) {
		return fmt.Errorf("%w: azimuth %v is not finite", ErrInvalidArgument, azimuth)
	}
	c.α1 = wrap180(azimuth) * radians
	c.byAzimuth = true
	c.valid = c.valid&^(validEndPoint|validEndAzimuth|validRhumb) | validStartAzimuth
	return nil
}

// SetGeodesicDistance sets the distance in metres from the start point along
// the starting azimuth, and switches the calculator to azimuth-and-distance
// mode. A negative distance walks the reciprocal azimuth. The end point
// becomes a derived quantity.
func (c *Calculator) SetGeodesicDistance(distance float64) error {
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return fmt.Errorf("%w: distance %v is not finite", ErrInvalidArgument, distance)
	}
	c.s12 = distance
	c.accuracy = 0
	c.byAzimuth = true
	c.valid = c.valid&^(validEndPoint|validEndAzimuth|validRhumb) | validDistance
	return nil
}

// resolve fills the distance, azimuth and end-point caches from the driving
// inputs: the direct problem in azimuth-and-distance mode, the inverse
// problem in end-point mode. It reports ErrIncompleteState when the driving
// inputs were never supplied.
func (c *Calculator) resolve() error {
	if c.byAzimuth {
		if c.valid&validStartAzimuth == 0 || c.valid&validDistance == 0 {
			return ErrIncompleteState
		}
		if c.valid&validEndPoint == 0 || c.valid&validEndAzimuth == 0 {
			c.φ2, c.λ2, c.α2 = solveDirect(c.e, c.φ1, c.λ1, c.α1, c.s12)
			c.accuracy = 0
			c.valid |= validEndPoint | validEndAzimuth
		}
		return nil
	}
	if c.valid&validEndPoint == 0 {
		return ErrIncompleteState
	}
	const derived = validStartAzimuth | validEndAzimuth | validDistance
	if c.valid&derived != derived {
		c.s12, c.α1, c.α2, c.accuracy = solveInverse(c.e, c.φ1, c.λ1, c.φ2, c.λ2)
		c.valid |= derived
	}
	return nil
}

// StartPoint returns the start point in geographic degrees.
func (c *Calculator) StartPoint() (lat, lon float64) {
	return c.φ1 * degrees, wrap180(c.λ1 * degrees)
}

// EndPoint returns the end point in geographic degrees, computing it with
// the direct solver when the calculator is in azimuth-and-distance mode.
// An explicitly set end point is returned as-is.
func (c *Calculator) EndPoint() (lat, lon float64, err error) {
	if c.valid&validEndPoint == 0 {
		if err := c.resolve(); err != nil {
			return math.NaN(), math.NaN(), err
		}
	}
	return c.φ2 * degrees, wrap180(c.λ2 * degrees), nil
}

// GeodesicDistance returns the length in metres of the geodesic joining the
// start and end points, computing it if needed. An explicitly set distance
// is returned as-is, even before a starting azimuth is supplied.
func (c *Calculator) GeodesicDistance() (float64, error) {
	if c.valid&validDistance == 0 {
		if err := c.resolve(); err != nil {
			return math.NaN(), err
		}
	}
	return c.s12, nil
}

// StartingAzimuth returns the azimuth in degrees, clockwise from north and
// in the range (-180,180], of the geodesic at the start point, computing it
// if needed. An explicitly set azimuth is returned as-is, even before a
// geodesic distance is supplied.
func (c *Calculator) StartingAzimuth() (float64, error) {
	if c.valid&validStartAzimuth == 0 {
		if err := c.resolve(); err != nil {
			return math.NaN(), err
		}
	}
	return wrap180(c.α1 * degrees), nil
}

// EndingAzimuth returns the forward azimuth in degrees of the geodesic at
// the end point, computing it if needed.
func (c *Calculator) EndingAzimuth() (float64, error) {
	if c.valid&validEndAzimuth == 0 {
		if err := c.resolve(); err != nil {
			return math.NaN(), err
		}
	}
	return wrap180(c.α2 * degrees), nil
}

// GeodesicAccuracy returns the accuracy estimate in metres of the current
// distance and azimuth values. Zero means full precision; a non-zero value
// is reported for nearly antipodal points answered by the spherical
// fallback of the inverse solver.
func (c *Calculator) GeodesicAccuracy() (float64, error) {
	if err := c.resolve(); err != nil {
		return math.NaN(), err
	}
	return c.accuracy, nil
}

// RhumblineLength returns the length in metres of the constant-bearing path
// joining the start and end points, computing it if needed. It is never
// shorter than the geodesic distance.
func (c *Calculator) RhumblineLength() (float64, error) {
	if c.valid&validEndPoint == 0 {
		if err := c.resolve(); err != nil {
			return math.NaN(), err
		}
	}
	if c.valid&validRhumb == 0 {
		c.rhumb = rhumbLength(c.e, c.φ1, c.λ1, c.φ2, c.λ2)
		c.valid |= validRhumb
	}
	return c.rhumb, nil
}

// MoveToEndPoint makes the current end point the new start point. The end
// point, azimuths, distance and rhumb length are all invalidated; callers
// typically follow with SetEndPoint to walk a sequence of points.
func (c *Calculator) MoveToEndPoint() error {
	if c.valid&validEndPoint == 0 {
		if err := c.resolve(); err != nil {
			return err
		}
	}
	c.φ1, c.λ1 = c.φ2, c.λ2
	c.byAzimuth = false
	c.valid = 0
	return nil
}

// SetStartPosition sets the start point from a position in the calculator's
// CRS, converting it through the geographic transform.
func (c *Calculator) SetStartPosition(x, y float64) error {
	lat, lon, err := c.tr.Forward(x, y)
	if err != nil {
		return fmt.Errorf("%w: start position (%v, %v): %v", ErrTransform, x, y, err)
	}
	return c.SetStartPoint(lat, lon)
}

// SetEndPosition sets the end point from a position in the calculator's
// CRS, converting it through the geographic transform.
func (c *Calculator) SetEndPosition(x, y float64) error {
	lat, lon, err := c.tr.Forward(x, y)
	if err != nil {
		return fmt.Errorf("%w: end position (%v, %v): %v", ErrTransform, x, y, err)
	}
	return c.SetEndPoint(lat, lon)
}

// StartPosition returns the start point expressed in the calculator's CRS.
func (c *Calculator) StartPosition() (x, y float64, err error) {
	lat, lon := c.StartPoint()
	x, y, err = c.tr.Reverse(lat, lon)
	if err != nil {
		return math.NaN(), math.NaN(), fmt.Errorf("%w: start point: %v", ErrTransform, err)
	}
	return x, y, nil
}

// EndPosition returns the end point expressed in the calculator's CRS,
// computing it first if the calculator is in azimuth-and-distance mode.
func (c *Calculator) EndPosition() (x, y float64, err error) {
	lat, lon, err := c.EndPoint()
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	x, y, err = c.tr.Reverse(lat, lon)
	if err != nil {
		return math.NaN(), math.NaN(), fmt.Errorf("%w: end point: %v", ErrTransform, err)
	}
	return x, y, nil
}
