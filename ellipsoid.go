// Package geodetic computes geodesics on a reference ellipsoid: distances,
// forward and reverse azimuths, rhumb-line lengths, and interpolated paths
// suitable for rendering.
//
// The Ellipsoid type solves the direct and inverse geodesic problems with
// plain numeric inputs and outputs. The Calculator type adds a stateful
// facade on top of it: set a start point and either an end point or an
// azimuth and distance, then read the derived quantities, which are computed
// lazily and cached until a mutation invalidates them.
package geodetic

import "math"

// WGS84 conforming ellipsoid.
// https://en.wikipedia.org/wiki/World_Geodetic_System
var WGS84 = NewEllipsoid(6378137, 1/298.257223563)

// Globe is a pre-initialized sphere representing Earth as a terrestrial
// globe.
var Globe = NewSpherical(6378137)

// Tolerance thresholds for geodetic computations. The angular tolerance is
// derived from the linear one using the standard nautical mile as the length
// of one minute of latitude, which puts it slightly below 1E-7 degree for a
// one centimetre target.
const (
	linearTolerance  = 0.01                          // metres
	angularTolerance = linearTolerance / (1852 * 60) // degrees
)

// maxIterations caps the iterative geodesic solvers. Exceeding the cap is
// not an error: the inverse solver falls back to a best-effort result and
// reports a non-zero accuracy estimate instead.
const maxIterations = 18

// solverTolerance is the convergence threshold, in radians, of the
// longitude-difference iteration in the inverse problem.
const solverTolerance = 1e-12

// Ellipsoid is an object for performing geodesic operations.
type Ellipsoid struct {
	a         float64 // semi-major axis (metres)
	b         float64 // semi-minor axis, a(1-f)
	f         float64 // flattening
	e2        float64 // first eccentricity squared, f(2-f)
	authalic  float64 // radius of the sphere with the same surface
	spherical bool
}

// NewEllipsoid initializes a new geodesic ellipsoid object.
//
// Param radius is the equatorial radius (metres).
// Param flattening is the flattening factor of the ellipsoid.
//
// NewEllipsoid panics if the equatorial radius or the derived polar
// semi-axis is not a finite positive quantity.
//
// The WGS84 package-level variable is a pre-initialized ellipsoid
// representing Earth.
func NewEllipsoid(radius, flattening float64) *Ellipsoid {
	e := &Ellipsoid{
		a:  radius,
		b:  radius * (1 - flattening),
		f:  flattening,
		e2: flattening * (2 - flattening),
	}
	if !(e.a > 0) || math.IsInf(e.a, 0) {
		panic("geodetic: equatorial radius is not positive")
	}
	if !(e.b > 0) || math.IsInf(e.b, 0) {
		panic("geodetic: polar semi-axis is not positive")
	}
	if e.a != e.b {
		ecc := math.Sqrt(e.e2)
		e.authalic = math.Sqrt(0.5 * (e.a*e.a + e.b*e.b*math.Atanh(ecc)/ecc))
	} else {
		e.authalic = e.a
	}
	return e
}

// NewSpherical initializes a new geodesic ellipsoid object that uses
// simplified operations on a sphere.
//
// The Inverse and Direct operations will often be more computationally
// efficient than NewEllipsoid because they use great-circle calculations
// such as the haversine formula.
//
// Param radius is the equatorial radius (metres).
//
// The Globe package-level variable is a pre-initialized spherical
// representing Earth as a terrestrial globe.
func NewSpherical(radius float64) *Ellipsoid {
	e := NewEllipsoid(radius, 0)
	e.spherical = true
	return e
}

// Radius of the Ellipsoid.
func (e *Ellipsoid) Radius() float64 {
	return e.a
}

// SemiMinor returns the polar semi-axis of the Ellipsoid.
func (e *Ellipsoid) SemiMinor() float64 {
	return e.b
}

// Flattening of the Ellipsoid.
func (e *Ellipsoid) Flattening() float64 {
	return e.f
}

// AuthalicRadius returns the radius of the hypothetical sphere having the
// same surface as the Ellipsoid.
func (e *Ellipsoid) AuthalicRadius() float64 {
	return e.authalic
}

// Spherical returns true if the ellipsoid was initialized using NewSpherical.
func (e *Ellipsoid) Spherical() bool {
	return e.spherical
}

// Inverse solves the inverse geodesic problem.
//
// Param lat1 is latitude of point 1 (degrees).
// Param lon1 is longitude of point 1 (degrees).
// Param lat2 is latitude of point 2 (degrees).
// Param lon2 is longitude of point 2 (degrees).
// Out param s12 is a pointer to the distance from point 1 to point 2 (metres).
// Out param azi1 is a pointer to the azimuth at point 1 (degrees).
// Out param azi2 is a pointer to the (forward) azimuth at point 2 (degrees).
//
// lat1 and lat2 should be in the range [-90,+90].
// The values of azi1 and azi2 returned are in the range [-180,+180].
// Any of the "return" arguments, s12, etc., may be replaced with nil, if you
// do not need some quantities computed.
//
// The returned value is an accuracy estimate in metres. Zero means the
// iteration converged and the result carries the full precision of the
// method. A non-zero value is returned for nearly antipodal points, where
// the iteration does not converge and a great-circle solution on the
// authalic sphere is substituted; the estimate then bounds the error of
// that substitution.
func (e *Ellipsoid) Inverse(
	lat1, lon1, lat2, lon2 float64,
	s12, azi1, azi2 *float64,
) float64 {
	s, α1, α2, acc := solveInverse(e, lat1*radians, lon1*radians, lat2*radians, lon2*radians)
	if s12 != nil {
		*s12 = s
	}
	if azi1 != nil {
		*azi1 = wrap180(α1 * degrees)
	}
	if azi2 != nil {
		*azi2 = wrap180(α2 * degrees)
	}
	return acc
}

// Direct solves the direct geodesic problem.
//
// Param lat1 is the latitude of point 1 (degrees).
// Param lon1 is the longitude of point 1 (degrees).
// Param azi1 is the azimuth at point 1 (degrees).
// Param s12 is the distance from point 1 to point 2 (metres). negative is ok.
// Out param lat2 is a pointer to the latitude of point 2 (degrees).
// Out param lon2 is a pointer to the longitude of point 2 (degrees).
// Out param azi2 is a pointer to the (forward) azimuth at point 2 (degrees).
//
// lat1 should be in the range [-90,+90].
// The values of lon2 and azi2 returned are in the range [-180,+180].
// Any of the "return" arguments, lat2, etc., may be replaced with nil, if you
// do not need some quantities computed.
func (e *Ellipsoid) Direct(
	lat1, lon1, azi1, s12 float64,
	lat2, lon2, azi2 *float64,
) {
	φ2, λ2, α2 := solveDirect(e, lat1*radians, lon1*radians, azi1*radians, s12)
	if lat2 != nil {
		*lat2 = φ2 * degrees
	}
	if lon2 != nil {
		*lon2 = wrap180(λ2 * degrees)
	}
	if azi2 != nil {
		*azi2 = wrap180(α2 * degrees)
	}
}

// RhumbLength returns the length of the rhumb line (loxodrome) joining two
// points, that is the path of constant compass bearing. It is never shorter
// than the geodesic between the same points.
//
// Param lat1, lon1 are the coordinates of point 1 (degrees).
// Param lat2, lon2 are the coordinates of point 2 (degrees).
func (e *Ellipsoid) RhumbLength(lat1, lon1, lat2, lon2 float64) float64 {
	return rhumbLength(e, lat1*radians, lon1*radians, lat2*radians, lon2*radians)
}
