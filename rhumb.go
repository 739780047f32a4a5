// Closed-form rhumb line (loxodrome) length on the ellipsoid. The course
// is obtained from the isometric latitude difference, the length from the
// meridian arc scaled by the secant of the course. No iteration is needed.

package geodetic

import "math"

// parallelThreshold is the latitude difference, in radians, below which the
// two points are considered to lie on the same parallel and the east-west
// formula is used to avoid dividing by a vanishing meridian arc difference.
const parallelThreshold = angularTolerance * radians

// rhumbLength returns the length in metres of the constant-bearing path
// joining two points. All angles are in radians.
func rhumbLength(e *Ellipsoid, φ1, λ1, φ2, λ2 float64) float64 {
	Δλ := math.Abs(wrapπ(λ2 - λ1))
	if math.Abs(φ2-φ1) < parallelThreshold {
		// East-west along a parallel: the rhumb line follows the parallel
		// circle, whose radius on the ellipsoid is a·cosφ/√(1-e²sin²φ).
		sinφ := math.Sin(φ1)
		return Δλ * e.a * math.Cos(φ1) / math.Sqrt(1-e.e2*sinφ*sinφ)
	}
	Δψ := isometricLatitude(e, φ2) - isometricLatitude(e, φ1)
	θ := math.Atan2(Δλ, math.Abs(Δψ))
	Δm := meridianArc(e, φ2) - meridianArc(e, φ1)
	return math.Abs(Δm / math.Cos(θ))
}

// isometricLatitude returns ψ(φ) = atanh(sinφ) - e·atanh(e·sinφ), the
// latitude of the conformal projection onto the sphere. Infinite at the
// poles, which the caller's atan2 handles naturally.
func isometricLatitude(e *Ellipsoid, φ float64) float64 {
	sinφ := math.Sin(φ)
	if e.e2 == 0 {
		return math.Atanh(sinφ)
	}
	ecc := math.Sqrt(e.e2)
	return math.Atanh(sinφ) - ecc*math.Atanh(ecc*sinφ)
}

// meridianArc returns the distance in metres along the meridian from the
// equator to latitude φ, using the standard series in the eccentricity
// truncated after e⁶ (well below the linear tolerance for Earth-like
// flattenings).
func meridianArc(e *Ellipsoid, φ float64) float64 {
	e2 := e.e2
	e4 := e2 * e2
	e6 := e4 * e2
	return e.a * ((1-e2/4-3*e4/64-5*e6/256)*φ -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*φ) +
		(15*e4/256+45*e6/1024)*math.Sin(4*φ) -
		35*e6/3072*math.Sin(6*φ))
}
