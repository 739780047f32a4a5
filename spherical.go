// Great-circle routines for spherical ellipsoids. Also used as the
// best-effort fallback of the ellipsoidal inverse solver when the iteration
// does not converge near antipodal points.
//
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - */
/* Latitude/longitude spherical geodesy tools   (c) Chris Veness 2002-2019 */
/*                                                             MIT Licence */
/* www.movable-type.co.uk/scripts/latlong.html                             */
/* www.movable-type.co.uk/scripts/geodesy-library.html#latlon-spherical    */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - */

package geodetic

import "math"

const radians = math.Pi / 180
const degrees = 180 / math.Pi

// gcInverse solves the inverse problem on a sphere of radius r.
// All angles are in radians; azimuths are clockwise from north.
func gcInverse(r, φ1, λ1, φ2, λ2 float64) (s12, α1, α2 float64) {
	s12 = gcDistance(r, φ1, λ1, φ2, λ2)
	if s12 == 0 {
		// Coincident points. The azimuth is undefined; zero by
		// convention.
		return 0, 0, 0
	}
	α1 = gcBearing(φ1, λ1, φ2, λ2)
	α2 = wrapπ(gcBearing(φ2, λ2, φ1, λ1) + math.Pi)
	return s12, α1, α2
}

// gcDirect solves the direct problem on a sphere of radius r.
// All angles are in radians; azimuths are clockwise from north.
func gcDirect(r, φ1, λ1, α1, s12 float64) (φ2, λ2, α2 float64) {
	φ2, λ2 = gcDestination(r, φ1, λ1, α1, s12)
	α2 = wrapπ(gcBearing(φ2, λ2, φ1, λ1) + math.Pi)
	return φ2, λ2, α2
}

func gcDistance(r, φ1, λ1, φ2, λ2 float64) float64 {
	// haversine formula
	sΔφ2 := math.Sin((φ2 - φ1) / 2)
	sΔλ2 := math.Sin((λ2 - λ1) / 2)
	haver := sΔφ2*sΔφ2 + math.Cos(φ1)*math.Cos(φ2)*sΔλ2*sΔλ2
	return r * 2 * math.Asin(math.Sqrt(haver))
}

func gcBearing(φ1, λ1, φ2, λ2 float64) float64 {
	// tanθ = sinΔλ⋅cosφ2 / cosφ1⋅sinφ2 − sinφ1⋅cosφ2⋅cosΔλ
	// see mathforum.org/library/drmath/view/55417.html for derivation
	Δλ := λ2 - λ1
	y := math.Sin(Δλ) * math.Cos(φ2)
	x := math.Cos(φ1)*math.Sin(φ2) - math.Sin(φ1)*math.Cos(φ2)*math.Cos(Δλ)
	return math.Atan2(y, x)
}

func gcDestination(r, φ1, λ1, α1, s12 float64) (φ2, λ2 float64) {
	// sinφ2 = sinφ1⋅cosδ + cosφ1⋅sinδ⋅cosθ
	// tanΔλ = sinθ⋅sinδ⋅cosφ1 / cosδ−sinφ1⋅sinφ2
	// see mathforum.org/library/drmath/view/52049.html for derivation
	δ := s12 / r
	φ2 = math.Asin(math.Sin(φ1)*math.Cos(δ) +
		math.Cos(φ1)*math.Sin(δ)*math.Cos(α1))
	λ2 = λ1 + math.Atan2(math.Sin(α1)*math.Sin(δ)*math.Cos(φ1),
		math.Cos(δ)-math.Sin(φ1)*math.Sin(φ2))
	return φ2, wrapπ(λ2)
}

// wrap180 normalizes degrees to the range [-180,+180].
func wrap180(degs float64) float64 {
	if degs < -180 || degs > 180 {
		degs = math.Mod(degs, 360)
		if degs < -180 {
			degs += 360
		} else if degs > 180 {
			degs -= 360
		}
	}
	return degs
}

// wrapπ normalizes radians to the range [-π,+π].
func wrapπ(rads float64) float64 {
	if rads < -math.Pi || rads > math.Pi {
		rads = math.Mod(rads, 2*math.Pi)
		if rads < -math.Pi {
			rads += 2 * math.Pi
		} else if rads > math.Pi {
			rads -= 2 * math.Pi
		}
	}
	return rads
}
