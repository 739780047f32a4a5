// Ellipsoidal geodesic solver using Vincenty's formulae: the problem is
// mapped onto an auxiliary sphere through reduced latitudes, solved there,
// and corrected back with series expansions in the ellipsoid eccentricity.
//
// The functions in this file are free functions over plain numeric inputs
// and outputs, all in radians, so they can be exercised directly against
// reference datasets without going through the stateful calculator.

package geodetic

import "math"

// solveInverse dispatches the inverse problem to the great-circle or the
// ellipsoidal solver. Angles are in radians. The accuracy return value is
// zero when the result carries the full precision of the method.
func solveInverse(e *Ellipsoid, φ1, λ1, φ2, λ2 float64) (s12, α1, α2, accuracy float64) {
	if e.spherical {
		s12, α1, α2 = gcInverse(e.a, φ1, λ1, φ2, λ2)
		return s12, α1, α2, 0
	}
	return inverseGeodesic(e, φ1, λ1, φ2, λ2)
}

// solveDirect dispatches the direct problem to the great-circle or the
// ellipsoidal solver. Angles are in radians.
func solveDirect(e *Ellipsoid, φ1, λ1, α1, s12 float64) (φ2, λ2, α2 float64) {
	if e.spherical {
		return gcDirect(e.a, φ1, λ1, α1, s12)
	}
	return directGeodesic(e, φ1, λ1, α1, s12)
}

// inverseGeodesic computes the geodesic distance s12 between two points and
// the forward azimuths α1, α2 at each of them. All angles are in radians.
//
// The spherical longitude difference λ is refined iteratively until it
// changes by less than solverTolerance, up to maxIterations rounds. Nearly
// antipodal configurations make the iteration diverge; they are answered
// with the great-circle solution on the authalic sphere and an accuracy
// estimate of f·s12, the relative error bound of substituting a sphere for
// the ellipsoid. All other configurations return accuracy 0.
func inverseGeodesic(e *Ellipsoid, φ1, λ1, φ2, λ2 float64) (s12, α1, α2, accuracy float64) {
	f := e.f
	L := wrapπ(λ2 - λ1)
	U1 := math.Atan((1 - f) * math.Tan(φ1)) // reduced latitudes
	U2 := math.Atan((1 - f) * math.Tan(φ2))
	sinU1, cosU1 := math.Sincos(U1)
	sinU2, cosU2 := math.Sincos(U2)

	λ := L
	var sinλ, cosλ float64
	var sinσ, cosσ, σ float64
	var sinα, cos2α, cos2σm float64
	converged := false
	for i := 0; i < maxIterations; i++ {
		sinλ, cosλ = math.Sincos(λ)
		t1 := cosU2 * sinλ
		t2 := cosU1*sinU2 - sinU1*cosU2*cosλ
		sinσ = math.Hypot(t1, t2)
		if sinσ == 0 {
			// Coincident points. The azimuth is undefined; zero by
			// convention.
			return 0, 0, 0, 0
		}
		cosσ = sinU1*sinU2 + cosU1*cosU2*cosλ
		σ = math.Atan2(sinσ, cosσ)
		sinα = cosU1 * cosU2 * sinλ / sinσ
		cos2α = 1 - sinα*sinα
		if cos2α != 0 {
			cos2σm = cosσ - 2*sinU1*sinU2/cos2α
		} else {
			cos2σm = 0 // both points on the equator
		}
		C := f / 16 * cos2α * (4 + f*(4-3*cos2α))
		prev := λ
		λ = L + (1-C)*f*sinα*(σ+C*sinσ*(cos2σm+C*cosσ*(-1+2*cos2σm*cos2σm)))
		if math.Abs(λ) > math.Pi {
			// The iteration walked out of the (-π,π] range: the points
			// are nearly antipodal and the refinement diverges.
			break
		}
		if math.Abs(λ-prev) < solverTolerance {
			converged = true
			break
		}
	}
	if !converged {
		s12, α1, α2 = gcInverse(e.authalic, φ1, λ1, φ2, λ2)
		return s12, α1, α2, f*s12 + linearTolerance
	}

	u2 := cos2α * e.e2 / (1 - e.e2)
	A := 1 + u2/16384*(4096+u2*(-768+u2*(320-175*u2)))
	B := u2 / 1024 * (256 + u2*(-128+u2*(74-47*u2)))
	Δσ := B * sinσ * (cos2σm + B/4*(cosσ*(-1+2*cos2σm*cos2σm)-
		B/6*cos2σm*(-3+4*sinσ*sinσ)*(-3+4*cos2σm*cos2σm)))
	s12 = e.b * A * (σ - Δσ)
	α1 = math.Atan2(cosU2*sinλ, cosU1*sinU2-sinU1*cosU2*cosλ)
	α2 = math.Atan2(cosU1*sinλ, -sinU1*cosU2+cosU1*sinU2*cosλ)
	return s12, α1, α2, 0
}

// directGeodesic computes the point reached by travelling the distance s12
// (metres, negative meaning behind the start) from (φ1,λ1) along the
// geodesic with initial azimuth α1, together with the forward azimuth α2 at
// the destination. All angles are in radians.
//
// The arc length σ on the auxiliary sphere is refined iteratively; unlike
// the inverse problem this iteration contracts everywhere, so the cap is
// never reached in practice.
func directGeodesic(e *Ellipsoid, φ1, λ1, α1, s12 float64) (φ2, λ2, α2 float64) {
	f := e.f
	sinα1, cosα1 := math.Sincos(α1)
	tanU1 := (1 - f) * math.Tan(φ1)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1
	σ1 := math.Atan2(tanU1, cosα1) // angular distance from equator crossing
	sinα := cosU1 * sinα1
	cos2α := 1 - sinα*sinα

	u2 := cos2α * e.e2 / (1 - e.e2)
	A := 1 + u2/16384*(4096+u2*(-768+u2*(320-175*u2)))
	B := u2 / 1024 * (256 + u2*(-128+u2*(74-47*u2)))

	σ := s12 / (e.b * A)
	var sinσ, cosσ, cos2σm float64
	for i := 0; i < maxIterations; i++ {
		cos2σm = math.Cos(2*σ1 + σ)
		sinσ, cosσ = math.Sincos(σ)
		Δσ := B * sinσ * (cos2σm + B/4*(cosσ*(-1+2*cos2σm*cos2σm)-
			B/6*cos2σm*(-3+4*sinσ*sinσ)*(-3+4*cos2σm*cos2σm)))
		next := s12/(e.b*A) + Δσ
		done := math.Abs(next-σ) < solverTolerance
		σ = next
		if done {
			break
		}
	}
	cos2σm = math.Cos(2*σ1 + σ)
	sinσ, cosσ = math.Sincos(σ)

	t := sinU1*sinσ - cosU1*cosσ*cosα1
	φ2 = math.Atan2(sinU1*cosσ+cosU1*sinσ*cosα1, (1-f)*math.Hypot(sinα, t))
	λ := math.Atan2(sinσ*sinα1, cosU1*cosσ-sinU1*sinσ*cosα1)
	C := f / 16 * cos2α * (4 + f*(4-3*cos2α))
	L := λ - (1-C)*f*sinα*(σ+C*sinσ*(cos2σm+C*cosσ*(-1+2*cos2σm*cos2σm)))
	λ2 = wrapπ(λ1 + L)
	α2 = math.Atan2(sinα, -t)
	return φ2, λ2, α2
}
