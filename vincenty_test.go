package geodetic

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Reference vector from the NGS FORTRAN implementation published by
// Gerald I. Evenden: (33°N 91.5°W), azimuth 23.361326677°, 1100896.2093 m.
const (
	ngsLat1 = 33.0
	ngsLon1 = -91.5
	ngsAzi1 = 23.361326677
	ngsS12  = 1100896.2093
	ngsLat2 = 41.999795777
	ngsLon2 = -86.249872015
	ngsAzi2 = 26.568717950
)

func TestInverseKnownVector(t *testing.T) {
	var s12, azi1, azi2 float64
	acc := WGS84.Inverse(ngsLat1, ngsLon1, ngsLat2, ngsLon2, &s12, &azi1, &azi2)
	assert.Zero(t, acc)
	assert.InDelta(t, ngsS12, s12, 1e-3)
	assert.InDelta(t, ngsAzi1, azi1, 1e-6)
	assert.InDelta(t, ngsAzi2, azi2, 1e-6)
}

func TestDirectKnownVector(t *testing.T) {
	var lat2, lon2, azi2 float64
	WGS84.Direct(ngsLat1, ngsLon1, ngsAzi1, ngsS12, &lat2, &lon2, &azi2)
	assert.InDelta(t, ngsLat2, lat2, 1e-8)
	assert.InDelta(t, ngsLon2, lon2, 1e-8)
	assert.InDelta(t, ngsAzi2, azi2, 1e-8)
}

func TestInverseDirectRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 2000; i++ {
		lat1 := rng.Float64()*180 - 90
		lon1 := rng.Float64()*360 - 180
		lat2 := rng.Float64()*180 - 90
		lon2 := rng.Float64()*360 - 180

		var s12, azi1, azi2 float64
		acc := WGS84.Inverse(lat1, lon1, lat2, lon2, &s12, &azi1, &azi2)
		if acc != 0 {
			continue // nearly antipodal, answered by the fallback
		}
		var rlat2, rlon2, razi2 float64
		WGS84.Direct(lat1, lon1, azi1, s12, &rlat2, &rlon2, &razi2)
		if !eqish(rlat2, lat2, 7) ||
			!eqish(wrap180(rlon2-lon2), 0, 7) ||
			!eqish(razi2, azi2, 6) {
			t.Fatalf("round trip failure (%f %f %f %f): got (%f %f %f)",
				lat1, lon1, lat2, lon2, rlat2, rlon2, razi2)
		}
	}
}

func TestInverseSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 2000; i++ {
		lat1 := rng.Float64()*180 - 90
		lon1 := rng.Float64()*360 - 180
		lat2 := rng.Float64()*180 - 90
		lon2 := rng.Float64()*360 - 180

		var sAB, a1AB, a2AB float64
		var sBA, a1BA, a2BA float64
		accAB := WGS84.Inverse(lat1, lon1, lat2, lon2, &sAB, &a1AB, &a2AB)
		accBA := WGS84.Inverse(lat2, lon2, lat1, lon1, &sBA, &a1BA, &a2BA)
		if accAB != 0 || accBA != 0 {
			continue
		}
		if !eqish(sAB, sBA, 5) {
			t.Fatalf("asymmetric distance (%f %f %f %f): %f != %f",
				lat1, lon1, lat2, lon2, sAB, sBA)
		}
		// The starting azimuth of A→B is the reciprocal of the ending
		// azimuth of B→A.
		if !eqish(wrap180(a1AB-wrap180(a2BA+180)), 0, 5) {
			t.Fatalf("azimuths not reciprocal (%f %f %f %f): %f vs %f",
				lat1, lon1, lat2, lon2, a1AB, a2BA)
		}
	}
}

// A geodesic along the equator has length a·Δλ as long as the two points
// are not nearly antipodal.
func TestEquatorialEllipsoid(t *testing.T) {
	for _, Δλ := range []float64{1, 30, 100, 150, 179} {
		var s12, azi1 float64
		acc := WGS84.Inverse(0, 0, 0, Δλ, &s12, &azi1, nil)
		assert.Zero(t, acc, "Δλ=%v", Δλ)
		assert.InDelta(t, WGS84.Radius()*Δλ*radians, s12, linearTolerance, "Δλ=%v", Δλ)
		assert.InDelta(t, 90, azi1, 1e-9, "Δλ=%v", Δλ)
	}
}

func TestNearlyAntipodalFallback(t *testing.T) {
	var s12, azi1, azi2 float64
	acc := WGS84.Inverse(0, 0, 0.5, 179.7, &s12, &azi1, &azi2)
	assert.Greater(t, acc, 0.0)
	// Half the circumference, give or take the documented accuracy bound.
	assert.InDelta(t, 19950e3, s12, 100e3)
	assert.LessOrEqual(t, acc, WGS84.Flattening()*s12+linearTolerance)
}

func TestAzimuthsFromPole(t *testing.T) {
	cases := []struct {
		lat2, lon2 float64
		azi1       float64
	}{
		{20, 20, 160},
		{20, -20, -160},
		{20, 0, 180},
	}
	for _, tc := range cases {
		var azi1 float64
		acc := WGS84.Inverse(90, 0, tc.lat2, tc.lon2, nil, &azi1, nil)
		assert.Zero(t, acc)
		assert.InDelta(t, tc.azi1, azi1, 1e-6, "to (%v,%v)", tc.lat2, tc.lon2)
	}
}

// Coincident points yield (0, 0, 0) on the spherical fast path and the
// full solver alike.
func TestCoincidentPoints(t *testing.T) {
	for _, e := range []*Ellipsoid{WGS84, Globe} {
		var s12, azi1, azi2 float64
		acc := e.Inverse(20.001, 7, 20.001, 7, &s12, &azi1, &azi2)
		assert.Zero(t, acc)
		assert.Zero(t, s12)
		assert.Zero(t, azi1)
		assert.Zero(t, azi2)
	}
}

// Travelling a negative distance is the same as travelling the positive
// distance along the reciprocal azimuth.
func TestNegativeDistanceDirect(t *testing.T) {
	var lat2, lon2 float64
	var rlat2, rlon2 float64
	WGS84.Direct(20, 12, 45, -500e3, &lat2, &lon2, nil)
	WGS84.Direct(20, 12, 45-180, 500e3, &rlat2, &rlon2, nil)
	assert.InDelta(t, rlat2, lat2, 1e-9)
	assert.InDelta(t, rlon2, lon2, 1e-9)
	assert.Less(t, lat2, 20.0)

	if math.Abs(lat2-16.775791) > 1e-5 || math.Abs(lon2-8.685281) > 1e-5 {
		t.Fatalf("unexpected destination (%f, %f)", lat2, lon2)
	}
}
