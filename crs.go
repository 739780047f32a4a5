package geodetic

// Transform maps positions between a user coordinate space and normalized
// geographic coordinates in decimal degrees.
type Transform interface {
	// Forward converts a position in the source space to (latitude,
	// longitude) in degrees.
	Forward(x, y float64) (lat, lon float64, err error)
	// Reverse converts (latitude, longitude) in degrees back to the
	// source space.
	Reverse(lat, lon float64) (x, y float64, err error)
}

// CRS describes a coordinate reference system bound to an ellipsoid. The
// calculator resolves the geographic transform once at construction and
// keeps using it for every position it accepts or returns.
type CRS interface {
	// Ellipsoid returns the reference ellipsoid of the system.
	Ellipsoid() *Ellipsoid
	// Geographic returns the transform from this system to normalized
	// geographic coordinates.
	Geographic() (Transform, error)
}

// Geographic returns a CRS whose axes already are (latitude, longitude) in
// degrees on the given ellipsoid. Its transform is the identity.
func Geographic(e *Ellipsoid) CRS {
	return geographicCRS{e: e}
}

// NormalizedGeographic returns a CRS with the axis order (longitude,
// latitude) in degrees on the given ellipsoid, the order most rendering
// code works in.
func NormalizedGeographic(e *Ellipsoid) CRS {
	return geographicCRS{e: e, lonFirst: true}
}

type geographicCRS struct {
	e        *Ellipsoid
	lonFirst bool
}

func (c geographicCRS) Ellipsoid() *Ellipsoid { return c.e }

func (c geographicCRS) Geographic() (Transform, error) {
	return axisOrder{lonFirst: c.lonFirst}, nil
}

// axisOrder reorders coordinates between (x,y) and (latitude, longitude).
type axisOrder struct {
	lonFirst bool
}

func (t axisOrder) Forward(x, y float64) (float64, float64, error) {
	if t.lonFirst {
		return y, x, nil
	}
	return x, y, nil
}

func (t axisOrder) Reverse(lat, lon float64) (float64, float64, error) {
	if t.lonFirst {
		return lon, lat, nil
	}
	return lat, lon, nil
}
