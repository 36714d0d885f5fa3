package grid

import (
	"fmt"
	"math"

	"github.com/mmp/squall/internal"
)

// Earth describes the ellipsoid (or sphere) a grid's coordinates are
// defined against, per GRIB2 Code Table 3.2 (Shape of the Earth).
//
// Grid definition templates that carry earth-shape octets (LatLon,
// Gaussian, Lambert Conformal, Mercator, Polar Stereographic) all share
// this 16-byte block immediately after the section's fixed header:
//
//	octet 1:     shape of the earth (code)
//	octet 2:     scale factor of radius of spherical earth
//	octets 3-6:  scaled value of radius of spherical earth
//	octet 7:     scale factor of major axis of oblate spheroid earth
//	octets 8-11: scaled value of major axis of oblate spheroid earth
//	octet 12:    scale factor of minor axis of oblate spheroid earth
//	octets 13-16: scaled value of minor axis of oblate spheroid earth
type Earth struct {
	ShapeCode byte
	Major     float64 // semi-major axis, meters
	Minor     float64 // semi-minor axis, meters
}

// ParseEarth reads the 16-byte earth-shape block common to every grid
// definition template and resolves it to concrete axis lengths.
//
// Codes that GRIB2 Table 3.2 reserves or that this decoder cannot
// synthesize an ellipsoid for return an error rather than silently
// falling back to a default sphere.
func ParseEarth(data []byte) (Earth, error) {
	if len(data) < 16 {
		return Earth{}, fmt.Errorf("earth shape block requires 16 bytes, got %d", len(data))
	}

	r := internal.NewReader(data)
	shape, _ := r.Uint8()
	radiusScale, _ := r.Uint8()
	radiusValue, _ := r.Uint32()
	majorScale, _ := r.Uint8()
	majorValue, _ := r.Uint32()
	minorScale, _ := r.Uint8()
	minorValue, _ := r.Uint32()

	scaled := func(scale uint8, value uint32) float64 {
		if scale == 0xff || value == 0xffffffff {
			return 0
		}
		return float64(value) / math.Pow(10, float64(scale))
	}

	switch shape {
	case 0:
		return Earth{ShapeCode: shape, Major: 6367470.0, Minor: 6367470.0}, nil
	case 1:
		radius := scaled(radiusScale, radiusValue)
		if radius <= 0 {
			return Earth{}, fmt.Errorf("earth shape 1 requires a specified spherical radius")
		}
		return Earth{ShapeCode: shape, Major: radius, Minor: radius}, nil
	case 2:
		// IAU 1965 oblate spheroid.
		return Earth{ShapeCode: shape, Major: 6378160.0, Minor: 6356775.0}, nil
	case 3:
		major := scaled(majorScale, majorValue) * 1000.0
		minor := scaled(minorScale, minorValue) * 1000.0
		if major <= 0 || minor <= 0 {
			return Earth{}, fmt.Errorf("earth shape 3 requires specified major/minor axes (km)")
		}
		return Earth{ShapeCode: shape, Major: major, Minor: minor}, nil
	case 4:
		// IAG-GRS80.
		return Earth{ShapeCode: shape, Major: 6378137.0, Minor: 6356752.314140}, nil
	case 5:
		// WGS84.
		return Earth{ShapeCode: shape, Major: 6378137.0, Minor: 6356752.314245}, nil
	case 6:
		return Earth{ShapeCode: shape, Major: 6371229.0, Minor: 6371229.0}, nil
	case 7:
		major := scaled(majorScale, majorValue)
		minor := scaled(minorScale, minorValue)
		if major <= 0 || minor <= 0 {
			return Earth{}, fmt.Errorf("earth shape 7 requires specified major/minor axes (m)")
		}
		return Earth{ShapeCode: shape, Major: major, Minor: minor}, nil
	case 8:
		return Earth{ShapeCode: shape, Major: 6371200.0, Minor: 6371200.0}, nil
	default:
		return Earth{}, fmt.Errorf("unsupported earth shape code %d: cannot construct an ellipsoid", shape)
	}
}

// ConformalSphereRadius returns the radius this decoder uses for the
// spherical Lambert/Mercator/Polar-Stereographic conformal projections.
//
// For a true sphere (codes 0, 1, 6, 8) this is exact. For an oblate
// spheroid this decoder uses the authalic-equivalent sphere
// (sqrt(major*minor)) rather than implementing the full ellipsoidal
// conformal-latitude series; this is a documented approximation, not a
// silent substitution of a default sphere — the ellipsoid is still
// resolved from the earth-shape code and its axes feed this radius.
func (e Earth) ConformalSphereRadius() float64 {
	if e.Major == 0 || e.Minor == 0 {
		// Zero-value Earth (grid built directly, not via Parse*Grid): fall
		// back to GRIB2 Table 3.2 code 6, the sphere NCEP's regional models
		// (HRRR, NAM) use for their Lambert Conformal grids.
		return 6371229.0
	}
	return math.Sqrt(e.Major * e.Minor)
}

// normalizeLonSigned folds a longitude in degrees into (-180, 180].
func normalizeLonSigned(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon <= -180 {
		lon += 360
	}
	return lon
}

// normalizeLon0to360 folds a longitude in degrees into [0, 360).
func normalizeLon0to360(lon float64) float64 {
	for lon < 0 {
		lon += 360
	}
	for lon >= 360 {
		lon -= 360
	}
	return lon
}

// foldLongitude applies GRIB2's wrap-the-globe longitude policy: values
// >= 360 are always folded to v-360, but values < 0 are only folded to
// v+360 when the grid's own start longitude is itself non-negative. A
// grid declared with a negative (signed) start longitude keeps negative
// output values in that same signed convention.
func foldLongitude(lon, startLon float64) float64 {
	for lon >= 360 {
		lon -= 360
	}
	if startLon >= 0 {
		for lon < 0 {
			lon += 360
		}
	}
	return lon
}
