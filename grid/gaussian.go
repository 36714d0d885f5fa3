package grid

import (
	"fmt"
	"math"

	"github.com/mmp/squall/internal"
)

// GaussianGrid represents Grid Definition Template 3.40: a Gaussian grid.
//
// Gaussian grids are the native grid of spectral forecast models (e.g.
// ECMWF IFS, NCEP GFS T-series). Longitude points are evenly spaced, but
// latitude rows sit at the roots of the N-th order Legendre polynomial
// rather than at even angular intervals, so they must be computed rather
// than read off a uniform increment.
type GaussianGrid struct {
	Earth        Earth
	Ni           uint32 // Number of points along a parallel (longitude), 0 if variable (reduced grid)
	Nj           uint32 // Number of points along a meridian (latitude)
	La1          int32  // Latitude of first grid point (micro-degrees)
	Lo1          int32  // Longitude of first grid point (micro-degrees)
	ResFlags     uint8  // Resolution and component flags
	La2          int32  // Latitude of last grid point (micro-degrees)
	Lo2          int32  // Longitude of last grid point (micro-degrees)
	Di           uint32 // i direction increment (micro-degrees), undefined for reduced grids
	N            uint32 // Number of latitude circles between pole and equator
	ScanningMode uint8  // Scanning mode (Table 3.4)
}

// ParseGaussianGrid parses Grid Definition Template 3.40.
func ParseGaussianGrid(data []byte) (*GaussianGrid, error) {
	if len(data) < 72 {
		return nil, fmt.Errorf("template 3.40 requires at least 72 bytes, got %d", len(data))
	}

	earth, err := ParseEarth(data[0:16])
	if err != nil {
		return nil, fmt.Errorf("gaussian grid: %w", err)
	}

	r := internal.NewReader(data[16:])

	ni, _ := r.Uint32()
	nj, _ := r.Uint32()
	r.Skip(8) // basic angle and subdivisions, unused here
	la1, _ := r.Int32()
	lo1, _ := r.Int32()
	resFlags, _ := r.Uint8()
	la2, _ := r.Int32()
	lo2, _ := r.Int32()
	di, _ := r.Uint32()
	n, _ := r.Uint32()
	scanningMode, _ := r.Uint8()

	return &GaussianGrid{
		Earth:        earth,
		Ni:           ni,
		Nj:           nj,
		La1:          la1,
		Lo1:          lo1,
		ResFlags:     resFlags,
		La2:          la2,
		Lo2:          lo2,
		Di:           di,
		N:            n,
		ScanningMode: scanningMode,
	}, nil
}

// TemplateNumber returns 40 for Gaussian grids.
func (g *GaussianGrid) TemplateNumber() int {
	return 40
}

// GridType returns "Gaussian".
func (g *GaussianGrid) GridType() string {
	return "Gaussian"
}

// NumPoints returns the total number of grid points.
func (g *GaussianGrid) NumPoints() int {
	return int(g.Ni * g.Nj)
}

// String returns a human-readable description.
func (g *GaussianGrid) String() string {
	return fmt.Sprintf("Gaussian grid: %d x %d points, N=%d, (%.3f°, %.3f°) to (%.3f°, %.3f°)",
		g.Ni, g.Nj, g.N,
		float64(g.La1)/1e6, float64(g.Lo1)/1e6,
		float64(g.La2)/1e6, float64(g.Lo2)/1e6)
}

// FirstGridPoint returns the latitude and longitude of the first grid point in degrees.
func (g *GaussianGrid) FirstGridPoint() (lat, lon float64) {
	return float64(g.La1) / 1e6, float64(g.Lo1) / 1e6
}

// ScanningFlags returns the scanning mode flags as individual booleans.
func (g *GaussianGrid) ScanningFlags() (iNegative, jPositive, consecutive bool) {
	iNegative = (g.ScanningMode & 0x80) != 0
	jPositive = (g.ScanningMode & 0x40) != 0
	consecutive = (g.ScanningMode & 0x20) == 0
	return
}

// GaussianLatitudes computes the 2n latitudes (in degrees, pole to pole)
// of a full Gaussian grid with 2n latitude circles, by finding the roots
// of the Legendre polynomial P_2n(x) via Newton-Raphson iteration and
// mapping each root x = sin(latitude) back to degrees.
//
// This is the standard construction used by every spectral model's
// post-processor (e.g. wgrib2's gauss2ll, ECMWF's "reduced Gaussian grid"
// derivation): the roots of P_2n are symmetric about the equator, so only
// the northern-hemisphere half is solved for directly and the rest
// mirrored.
func GaussianLatitudes(n uint32) []float64 {
	total := int(2 * n)
	lats := make([]float64, total)
	if total == 0 {
		return lats
	}

	// Initial guesses for the roots of P_total, refined by Newton-Raphson.
	// Standard approximation (Abramowitz & Stegun 22.16.6) for the k-th
	// root of a Legendre polynomial of degree `total`.
	for k := 0; k < total/2; k++ {
		theta := math.Pi * (float64(k) + 0.75) / (float64(total) + 0.5)
		x := math.Cos(theta)

		for iter := 0; iter < 100; iter++ {
			p0, p1 := 1.0, x
			for l := 2; l <= total; l++ {
				pl := ((2*float64(l)-1)*x*p1 - (float64(l)-1)*p0) / float64(l)
				p0 = p1
				p1 = pl
			}
			// Derivative of P_total at x, via the standard recurrence.
			dp := float64(total) * (x*p1 - p0) / (x*x - 1)
			dx := p1 / dp
			x -= dx
			if math.Abs(dx) < 1e-15 {
				break
			}
		}

		lat := rad2deg(math.Asin(x))
		lats[k] = lat
		lats[total-1-k] = -lat
	}

	return lats
}

// Coordinates generates latitude and longitude arrays for all grid
// points. Longitudes are evenly spaced per Di; latitudes are the
// Gaussian latitude circles for N, oriented to match the grid's
// scanning direction.
func (g *GaussianGrid) Coordinates() ([]float64, []float64) {
	nPoints := int(g.Ni * g.Nj)
	lats := make([]float64, nPoints)
	lons := make([]float64, nPoints)

	if g.Nj == 0 || g.Ni == 0 {
		return lats, lons
	}

	full := GaussianLatitudes(g.N)

	// Slice to the Nj rows actually present (a reduced or
	// hemisphere-limited grid may carry fewer rows than the full 2N).
	rowLats := full
	if int(g.Nj) < len(full) {
		rowLats = full[:g.Nj]
	}

	_, lon1 := g.FirstGridPoint()
	di := float64(g.Di) / 1e6

	_, jPositive, _ := g.ScanningFlags()
	iNegative, _, _ := g.ScanningFlags()

	idx := 0
	for j := 0; j < int(g.Nj); j++ {
		var lat float64
		if j < len(rowLats) {
			lat = rowLats[j]
		}
		if jPositive {
			// Rows stored pole-to-pole north-first; flip for south-first walk.
			lat = rowLats[len(rowLats)-1-j]
		}

		for i := uint32(0); i < g.Ni; i++ {
			lon := lon1
			if iNegative {
				lon = lon1 - float64(i)*di
			} else {
				lon = lon1 + float64(i)*di
			}
			lats[idx] = lat
			lons[idx] = foldLongitude(lon, lon1)
			idx++
		}
	}

	return lats, lons
}

// ProjectionName implements grid.ProjectionInfo.
func (g *GaussianGrid) ProjectionName() string { return "gaussian" }

// CRS implements grid.ProjectionInfo.
func (g *GaussianGrid) CRS() string { return "EPSG:4326" }

// IsRegular implements grid.ProjectionInfo. A reduced Gaussian grid
// (Ni == 0, variable points per row) is not regular.
func (g *GaussianGrid) IsRegular() bool { return g.Ni != 0 }

// Shape implements grid.ProjectionInfo.
func (g *GaussianGrid) Shape() (rows, cols int) { return int(g.Nj), int(g.Ni) }

// Projector implements grid.ProjectionInfo.
func (g *GaussianGrid) Projector() string { return "Gaussian" }

// Latitudes generates latitude values for all grid points.
func (g *GaussianGrid) Latitudes() []float64 {
	lats, _ := g.Coordinates()
	return lats
}

// Longitudes generates longitude values for all grid points.
func (g *GaussianGrid) Longitudes() []float64 {
	_, lons := g.Coordinates()
	return lons
}
