package grid

import (
	"fmt"
	"math"

	"github.com/mmp/squall/internal"
)

// LambertConformalGrid represents Grid Definition Template 3.30:
// Lambert Conformal projection.
//
// This projection is commonly used for regional models like HRRR and NAM.
type LambertConformalGrid struct {
	Earth            Earth
	Nx               uint32 // Number of points along x-axis
	Ny               uint32 // Number of points along y-axis
	La1              int32  // Latitude of first grid point (micro-degrees)
	Lo1              int32  // Longitude of first grid point (micro-degrees)
	ResolutionFlags  uint8  // Resolution and component flags
	LaD              int32  // Latitude where Dx and Dy are specified (micro-degrees)
	LoV              int32  // Longitude of meridian parallel to y-axis (micro-degrees)
	Dx               uint32 // X-direction grid length (millimeters)
	Dy               uint32 // Y-direction grid length (millimeters)
	ProjectionCenter uint8  // Projection center flag
	ScanningMode     uint8  // Scanning mode flags
	Latin1           int32  // First latitude from pole at which secant cone cuts sphere (micro-degrees)
	Latin2           int32  // Second latitude from pole (micro-degrees)
	LatSouthPole     int32  // Latitude of southern pole (micro-degrees)
	LonSouthPole     int32  // Longitude of southern pole (micro-degrees)
}

// ParseLambertConformalGrid parses Grid Definition Template 3.30.
func ParseLambertConformalGrid(data []byte) (*LambertConformalGrid, error) {
	if len(data) < 81 {
		return nil, fmt.Errorf("template 3.30 requires at least 81 bytes, got %d", len(data))
	}

	earth, err := ParseEarth(data[0:16])
	if err != nil {
		return nil, fmt.Errorf("lambert conformal grid: %w", err)
	}

	r := internal.NewReader(data[16:])

	nx, _ := r.Uint32()
	ny, _ := r.Uint32()
	la1, _ := r.Int32()
	lo1, _ := r.Int32()
	resFlags, _ := r.Uint8()
	laD, _ := r.Int32()
	loV, _ := r.Int32()
	dx, _ := r.Uint32()
	dy, _ := r.Uint32()
	projCenter, _ := r.Uint8()
	scanMode, _ := r.Uint8()
	latin1, _ := r.Int32()
	latin2, _ := r.Int32()
	latSP, _ := r.Int32()
	lonSP, _ := r.Int32()

	return &LambertConformalGrid{
		Earth:            earth,
		Nx:               nx,
		Ny:               ny,
		La1:              la1,
		Lo1:              lo1,
		ResolutionFlags:  resFlags,
		LaD:              laD,
		LoV:              loV,
		Dx:               dx,
		Dy:               dy,
		ProjectionCenter: projCenter,
		ScanningMode:     scanMode,
		Latin1:           latin1,
		Latin2:           latin2,
		LatSouthPole:     latSP,
		LonSouthPole:     lonSP,
	}, nil
}

// TemplateNumber returns 30 for Lambert Conformal.
func (g *LambertConformalGrid) TemplateNumber() int {
	return 30
}

// GridType returns "Lambert Conformal".
func (g *LambertConformalGrid) GridType() string {
	return "Lambert Conformal"
}

// NumPoints returns the total number of grid points.
func (g *LambertConformalGrid) NumPoints() int {
	return int(g.Nx * g.Ny)
}

// lccParams holds the derived cone constant and scale used by both the
// forward and inverse projection.
type lccParams struct {
	radius float64
	n      float64
	f      float64
	rho0   float64
	lonV   float64 // radians
}

func (g *LambertConformalGrid) params() lccParams {
	radius := g.Earth.ConformalSphereRadius()

	latin1 := deg2rad(float64(g.Latin1) / 1e6)
	latin2 := deg2rad(float64(g.Latin2) / 1e6)
	laD := deg2rad(float64(g.LaD) / 1e6)
	lonV := normalizeLonSigned(float64(g.LoV) / 1e6)

	var n float64
	if math.Abs(latin1-latin2) < 1e-9 {
		n = math.Sin(latin1)
	} else {
		n = math.Log(math.Cos(latin1)/math.Cos(latin2)) /
			math.Log(math.Tan(math.Pi/4+latin2/2)/math.Tan(math.Pi/4+latin1/2))
	}

	f := math.Cos(latin1) * math.Pow(math.Tan(math.Pi/4+latin1/2), n) / n
	rho0 := radius * f * math.Pow(math.Tan(math.Pi/4+laD/2), -n)

	return lccParams{radius: radius, n: n, f: f, rho0: rho0, lonV: deg2rad(lonV)}
}

// ProjectLatLng forward-projects a (lat, lng) in degrees to (x, y) meters
// relative to the projection origin (the pole side of the cone), per
// §4.10's project_latlng contract.
func (g *LambertConformalGrid) ProjectLatLng(lat, lng float64) (x, y float64) {
	p := g.params()
	latRad := deg2rad(lat)
	lonRad := deg2rad(normalizeLonSigned(lng))

	rho := p.radius * p.f * math.Pow(math.Tan(math.Pi/4+latRad/2), -p.n)
	theta := p.n * angleDiff(lonRad, p.lonV)

	x = rho * math.Sin(theta)
	y = p.rho0 - rho*math.Cos(theta)
	return x, y
}

// ProjectXY inverse-projects (x, y) meters back to (lat, lng) degrees.
func (g *LambertConformalGrid) ProjectXY(x, y float64) (lat, lng float64) {
	p := g.params()

	dy := p.rho0 - y
	rho := math.Copysign(math.Sqrt(x*x+dy*dy), p.n)
	theta := math.Atan2(x, dy)

	latRad := 2*math.Atan(math.Pow(p.radius*p.f/rho, 1/p.n)) - math.Pi/2
	lonRad := p.lonV + theta/p.n

	return rad2deg(latRad), normalizeLonSigned(rad2deg(lonRad))
}

// Coordinates generates latitude and longitude arrays for all grid points,
// in scan order, by forward-projecting the first grid point to find the
// true origin and then inverse-projecting every other point.
func (g *LambertConformalGrid) Coordinates() ([]float64, []float64) {
	nPoints := int(g.Nx * g.Ny)
	lats := make([]float64, nPoints)
	lons := make([]float64, nPoints)

	lat1 := float64(g.La1) / 1e6
	lon1 := float64(g.Lo1) / 1e6
	x0, y0 := g.ProjectLatLng(lat1, lon1)

	// Grid spacing in meters (Dx and Dy are stored in millimeters)
	dx := float64(g.Dx) / 1000.0
	dy := float64(g.Dy) / 1000.0

	iPositive := (g.ScanningMode & 0x80) == 0
	jPositive := (g.ScanningMode & 0x40) != 0

	idx := 0
	for j := uint32(0); j < g.Ny; j++ {
		for i := uint32(0); i < g.Nx; i++ {
			var x, y float64
			if iPositive {
				x = x0 + float64(i)*dx
			} else {
				x = x0 - float64(i)*dx
			}
			if jPositive {
				y = y0 + float64(j)*dy
			} else {
				y = y0 - float64(j)*dy
			}

			lat, lon := g.ProjectXY(x, y)
			lats[idx] = lat
			lons[idx] = normalizeLon0to360(lon)
			idx++
		}
	}

	return lats, lons
}

// ProjectionName implements grid.ProjectionInfo.
func (g *LambertConformalGrid) ProjectionName() string { return "lcc" }

// CRS implements grid.ProjectionInfo. No single EPSG code applies since
// the standard parallels and origin vary by grid.
func (g *LambertConformalGrid) CRS() string { return "" }

// IsRegular implements grid.ProjectionInfo. Lambert Conformal grids are
// regular in their own projected x/y plane but not in lat/lon, so this
// reports false per spec.md's convention.
func (g *LambertConformalGrid) IsRegular() bool { return false }

// Shape implements grid.ProjectionInfo.
func (g *LambertConformalGrid) Shape() (rows, cols int) { return int(g.Ny), int(g.Nx) }

// Projector implements grid.ProjectionInfo.
func (g *LambertConformalGrid) Projector() string { return "LambertConformal" }

// Latitudes generates latitude values for all grid points.
func (g *LambertConformalGrid) Latitudes() []float64 {
	lats, _ := g.Coordinates()
	return lats
}

// Longitudes generates longitude values for all grid points.
func (g *LambertConformalGrid) Longitudes() []float64 {
	_, lons := g.Coordinates()
	return lons
}

// String returns a human-readable description.
func (g *LambertConformalGrid) String() string {
	return fmt.Sprintf("Lambert Conformal: %dx%d grid, La1=%.3f, Lo1=%.3f, LoV=%.3f",
		g.Nx, g.Ny,
		float64(g.La1)/1e6, float64(g.Lo1)/1e6, float64(g.LoV)/1e6)
}

func deg2rad(d float64) float64 { return d * math.Pi / 180.0 }
func rad2deg(r float64) float64 { return r * 180.0 / math.Pi }

// angleDiff returns a-b wrapped into (-pi, pi], used for the theta
// computation so a longitude crossing the antimeridian doesn't blow up.
func angleDiff(a, b float64) float64 {
	d := a - b
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
