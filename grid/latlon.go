package grid

import (
	"fmt"

	"github.com/mmp/squall/internal"
)

// LatLonGrid represents a GRIB2 Latitude/Longitude grid (Template 3.0).
//
// This is the most common grid type, consisting of a regular grid with
// constant spacing in latitude and longitude.
type LatLonGrid struct {
	Earth        Earth
	Ni           uint32 // Number of points along a parallel (longitude)
	Nj           uint32 // Number of points along a meridian (latitude)
	La1          int32  // Latitude of first grid point (micro-degrees)
	Lo1          int32  // Longitude of first grid point (micro-degrees)
	ResFlags     uint8  // Resolution and component flags
	La2          int32  // Latitude of last grid point (micro-degrees)
	Lo2          int32  // Longitude of last grid point (micro-degrees)
	Di           uint32 // i direction increment (micro-degrees)
	Dj           uint32 // j direction increment (micro-degrees)
	ScanningMode uint8  // Scanning mode (Table 3.4)
}

// ParseLatLonGrid parses a Lat/Lon grid from template data (Template 3.0).
//
// The template data should be 72 bytes for Template 3.0.
func ParseLatLonGrid(data []byte) (*LatLonGrid, error) {
	if len(data) < 72 {
		return nil, fmt.Errorf("template 3.0 requires at least 72 bytes, got %d", len(data))
	}

	earth, err := ParseEarth(data[0:16])
	if err != nil {
		return nil, fmt.Errorf("latlon grid: %w", err)
	}

	r := internal.NewReader(data[16:])

	// Read grid dimensions
	ni, _ := r.Uint32()
	nj, _ := r.Uint32()

	// Skip basic angle and subdivisions (8 bytes)
	r.Skip(8)

	// Read grid points
	la1, _ := r.Int32()
	lo1, _ := r.Int32()
	resFlags, _ := r.Uint8()
	la2, _ := r.Int32()
	lo2, _ := r.Int32()
	di, _ := r.Uint32()
	dj, _ := r.Uint32()
	scanningMode, _ := r.Uint8()

	return &LatLonGrid{
		Earth:        earth,
		Ni:           ni,
		Nj:           nj,
		La1:          la1,
		Lo1:          lo1,
		ResFlags:     resFlags,
		La2:          la2,
		Lo2:          lo2,
		Di:           di,
		Dj:           dj,
		ScanningMode: scanningMode,
	}, nil
}

// TemplateNumber returns 0 for Lat/Lon grids.
func (g *LatLonGrid) TemplateNumber() int {
	return 0
}

// NumPoints returns the total number of grid points.
func (g *LatLonGrid) NumPoints() int {
	return int(g.Ni * g.Nj)
}

// String returns a human-readable description of the grid.
func (g *LatLonGrid) String() string {
	return fmt.Sprintf("Lat/Lon grid: %d x %d points (%.3f°, %.3f°) to (%.3f°, %.3f°)",
		g.Ni, g.Nj,
		float64(g.La1)/1e6, float64(g.Lo1)/1e6,
		float64(g.La2)/1e6, float64(g.Lo2)/1e6)
}

// FirstGridPoint returns the latitude and longitude of the first grid point in degrees.
func (g *LatLonGrid) FirstGridPoint() (lat, lon float64) {
	return float64(g.La1) / 1e6, float64(g.Lo1) / 1e6
}

// LastGridPoint returns the latitude and longitude of the last grid point in degrees.
func (g *LatLonGrid) LastGridPoint() (lat, lon float64) {
	return float64(g.La2) / 1e6, float64(g.Lo2) / 1e6
}

// Increment returns the i and j direction increments in degrees.
func (g *LatLonGrid) Increment() (di, dj float64) {
	return float64(g.Di) / 1e6, float64(g.Dj) / 1e6
}

// Coordinates generates latitude and longitude arrays for all grid points,
// in scan order, per Table 3.4's scanning-mode flags. Longitudes follow
// the grid's own convention: if Lo1/Lo2 span [0,360) the output does too,
// wrapping at 360; otherwise values are left in the signed range implied
// by the increment walk.
func (g *LatLonGrid) Coordinates() ([]float64, []float64) {
	nPoints := int(g.Ni * g.Nj)
	lats := make([]float64, nPoints)
	lons := make([]float64, nPoints)

	lat1, lon1 := g.FirstGridPoint()
	di, dj := g.Increment()

	iNegative, jPositive, _ := g.ScanningFlags()

	idx := 0
	for j := uint32(0); j < g.Nj; j++ {
		lat := lat1
		if jPositive {
			lat = lat1 + float64(j)*dj
		} else {
			lat = lat1 - float64(j)*dj
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

// Latitudes generates latitude values for all grid points.
func (g *LatLonGrid) Latitudes() []float64 {
	lats, _ := g.Coordinates()
	return lats
}

// Longitudes generates longitude values for all grid points.
func (g *LatLonGrid) Longitudes() []float64 {
	_, lons := g.Coordinates()
	return lons
}

// ProjectionName implements grid.ProjectionInfo.
func (g *LatLonGrid) ProjectionName() string { return "longlat" }

// CRS implements grid.ProjectionInfo.
func (g *LatLonGrid) CRS() string { return "EPSG:4326" }

// IsRegular implements grid.ProjectionInfo.
func (g *LatLonGrid) IsRegular() bool { return true }

// Shape implements grid.ProjectionInfo.
func (g *LatLonGrid) Shape() (rows, cols int) { return int(g.Nj), int(g.Ni) }

// Projector implements grid.ProjectionInfo.
func (g *LatLonGrid) Projector() string { return "PlateCaree" }

// ScanningFlags returns the scanning mode flags as individual booleans.
//
// Returns:
//   - iNegative: true if points scan in -i direction (east to west)
//   - jPositive: true if points scan in +j direction (south to north)
//   - consecutive: true if adjacent points in i direction are consecutive
func (g *LatLonGrid) ScanningFlags() (iNegative, jPositive, consecutive bool) {
	iNegative = (g.ScanningMode & 0x80) != 0  // Bit 0
	jPositive = (g.ScanningMode & 0x40) != 0  // Bit 1
	consecutive = (g.ScanningMode & 0x20) == 0 // Bit 2 (0 = consecutive)
	return
}
