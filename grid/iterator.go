package grid

// CoordinateIterator walks a grid's points in scan order without requiring
// the caller to materialize the full latitude/longitude slices up front.
type CoordinateIterator interface {
	// Next returns the next point's latitude and longitude in degrees.
	// ok is false once the iterator is exhausted.
	Next() (lat, lon float64, ok bool)

	// Len returns the total number of points the iterator will yield.
	Len() int

	// Reset rewinds the iterator to its first point.
	Reset()
}

// RegularCoordinateIterator walks a grid whose points fall on a uniform
// i/j step in latitude and longitude (Template 3.0 LatLon, and the
// Mercator/Polar Stereographic grids before projection), computing each
// point on demand from the grid's first point and increment rather than
// precomputing the full coordinate arrays. This mirrors the scanning-mode
// walk in LatLonGrid.Coordinates but lets a caller (e.g. DataAtLocation)
// stop early without paying for the rest of the grid.
type RegularCoordinateIterator struct {
	ni, nj         uint32
	lat1, lon1     float64
	di, dj         float64
	iNegative      bool
	jPositive      bool
	i, j           uint32
	done           bool
}

// NewRegularCoordinateIterator builds a RegularCoordinateIterator over an
// ni x nj grid starting at (lat1, lon1) with the given i/j increments and
// scanning-mode direction flags (see LatLonGrid.ScanningFlags).
func NewRegularCoordinateIterator(ni, nj uint32, lat1, lon1, di, dj float64, iNegative, jPositive bool) *RegularCoordinateIterator {
	return &RegularCoordinateIterator{
		ni: ni, nj: nj,
		lat1: lat1, lon1: lon1,
		di: di, dj: dj,
		iNegative: iNegative,
		jPositive: jPositive,
	}
}

// Next returns the next point in scan order (i varies fastest).
func (it *RegularCoordinateIterator) Next() (lat, lon float64, ok bool) {
	if it.done || it.ni == 0 || it.nj == 0 {
		return 0, 0, false
	}

	lat = it.lat1
	if it.jPositive {
		lat = it.lat1 + float64(it.j)*it.dj
	} else {
		lat = it.lat1 - float64(it.j)*it.dj
	}

	lon = it.lon1
	if it.iNegative {
		lon = it.lon1 - float64(it.i)*it.di
	} else {
		lon = it.lon1 + float64(it.i)*it.di
	}
	lon = normalizeLon0to360(lon)

	it.i++
	if it.i >= it.ni {
		it.i = 0
		it.j++
		if it.j >= it.nj {
			it.done = true
		}
	}

	return lat, lon, true
}

// Len returns the total number of points the iterator walks.
func (it *RegularCoordinateIterator) Len() int {
	return int(it.ni * it.nj)
}

// Reset rewinds the iterator to its first point.
func (it *RegularCoordinateIterator) Reset() {
	it.i, it.j, it.done = 0, 0, false
}

// IrregularCoordinateIterator walks a grid whose points do not fall on a
// uniform i/j step — a reduced or full Gaussian grid (latitudes are roots
// of a Legendre polynomial, not equally spaced) or a projected grid like
// Lambert Conformal (uniform in x/y, not in lat/lon). Rather than
// reimplementing each projection's per-point math, it wraps the
// coordinate slices the grid's own Coordinates() method already produces.
type IrregularCoordinateIterator struct {
	lats, lons []float64
	idx        int
}

// NewIrregularCoordinateIterator wraps precomputed latitude/longitude
// slices (as returned by a grid's Coordinates method) for sequential
// access. lats and lons must be the same length.
func NewIrregularCoordinateIterator(lats, lons []float64) *IrregularCoordinateIterator {
	return &IrregularCoordinateIterator{lats: lats, lons: lons}
}

// Next returns the next point in the wrapped slices' order.
func (it *IrregularCoordinateIterator) Next() (lat, lon float64, ok bool) {
	if it.idx >= len(it.lats) {
		return 0, 0, false
	}
	lat, lon = it.lats[it.idx], it.lons[it.idx]
	it.idx++
	return lat, lon, true
}

// Len returns the total number of points the iterator will yield.
func (it *IrregularCoordinateIterator) Len() int {
	return len(it.lats)
}

// Reset rewinds the iterator to its first point.
func (it *IrregularCoordinateIterator) Reset() {
	it.idx = 0
}

// Iterator returns a CoordinateIterator over the grid's points without
// requiring the full coordinate slices to be materialized.
func (g *LatLonGrid) Iterator() CoordinateIterator {
	lat1, lon1 := g.FirstGridPoint()
	di, dj := g.Increment()
	iNegative, jPositive, _ := g.ScanningFlags()
	return NewRegularCoordinateIterator(g.Ni, g.Nj, lat1, lon1, di, dj, iNegative, jPositive)
}

// Iterator returns a CoordinateIterator over the Gaussian grid's points.
// Gaussian latitudes are irregularly spaced, so this wraps the
// precomputed Coordinates() output rather than stepping a fixed di/dj.
func (g *GaussianGrid) Iterator() CoordinateIterator {
	lats, lons := g.Coordinates()
	return NewIrregularCoordinateIterator(lats, lons)
}

// Iterator returns a CoordinateIterator over the Lambert Conformal grid's
// points. The grid is uniform in projected x/y, not in lat/lon, so this
// wraps the precomputed Coordinates() output rather than stepping a fixed
// lat/lon increment.
func (g *LambertConformalGrid) Iterator() CoordinateIterator {
	lats, lons := g.Coordinates()
	return NewIrregularCoordinateIterator(lats, lons)
}
