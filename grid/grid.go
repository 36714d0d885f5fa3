// Package grid provides grid definition types and parsers for GRIB2.
package grid

// Grid represents a GRIB2 grid definition.
// Different grid templates implement this interface.
type Grid interface {
	// TemplateNumber returns the grid definition template number (Table 3.1).
	TemplateNumber() int

	// NumPoints returns the total number of grid points.
	NumPoints() int

	// String returns a human-readable description of the grid.
	String() string
}

// ProjectionInfo is implemented by every grid type in this package and
// reports the projection identity a dataset builder needs to label a
// field's coordinate system: the proj-style name, a CRS label where one
// applies, whether the grid is regular in its own x/y space, its point
// shape, and which of spec.md's named projector kinds it is.
type ProjectionInfo interface {
	// ProjectionName returns a short proj4-style identifier, e.g.
	// "longlat", "lcc", "merc", "stere".
	ProjectionName() string

	// CRS returns a coordinate-reference-system label (e.g. "EPSG:4326")
	// for grids with a well-known one, or "" when none applies.
	CRS() string

	// IsRegular reports whether the grid is a regular (separable x/y)
	// grid. Per spec.md, Lambert Conformal grids are NOT regular despite
	// being regular in their own projected plane, since the fixed-width
	// x/y step is only regular in projected space, not in lat/lon.
	IsRegular() bool

	// Shape returns the grid's point counts as (rows, cols), i.e.
	// (latitude count, longitude count) — matching spec.md's
	// grid_shape=(361,720) convention.
	Shape() (rows, cols int)

	// Projector names which of spec.md's LatLngProjection kinds this
	// grid is: "PlateCaree", "Gaussian", "LambertConformal", plus the
	// bonus "Mercator"/"PolarStereographic" kinds.
	Projector() string
}
