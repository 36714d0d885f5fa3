// Package product provides product definition types and parsers for GRIB2.
package product

// Product represents a GRIB2 product definition.
// Different product templates implement this interface.
type Product interface {
	// TemplateNumber returns the product definition template number (Table 4.0).
	TemplateNumber() int

	// GetParameterCategory returns the parameter category code (Table 4.1).
	GetParameterCategory() uint8

	// GetParameterNumber returns the parameter number code (Table 4.2).
	GetParameterNumber() uint8

	// String returns a human-readable description of the product.
	String() string
}

// SurfaceInfo is implemented by every product template (4.0, 4.1, 4.2,
// 4.8, 4.11, 4.12): they all share the same leading generating-process,
// forecast-time, and fixed-surface fields. Message.Metadata() type-asserts
// a Product against this interface rather than switching on every
// concrete template type.
type SurfaceInfo interface {
	GetGeneratingProcess() uint8
	GetTimeRangeUnit() uint8
	GetForecastTime() uint32
	GetFirstSurfaceType() uint8
	FirstSurfaceValueScaled() float64
	GetSecondSurfaceType() uint8
	SecondSurfaceValueScaled() float64
	// HasSecondSurface reports whether a second fixed surface is present,
	// i.e. the surface type isn't the Table 4.5 "Missing" sentinel (255).
	HasSecondSurface() bool
}

// EnsembleInfo is implemented by the ensemble templates (4.1, 4.11).
type EnsembleInfo interface {
	GetPerturbationNumber() uint8
	GetEnsembleSize() uint8
}

// DerivedForecastInfo is implemented by the derived-forecast templates
// (4.2, 4.12).
type DerivedForecastInfo interface {
	GetDerivedForecastType() uint8
}

// StatisticalInfo is implemented by the statistically-processed-interval
// templates (4.8, 4.11, 4.12).
type StatisticalInfo interface {
	GetTimeRanges() []StatisticalTimeRange
	GetEndOfInterval() (year, month, day, hour, minute, second int)
}
