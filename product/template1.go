package product

import (
	"fmt"

	"github.com/mmp/squall/internal"
)

// Template41 represents Product Definition Template 4.1:
// Individual ensemble forecast, control and perturbed, at a horizontal
// level or in a horizontal layer at a point in time.
//
// This extends Template 4.0 with ensemble member identification, used by
// ensemble prediction systems (NCEP GEFS, ECMWF ENS).
type Template41 struct {
	// Fields from Template 4.0 (octets 10-34)
	ParameterCategory        uint8
	ParameterNumber          uint8
	GeneratingProcess        uint8
	BackgroundProcess        uint8
	ForecastProcess          uint8
	HoursAfterCutoff         uint16
	MinutesAfterCutoff       uint8
	TimeRangeUnit            uint8
	ForecastTime             uint32
	FirstSurfaceType         uint8
	FirstSurfaceScaleFactor  uint8
	FirstSurfaceValue        uint32
	SecondSurfaceType        uint8
	SecondSurfaceScaleFactor uint8
	SecondSurfaceValue       uint32

	// Template 4.1 specific fields (Table 4.6/4.7)
	EnsembleType   uint8 // Type of ensemble forecast (Table 4.6)
	PerturbationNumber uint8 // Perturbation number
	NumberOfForecasts  uint8 // Number of forecasts in ensemble
}

// ParseTemplate41 parses Product Definition Template 4.1.
//
// The template data should be at least 28 bytes (25 from Template 4.0's
// layout plus 3 bytes of ensemble identification).
func ParseTemplate41(data []byte) (*Template41, error) {
	if len(data) < 28 {
		return nil, fmt.Errorf("template 4.1 requires at least 28 bytes, got %d", len(data))
	}

	r := internal.NewReader(data)

	paramCategory, _ := r.Uint8()
	paramNumber, _ := r.Uint8()
	generatingProcess, _ := r.Uint8()
	backgroundProcess, _ := r.Uint8()
	forecastProcess, _ := r.Uint8()
	hoursAfterCutoff, _ := r.Uint16()
	minutesAfterCutoff, _ := r.Uint8()
	timeRangeUnit, _ := r.Uint8()
	forecastTime, _ := r.Uint32()
	firstSurfaceType, _ := r.Uint8()
	firstSurfaceScaleFactor, _ := r.Uint8()
	firstSurfaceValue, _ := r.Uint32()
	secondSurfaceType, _ := r.Uint8()
	secondSurfaceScaleFactor, _ := r.Uint8()
	secondSurfaceValue, _ := r.Uint32()

	ensembleType, _ := r.Uint8()
	perturbationNumber, _ := r.Uint8()
	numberOfForecasts, _ := r.Uint8()

	return &Template41{
		ParameterCategory:        paramCategory,
		ParameterNumber:          paramNumber,
		GeneratingProcess:        generatingProcess,
		BackgroundProcess:        backgroundProcess,
		ForecastProcess:          forecastProcess,
		HoursAfterCutoff:         hoursAfterCutoff,
		MinutesAfterCutoff:       minutesAfterCutoff,
		TimeRangeUnit:            timeRangeUnit,
		ForecastTime:             forecastTime,
		FirstSurfaceType:         firstSurfaceType,
		FirstSurfaceScaleFactor:  firstSurfaceScaleFactor,
		FirstSurfaceValue:        firstSurfaceValue,
		SecondSurfaceType:        secondSurfaceType,
		SecondSurfaceScaleFactor: secondSurfaceScaleFactor,
		SecondSurfaceValue:       secondSurfaceValue,
		EnsembleType:             ensembleType,
		PerturbationNumber:       perturbationNumber,
		NumberOfForecasts:        numberOfForecasts,
	}, nil
}

func (t *Template41) TemplateNumber() int        { return 1 }
func (t *Template41) GetParameterCategory() uint8 { return t.ParameterCategory }
func (t *Template41) GetParameterNumber() uint8   { return t.ParameterNumber }

func (t *Template41) String() string {
	return fmt.Sprintf("Template 4.1: Category=%d, Parameter=%d, Ensemble Type=%d, Member=%d",
		t.ParameterCategory, t.ParameterNumber, t.EnsembleType, t.PerturbationNumber)
}

// FirstSurfaceValueScaled returns the scaled value of the first fixed surface.
func (t *Template41) FirstSurfaceValueScaled() float64 {
	return scaledValue(t.FirstSurfaceValue, t.FirstSurfaceScaleFactor)
}

// SecondSurfaceValueScaled returns the scaled value of the second fixed surface.
func (t *Template41) SecondSurfaceValueScaled() float64 {
	return scaledValue(t.SecondSurfaceValue, t.SecondSurfaceScaleFactor)
}

// GetGeneratingProcess implements product.SurfaceInfo.
func (t *Template41) GetGeneratingProcess() uint8 { return t.GeneratingProcess }

// GetTimeRangeUnit implements product.SurfaceInfo.
func (t *Template41) GetTimeRangeUnit() uint8 { return t.TimeRangeUnit }

// GetForecastTime implements product.SurfaceInfo.
func (t *Template41) GetForecastTime() uint32 { return t.ForecastTime }

// GetFirstSurfaceType implements product.SurfaceInfo.
func (t *Template41) GetFirstSurfaceType() uint8 { return t.FirstSurfaceType }

// GetSecondSurfaceType implements product.SurfaceInfo.
func (t *Template41) GetSecondSurfaceType() uint8 { return t.SecondSurfaceType }

// HasSecondSurface implements product.SurfaceInfo.
func (t *Template41) HasSecondSurface() bool { return t.SecondSurfaceType != 255 }

// GetPerturbationNumber implements product.EnsembleInfo.
func (t *Template41) GetPerturbationNumber() uint8 { return t.PerturbationNumber }

// GetEnsembleSize implements product.EnsembleInfo.
func (t *Template41) GetEnsembleSize() uint8 { return t.NumberOfForecasts }

// scaledValue applies a GRIB2-style power-of-ten scale factor to a raw value.
func scaledValue(value uint32, scaleFactor uint8) float64 {
	if scaleFactor == 0 {
		return float64(value)
	}
	divisor := 1.0
	for i := uint8(0); i < scaleFactor; i++ {
		divisor *= 10.0
	}
	return float64(value) / divisor
}
