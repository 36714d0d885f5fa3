package product

import (
	"fmt"

	"github.com/mmp/squall/internal"
)

// Template42 represents Product Definition Template 4.2:
// Derived forecast based on all ensemble members at a horizontal level
// or in a horizontal layer at a point in time.
//
// Used for ensemble mean, spread, and other statistics derived across
// all members rather than identifying a single member.
type Template42 struct {
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

	DerivedForecastType uint8 // Type of derived forecast (Table 4.7)
	NumberOfForecasts   uint8 // Number of forecasts used to derive this product
}

// ParseTemplate42 parses Product Definition Template 4.2.
//
// The template data should be at least 27 bytes.
func ParseTemplate42(data []byte) (*Template42, error) {
	if len(data) < 27 {
		return nil, fmt.Errorf("template 4.2 requires at least 27 bytes, got %d", len(data))
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

	derivedForecastType, _ := r.Uint8()
	numberOfForecasts, _ := r.Uint8()

	return &Template42{
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
		DerivedForecastType:      derivedForecastType,
		NumberOfForecasts:        numberOfForecasts,
	}, nil
}

func (t *Template42) TemplateNumber() int        { return 2 }
func (t *Template42) GetParameterCategory() uint8 { return t.ParameterCategory }
func (t *Template42) GetParameterNumber() uint8   { return t.ParameterNumber }

func (t *Template42) String() string {
	return fmt.Sprintf("Template 4.2: Category=%d, Parameter=%d, Derived Type=%d, NumForecasts=%d",
		t.ParameterCategory, t.ParameterNumber, t.DerivedForecastType, t.NumberOfForecasts)
}

// FirstSurfaceValueScaled returns the scaled value of the first fixed surface.
func (t *Template42) FirstSurfaceValueScaled() float64 {
	return scaledValue(t.FirstSurfaceValue, t.FirstSurfaceScaleFactor)
}

// SecondSurfaceValueScaled returns the scaled value of the second fixed surface.
func (t *Template42) SecondSurfaceValueScaled() float64 {
	return scaledValue(t.SecondSurfaceValue, t.SecondSurfaceScaleFactor)
}

// GetGeneratingProcess implements product.SurfaceInfo.
func (t *Template42) GetGeneratingProcess() uint8 { return t.GeneratingProcess }

// GetTimeRangeUnit implements product.SurfaceInfo.
func (t *Template42) GetTimeRangeUnit() uint8 { return t.TimeRangeUnit }

// GetForecastTime implements product.SurfaceInfo.
func (t *Template42) GetForecastTime() uint32 { return t.ForecastTime }

// GetFirstSurfaceType implements product.SurfaceInfo.
func (t *Template42) GetFirstSurfaceType() uint8 { return t.FirstSurfaceType }

// GetSecondSurfaceType implements product.SurfaceInfo.
func (t *Template42) GetSecondSurfaceType() uint8 { return t.SecondSurfaceType }

// HasSecondSurface implements product.SurfaceInfo.
func (t *Template42) HasSecondSurface() bool { return t.SecondSurfaceType != 255 }

// GetDerivedForecastType implements product.DerivedForecastInfo.
func (t *Template42) GetDerivedForecastType() uint8 { return t.DerivedForecastType }
