package product

import (
	"fmt"

	"github.com/mmp/squall/internal"
)

// Template412 represents Product Definition Template 4.12:
// Derived forecast based on all ensemble members at a horizontal level
// or in a horizontal layer, in a continuous or non-continuous time
// interval.
//
// Combines Template 4.2's derived-forecast-type field with Template
// 4.8's statistical time-interval fields, covering products like
// ensemble-mean accumulated precipitation.
type Template412 struct {
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

	DerivedForecastType uint8
	NumberOfForecasts   uint8

	EndYear                    uint16
	EndMonth                   uint8
	EndDay                     uint8
	EndHour                    uint8
	EndMinute                  uint8
	EndSecond                  uint8
	NumberOfTimeRanges         uint8
	NumberMissingInStatProcess uint32

	TimeRanges []StatisticalTimeRange
}

// ParseTemplate412 parses Product Definition Template 4.12.
//
// Base fields occupy 39 bytes; with n time ranges the template is
// 39 + 12*n bytes.
func ParseTemplate412(data []byte) (*Template412, error) {
	if len(data) < 39 {
		return nil, fmt.Errorf("template 4.12 requires at least 39 bytes, got %d", len(data))
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

	endYear, _ := r.Uint16()
	endMonth, _ := r.Uint8()
	endDay, _ := r.Uint8()
	endHour, _ := r.Uint8()
	endMinute, _ := r.Uint8()
	endSecond, _ := r.Uint8()
	numTimeRanges, _ := r.Uint8()
	numMissing, _ := r.Uint32()

	expectedLen := 39 + int(numTimeRanges)*12
	if len(data) < expectedLen {
		return nil, fmt.Errorf("template 4.12 with %d time ranges requires %d bytes, got %d",
			numTimeRanges, expectedLen, len(data))
	}

	timeRanges := make([]StatisticalTimeRange, numTimeRanges)
	for i := uint8(0); i < numTimeRanges; i++ {
		statProcess, _ := r.Uint8()
		timeIncrType, _ := r.Uint8()
		trUnit, _ := r.Uint8()
		trLen, _ := r.Uint32()
		tiUnit, _ := r.Uint8()
		ti, _ := r.Uint32()

		timeRanges[i] = StatisticalTimeRange{
			StatisticalProcess: statProcess,
			TimeIncrementType:  timeIncrType,
			TimeRangeUnit:      trUnit,
			TimeRangeLength:    trLen,
			TimeIncrementUnit:  tiUnit,
			TimeIncrement:      ti,
		}
	}

	return &Template412{
		ParameterCategory:          paramCategory,
		ParameterNumber:            paramNumber,
		GeneratingProcess:          generatingProcess,
		BackgroundProcess:          backgroundProcess,
		ForecastProcess:            forecastProcess,
		HoursAfterCutoff:           hoursAfterCutoff,
		MinutesAfterCutoff:         minutesAfterCutoff,
		TimeRangeUnit:              timeRangeUnit,
		ForecastTime:               forecastTime,
		FirstSurfaceType:           firstSurfaceType,
		FirstSurfaceScaleFactor:    firstSurfaceScaleFactor,
		FirstSurfaceValue:          firstSurfaceValue,
		SecondSurfaceType:          secondSurfaceType,
		SecondSurfaceScaleFactor:   secondSurfaceScaleFactor,
		SecondSurfaceValue:         secondSurfaceValue,
		DerivedForecastType:        derivedForecastType,
		NumberOfForecasts:          numberOfForecasts,
		EndYear:                    endYear,
		EndMonth:                   endMonth,
		EndDay:                     endDay,
		EndHour:                    endHour,
		EndMinute:                  endMinute,
		EndSecond:                  endSecond,
		NumberOfTimeRanges:         numTimeRanges,
		NumberMissingInStatProcess: numMissing,
		TimeRanges:                 timeRanges,
	}, nil
}

func (t *Template412) TemplateNumber() int        { return 12 }
func (t *Template412) GetParameterCategory() uint8 { return t.ParameterCategory }
func (t *Template412) GetParameterNumber() uint8   { return t.ParameterNumber }

func (t *Template412) String() string {
	return fmt.Sprintf("Template 4.12: Category=%d, Parameter=%d, Derived Type=%d, Time Ranges=%d",
		t.ParameterCategory, t.ParameterNumber, t.DerivedForecastType, t.NumberOfTimeRanges)
}

// FirstSurfaceValueScaled returns the scaled value of the first fixed surface.
func (t *Template412) FirstSurfaceValueScaled() float64 {
	return scaledValue(t.FirstSurfaceValue, t.FirstSurfaceScaleFactor)
}

// SecondSurfaceValueScaled returns the scaled value of the second fixed surface.
func (t *Template412) SecondSurfaceValueScaled() float64 {
	return scaledValue(t.SecondSurfaceValue, t.SecondSurfaceScaleFactor)
}

// GetGeneratingProcess implements product.SurfaceInfo.
func (t *Template412) GetGeneratingProcess() uint8 { return t.GeneratingProcess }

// GetTimeRangeUnit implements product.SurfaceInfo.
func (t *Template412) GetTimeRangeUnit() uint8 { return t.TimeRangeUnit }

// GetForecastTime implements product.SurfaceInfo.
func (t *Template412) GetForecastTime() uint32 { return t.ForecastTime }

// GetFirstSurfaceType implements product.SurfaceInfo.
func (t *Template412) GetFirstSurfaceType() uint8 { return t.FirstSurfaceType }

// GetSecondSurfaceType implements product.SurfaceInfo.
func (t *Template412) GetSecondSurfaceType() uint8 { return t.SecondSurfaceType }

// HasSecondSurface implements product.SurfaceInfo.
func (t *Template412) HasSecondSurface() bool { return t.SecondSurfaceType != 255 }

// GetDerivedForecastType implements product.DerivedForecastInfo.
func (t *Template412) GetDerivedForecastType() uint8 { return t.DerivedForecastType }

// GetTimeRanges implements product.StatisticalInfo.
func (t *Template412) GetTimeRanges() []StatisticalTimeRange { return t.TimeRanges }

// GetEndOfInterval implements product.StatisticalInfo.
func (t *Template412) GetEndOfInterval() (year, month, day, hour, minute, second int) {
	return int(t.EndYear), int(t.EndMonth), int(t.EndDay), int(t.EndHour), int(t.EndMinute), int(t.EndSecond)
}
