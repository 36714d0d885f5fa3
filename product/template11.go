package product

import (
	"fmt"

	"github.com/mmp/squall/internal"
)

// Template411 represents Product Definition Template 4.11:
// Individual ensemble forecast, control and perturbed, at a horizontal
// level or in a horizontal layer, in a continuous or non-continuous time
// interval.
//
// This combines Template 4.1's ensemble member identification with
// Template 4.8's statistical time-interval fields, covering products
// like ensemble accumulated precipitation.
type Template411 struct {
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

	EnsembleType       uint8
	PerturbationNumber uint8
	NumberOfForecasts  uint8

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

// ParseTemplate411 parses Product Definition Template 4.11.
//
// Base fields occupy 40 bytes; with n time ranges the template is
// 40 + 12*n bytes.
func ParseTemplate411(data []byte) (*Template411, error) {
	if len(data) < 40 {
		return nil, fmt.Errorf("template 4.11 requires at least 40 bytes, got %d", len(data))
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

	endYear, _ := r.Uint16()
	endMonth, _ := r.Uint8()
	endDay, _ := r.Uint8()
	endHour, _ := r.Uint8()
	endMinute, _ := r.Uint8()
	endSecond, _ := r.Uint8()
	numTimeRanges, _ := r.Uint8()
	numMissing, _ := r.Uint32()

	expectedLen := 40 + int(numTimeRanges)*12
	if len(data) < expectedLen {
		return nil, fmt.Errorf("template 4.11 with %d time ranges requires %d bytes, got %d",
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

	return &Template411{
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
		EnsembleType:               ensembleType,
		PerturbationNumber:         perturbationNumber,
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

func (t *Template411) TemplateNumber() int        { return 11 }
func (t *Template411) GetParameterCategory() uint8 { return t.ParameterCategory }
func (t *Template411) GetParameterNumber() uint8   { return t.ParameterNumber }

func (t *Template411) String() string {
	return fmt.Sprintf("Template 4.11: Category=%d, Parameter=%d, Member=%d, Time Ranges=%d",
		t.ParameterCategory, t.ParameterNumber, t.PerturbationNumber, t.NumberOfTimeRanges)
}

// FirstSurfaceValueScaled returns the scaled value of the first fixed surface.
func (t *Template411) FirstSurfaceValueScaled() float64 {
	return scaledValue(t.FirstSurfaceValue, t.FirstSurfaceScaleFactor)
}

// SecondSurfaceValueScaled returns the scaled value of the second fixed surface.
func (t *Template411) SecondSurfaceValueScaled() float64 {
	return scaledValue(t.SecondSurfaceValue, t.SecondSurfaceScaleFactor)
}

// GetGeneratingProcess implements product.SurfaceInfo.
func (t *Template411) GetGeneratingProcess() uint8 { return t.GeneratingProcess }

// GetTimeRangeUnit implements product.SurfaceInfo.
func (t *Template411) GetTimeRangeUnit() uint8 { return t.TimeRangeUnit }

// GetForecastTime implements product.SurfaceInfo.
func (t *Template411) GetForecastTime() uint32 { return t.ForecastTime }

// GetFirstSurfaceType implements product.SurfaceInfo.
func (t *Template411) GetFirstSurfaceType() uint8 { return t.FirstSurfaceType }

// GetSecondSurfaceType implements product.SurfaceInfo.
func (t *Template411) GetSecondSurfaceType() uint8 { return t.SecondSurfaceType }

// HasSecondSurface implements product.SurfaceInfo.
func (t *Template411) HasSecondSurface() bool { return t.SecondSurfaceType != 255 }

// GetPerturbationNumber implements product.EnsembleInfo.
func (t *Template411) GetPerturbationNumber() uint8 { return t.PerturbationNumber }

// GetEnsembleSize implements product.EnsembleInfo.
func (t *Template411) GetEnsembleSize() uint8 { return t.NumberOfForecasts }

// GetTimeRanges implements product.StatisticalInfo.
func (t *Template411) GetTimeRanges() []StatisticalTimeRange { return t.TimeRanges }

// GetEndOfInterval implements product.StatisticalInfo.
func (t *Template411) GetEndOfInterval() (year, month, day, hour, minute, second int) {
	return int(t.EndYear), int(t.EndMonth), int(t.EndDay), int(t.EndHour), int(t.EndMinute), int(t.EndSecond)
}
