package grib1

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmp/squall/internal"
	"github.com/mmp/squall/tables"
)

// parseProductDefinition parses GRIB1 Section 1 (PDS).
//
// PDS layout (fixed, 28 bytes minimum, octet numbers relative to the
// start of the section):
//
//	Octets 1-3:   Length of section
//	Octet 4:      Parameter table version
//	Octet 5:      Originating center
//	Octet 6:      Generating process
//	Octet 7:      Grid identification
//	Octet 8:      Flags (bit 1: GDS present, bit 2: BMS present)
//	Octet 9:      Parameter (Table 2)
//	Octet 10:     Type of level (Table 3)
//	Octets 11-12: Level value
//	Octet 13:     Year of century
//	Octet 14:     Month
//	Octet 15:     Day
//	Octet 16:     Hour
//	Octet 17:     Minute
//	Octet 18:     Forecast time unit
//	Octet 19:     P1
//	Octet 20:     P2
//	Octet 21:     Time range indicator
//	Octets 27-28: Decimal scale factor (sign-magnitude)
func parseProductDefinition(data []byte) (ProductDefinition, error) {
	if len(data) < 28 {
		return ProductDefinition{}, fmt.Errorf("PDS requires at least 28 bytes, got %d", len(data))
	}

	length := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
	flags := data[7]

	decimalScale := internal.ReadSignMagnitudeInt16(uint16(data[26])<<8 | uint16(data[27]))

	return ProductDefinition{
		Length:             length,
		TableVersion:       data[3],
		OriginatingCenter:  data[4],
		GeneratingProcess:  data[5],
		GridID:             data[6],
		HasGDS:             flags&0x80 != 0,
		HasBMS:             flags&0x40 != 0,
		ParameterNumber:    data[8],
		LevelType:          data[9],
		LevelValue:         uint16(data[10])<<8 | uint16(data[11]),
		Year:               data[12],
		Month:              data[13],
		Day:                data[14],
		Hour:               data[15],
		Minute:             data[16],
		ForecastTimeUnit:   data[17],
		P1:                 data[18],
		P2:                 data[19],
		TimeRangeIndicator: data[20],
		DecimalScaleFactor: decimalScale,
	}, nil
}

// ReferenceTime reconstructs the message's reference time. GRIB1 stores
// only a two-digit year of century; callers needing the true year must
// supply the century separately (the format has no unambiguous epoch).
func (p ProductDefinition) ReferenceTime(century int) time.Time {
	year := century*100 + int(p.Year)
	return time.Date(year, time.Month(p.Month), int(p.Day), int(p.Hour), int(p.Minute), 0, 0, time.UTC)
}

// ParameterName returns the parameter's name from GRIB1 Table 2, per the
// PDS's own table version.
func (p ProductDefinition) ParameterName() string {
	return tables.GetGRIB1ParameterName(p.TableVersion, int(p.ParameterNumber))
}

// ParameterUnit returns the parameter's unit from GRIB1 Table 2.
func (p ProductDefinition) ParameterUnit() string {
	return tables.GetGRIB1ParameterUnit(p.TableVersion, int(p.ParameterNumber))
}

// ParameterAbbrev returns the parameter's short variable abbreviation from
// GRIB1 Table 2, e.g. "z" for ECMWF table 128 geopotential.
func (p ProductDefinition) ParameterAbbrev() string {
	return tables.GetGRIB1ParameterAbbrev(p.TableVersion, int(p.ParameterNumber))
}

// ForecastTime reconstructs the field's valid time: the reference time
// plus P1 units of the PDS's forecast time unit (GRIB1 Table 4, the same
// code values as WMO Table 4.4). Time range indicators that don't fit the
// simple "reference + P1" shape (averages, accumulations spanning P1..P2)
// still anchor on P1 as the nearest approximation.
func (p ProductDefinition) ForecastTime(century int) time.Time {
	ref := p.ReferenceTime(century)
	if secs, ok := tables.TimeUnitSeconds(int(p.ForecastTimeUnit)); ok {
		return ref.Add(time.Duration(int64(p.P1)*secs) * time.Second)
	}
	return ref
}

// GeneratingProcessAbbrev returns the Message.Key() abbreviation derived
// from the PDS's time range indicator (GRIB1 Table 5) — GRIB1 has no
// direct analogue of GRIB2's Table 4.3 generating-process code, but the
// time range indicator plays the same role of saying how the field was
// produced (straight forecast, analysis, time average, ...).
func (p ProductDefinition) GeneratingProcessAbbrev() string {
	return tables.GetGRIB1TimeRangeAbbrev(int(p.TimeRangeIndicator))
}

// LevelString renders the field's level as "<value> in <unit>" when the
// level type has a unit (e.g. "500 in mb" for isobaric surfaces), or the
// lowercased level name otherwise (e.g. "surface").
func (p ProductDefinition) LevelString() string {
	if unit := tables.GetGRIB1LevelUnit(int(p.LevelType)); unit != "" {
		return fmt.Sprintf("%d in %s", p.LevelValue, unit)
	}
	return strings.ToLower(tables.GetLevelName(int(p.LevelType)))
}
