// Package grib1 decodes the legacy GRIB edition 1 message format.
//
// GRIB1 predates the section-length-prefixed layout of GRIB2: most
// fields are positional, fixed-width, and packed with a 24-bit length
// prefix per section rather than a 32-bit one. This package is grounded
// on reddaly-gogrib2's grib1 package for section layout and on
// internal.ReadIBMFloat32/ReadSignMagnitudeInt16 for the IBM
// floating-point and sign-magnitude encodings GRIB1 inherited from its
// era (shared with GRIB2's earth-shape and grid-increment fields).
package grib1

import (
	"fmt"
)

// Message represents a fully parsed GRIB1 record.
type Message struct {
	Indicator  IndicatorSection
	Product    ProductDefinition
	Grid       *GridDescription
	Bitmap     []bool
	Data       []float64
}

// IndicatorSection is GRIB1 Section 0: the 8-byte preamble identifying
// the message as GRIB edition 1 and giving its total length.
type IndicatorSection struct {
	Discipline    uint8 // Always 0 (meteorological) for GRIB1; no Table 0.0
	Edition       uint8
	MessageLength uint32 // 24-bit total message length, octets 5-7
}

// ProductDefinition is GRIB1 Section 1 (PDS): originating center,
// parameter/level identification, and reference time.
type ProductDefinition struct {
	Length                uint32
	TableVersion          uint8
	OriginatingCenter     uint8
	GeneratingProcess     uint8
	GridID                uint8
	HasGDS                bool
	HasBMS                bool
	ParameterNumber       uint8 // Table 2 parameter code
	LevelType             uint8 // Table 3 level type
	LevelValue            uint16
	Year                  uint8
	Month                 uint8
	Day                   uint8
	Hour                  uint8
	Minute                uint8
	ForecastTimeUnit      uint8
	P1                    uint8
	P2                    uint8
	TimeRangeIndicator    uint8
	DecimalScaleFactor    int16
}

// GridDescription is GRIB1 Section 2 (GDS), present only when the PDS's
// "section 2 or 3 included" flag is set. Only the latitude/longitude
// grid representation (data representation type 0) is decoded; other
// representation types surface an error from ParseGridDescription.
type GridDescription struct {
	Length                 uint32
	DataRepresentationType uint8 // Table 6: 0 = lat/lon grid
	Ni, Nj                 uint32
	La1, Lo1               float64 // degrees
	La2, Lo2               float64 // degrees
	Di, Dj                 float64 // degrees
	ScanningMode           uint8
}

// ParseMessage parses a single GRIB1 message from raw bytes beginning
// with "GRIB" and ending with "7777".
func ParseMessage(data []byte) (*Message, error) {
	if len(data) < 8 || string(data[0:4]) != "GRIB" {
		return nil, fmt.Errorf("grib1: message does not start with \"GRIB\"")
	}

	ind, err := parseIndicatorSection(data)
	if err != nil {
		return nil, fmt.Errorf("grib1: %w", err)
	}
	if ind.Edition != 1 {
		return nil, fmt.Errorf("grib1: expected edition 1, got edition %d", ind.Edition)
	}

	msgLen := int(ind.MessageLength)
	if msgLen > len(data) {
		return nil, fmt.Errorf("grib1: declared message length %d exceeds available %d bytes", msgLen, len(data))
	}
	if string(data[msgLen-4:msgLen]) != "7777" {
		return nil, fmt.Errorf("grib1: missing end marker \"7777\"")
	}

	offset := 8

	product, err := parseProductDefinition(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("grib1: %w", err)
	}
	offset += int(product.Length)

	msg := &Message{Indicator: ind, Product: product}

	if product.HasGDS {
		gds, err := ParseGridDescription(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("grib1: %w", err)
		}
		msg.Grid = gds
		offset += int(gds.Length)
	}

	if product.HasBMS {
		bitmap, length, err := parseBitmapSection(data[offset:])
		if err != nil {
			return nil, fmt.Errorf("grib1: %w", err)
		}
		msg.Bitmap = bitmap
		offset += length
	}

	values, err := parseBinaryDataSection(data[offset:msgLen-4], msg.Bitmap, product.DecimalScaleFactor)
	if err != nil {
		return nil, fmt.Errorf("grib1: %w", err)
	}
	msg.Data = values

	return msg, nil
}

// parseIndicatorSection parses the 8-byte Section 0.
func parseIndicatorSection(data []byte) (IndicatorSection, error) {
	if len(data) < 8 {
		return IndicatorSection{}, fmt.Errorf("section 0 requires at least 8 bytes, got %d", len(data))
	}
	length := uint32(data[4])<<16 | uint32(data[5])<<8 | uint32(data[6])
	return IndicatorSection{
		Edition:       data[7],
		MessageLength: length,
	}, nil
}

// defaultCentury is assumed when reconstructing a reference time from the
// PDS's two-digit year of century, since GRIB1's base 28-byte PDS (no
// trailing extension octets) never records the century explicitly.
// Archives that need a different epoch should use ProductDefinition's
// own ReferenceTime/ForecastTime methods with an explicit century instead
// of Key().
const defaultCentury = 20

// Key returns a canonical identifier for the message's field:
// "<var>:<forecast_date>:<level>:<gen_proc_abbrev>", matching the format
// produced by the GRIB2 façade's Message.Key() (spec.md §3/§8's
// "z:201701010000:500 in mb:forecast" example), so callers collating a
// mixed GRIB1/GRIB2 archive can use one key scheme across both editions.
func (m *Message) Key() string {
	forecastDate := m.Product.ForecastTime(defaultCentury).Format("200601021504")
	return fmt.Sprintf("%s:%s:%s:%s",
		m.Product.ParameterAbbrev(),
		forecastDate,
		m.Product.LevelString(),
		m.Product.GeneratingProcessAbbrev())
}
