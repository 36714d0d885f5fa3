package grib

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mmp/squall/grid"
	"github.com/mmp/squall/product"
	"github.com/mmp/squall/section"
	"github.com/mmp/squall/tables"
)

// Message represents a complete parsed GRIB2 message.
//
// A GRIB2 message contains all the information needed to describe and
// decode a single meteorological field, including metadata, grid definition,
// product description, and the packed data values.
type Message struct {
	// Section0 contains the indicator section with discipline and message length
	Section0 *section.Section0

	// Section1 contains identification information (center, time, etc.)
	Section1 *section.Section1

	// Section2 contains local use data (optional, may be nil)
	Section2 *section.Section2

	// Section3 contains the grid definition
	Section3 *section.Section3

	// Section4 contains the product definition
	Section4 *section.Section4

	// Section5 contains the data representation template
	Section5 *section.Section5

	// Section6 contains the bitmap (optional, may be nil if all points valid)
	Section6 *section.Section6

	// Section7 contains the packed data
	Section7 *section.Section7

	// RawData is the original message bytes (for debugging/analysis)
	RawData []byte

	// ByteOffset is this message's starting offset within the source file
	// it was scanned from, e.g. via FindMessages/MessageBoundary.Start. It
	// is 0 when the message was parsed directly from a standalone buffer
	// via ParseMessage rather than ParseMessageAt.
	ByteOffset int
}

// ParseMessage parses a complete GRIB2 message from raw bytes.
//
// The input data should contain a single complete GRIB2 message starting
// with "GRIB" and ending with "7777".
//
// This function parses all 8 sections of the message:
//   - Section 0: Indicator (discipline, message length)
//   - Section 1: Identification (center, reference time, etc.)
//   - Section 2: Local use (optional)
//   - Section 3: Grid definition
//   - Section 4: Product definition
//   - Section 5: Data representation
//   - Section 6: Bitmap
//   - Section 7: Data
//   - Section 8: End marker "7777"
//
// Note: Currently assumes one field per message. Multi-field messages
// (where sections 3-7 repeat) are not yet supported.
func ParseMessage(data []byte) (*Message, error) {
	if err := ValidateMessageStructure(data); err != nil {
		return nil, err
	}

	msg := &Message{
		RawData: data,
	}

	offset := 0

	// Parse Section 0 (always 16 bytes)
	sec0, err := section.ParseSection0(data[offset : offset+16])
	if err != nil {
		return nil, &ParseError{
			Section:    0,
			Offset:     offset,
			Message:    "failed to parse Section 0",
			Underlying: err,
		}
	}
	msg.Section0 = sec0
	offset += 16

	// Parse Section 1 (variable length)
	sec1, err := parseSectionAt(data, offset, 1)
	if err != nil {
		return nil, err
	}
	msg.Section1 = sec1.(*section.Section1)
	offset += int(sec1.(*section.Section1).Length)

	// Check for optional Section 2
	if offset < len(data)-4 && data[offset+4] == 2 {
		sec2, err := parseSectionAt(data, offset, 2)
		if err != nil {
			return nil, err
		}
		msg.Section2 = sec2.(*section.Section2)
		offset += int(sec2.(*section.Section2).Length)
	}

	// Parse Section 3 (Grid Definition)
	sec3, err := parseSectionAt(data, offset, 3)
	if err != nil {
		return nil, err
	}
	msg.Section3 = sec3.(*section.Section3)
	offset += int(sec3.(*section.Section3).Length)

	// Parse Section 4 (Product Definition)
	sec4, err := parseSectionAt(data, offset, 4)
	if err != nil {
		return nil, err
	}
	msg.Section4 = sec4.(*section.Section4)
	offset += int(sec4.(*section.Section4).Length)

	// Parse Section 5 (Data Representation)
	sec5, err := parseSectionAt(data, offset, 5)
	if err != nil {
		return nil, err
	}
	msg.Section5 = sec5.(*section.Section5)
	offset += int(sec5.(*section.Section5).Length)

	// Parse Section 6 (Bitmap)
	// Section 6 needs the number of grid points from Section 3
	numGridPoints := uint32(msg.Section3.NumDataPoints)
	sec6Data := extractSectionData(data, offset, 6)
	if sec6Data == nil {
		return nil, &ParseError{
			Section: 6,
			Offset:  offset,
			Message: "failed to extract section 6 data",
		}
	}
	sec6, err := section.ParseSection6(sec6Data, numGridPoints)
	if err != nil {
		return nil, &ParseError{
			Section:    6,
			Offset:     offset,
			Message:    "failed to parse Section 6",
			Underlying: err,
		}
	}
	msg.Section6 = sec6
	offset += int(sec6.Length)

	// Parse Section 7 (Data)
	sec7, err := parseSectionAt(data, offset, 7)
	if err != nil {
		return nil, err
	}
	msg.Section7 = sec7.(*section.Section7)
	offset += int(sec7.(*section.Section7).Length)

	// The remaining 4 bytes should be the end marker "7777"
	// (already validated by ValidateMessageStructure)

	return msg, nil
}

// ParseMessageAt parses a complete GRIB2 message from raw bytes, recording
// byteOffset as the message's position within whatever larger stream it was
// located in (e.g. a MessageBoundary.Start from FindMessages), so that
// Metadata().ByteOffset reflects the message's place in its source file.
func ParseMessageAt(data []byte, byteOffset int) (*Message, error) {
	msg, err := ParseMessage(data)
	if err != nil {
		return nil, err
	}
	msg.ByteOffset = byteOffset
	return msg, nil
}

// extractSectionData reads a section's length and extracts its data.
func extractSectionData(data []byte, offset int, expectedSection uint8) []byte {
	if offset+5 > len(data) {
		return nil
	}

	// Read section length (first 4 bytes)
	sectionLength := uint32(data[offset])<<24 | uint32(data[offset+1])<<16 |
		uint32(data[offset+2])<<8 | uint32(data[offset+3])

	// Validate we have enough data
	if offset+int(sectionLength) > len(data) {
		return nil
	}

	return data[offset : offset+int(sectionLength)]
}

// parseSectionAt reads a section length and parses the appropriate section type.
func parseSectionAt(data []byte, offset int, expectedSection uint8) (interface{}, error) {
	sectionData := extractSectionData(data, offset, expectedSection)
	if sectionData == nil {
		return nil, &ParseError{
			Section: int(expectedSection),
			Offset:  offset,
			Message: fmt.Sprintf("failed to extract section %d data", expectedSection),
		}
	}

	// Parse based on section type
	switch expectedSection {
	case 1:
		return section.ParseSection1(sectionData)
	case 2:
		return section.ParseSection2(sectionData)
	case 3:
		return section.ParseSection3(sectionData)
	case 4:
		return section.ParseSection4(sectionData)
	case 5:
		return section.ParseSection5(sectionData)
	case 7:
		return section.ParseSection7(sectionData)
	default:
		return nil, &ParseError{
			Section: int(expectedSection),
			Offset:  offset,
			Message: fmt.Sprintf("unsupported section number: %d", expectedSection),
		}
	}
}

// DecodeData decodes the data values from this message.
//
// Returns a slice of float64 values in grid scan order.
// Missing/undefined values are represented as NaN.
//
// This method combines the data representation (Section 5), bitmap (Section 6),
// and packed data (Section 7) to produce the final decoded values.
func (m *Message) DecodeData() ([]float64, error) {
	if m.Section5 == nil || m.Section5.Representation == nil {
		return nil, fmt.Errorf("message has no data representation (Section 5)")
	}

	if m.Section7 == nil {
		return nil, fmt.Errorf("message has no data section (Section 7)")
	}

	// Get bitmap if present
	var bitmap []bool
	if m.Section6 != nil && m.Section6.HasBitmap() {
		bitmap = m.Section6.Bitmap
	}

	// Decode using the representation template
	values, err := m.Section5.Representation.Decode(m.Section7.Data, bitmap)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}

	return values, nil
}

// Coordinates returns the lat/lon coordinates for this message's grid.
//
// Returns two slices (latitudes and longitudes) in grid scan order,
// matching the order of values returned by DecodeData().
//
// Works for any grid type that provides a Coordinates method (lat/lon,
// Mercator, polar stereographic, Lambert conformal, Gaussian). Returns an
// error for a grid type without one.
func (m *Message) Coordinates() (latitudes, longitudes []float64, err error) {
	if m.Section3 == nil || m.Section3.Grid == nil {
		return nil, nil, fmt.Errorf("message has no grid definition (Section 3)")
	}

	// Check whether the grid can generate coordinates
	switch grid := m.Section3.Grid.(type) {
	case interface {
		Coordinates() ([]float64, []float64)
	}:
		lats, lons := grid.Coordinates()
		return lats, lons, nil
	default:
		return nil, nil, fmt.Errorf("grid type %T does not support coordinate generation", m.Section3.Grid)
	}
}

// Metadata summarizes the fields of a message needed to identify and
// catalog it, without decoding any grid data. Field names mirror spec.md
// §3's MessageMetadata record; numeric codes are resolved to names via
// the tables package so callers never have to know WMO code values.
type Metadata struct {
	Key         string
	ByteOffset  int
	MessageSize uint64

	Var   string // short variable abbreviation, e.g. "HGT"
	Name  string
	Units string

	GeneratingProcess   string
	StatisticalProcess  string // "" when the product has no statistical processing
	DerivedForecastType string // "" when the product is not a derived-ensemble product

	TimeUnit     string
	TimeInterval uint32

	FirstFixedSurfaceType      string
	FirstFixedSurfaceValue     float64
	HasFirstFixedSurfaceValue  bool
	SecondFixedSurfaceType     string
	SecondFixedSurfaceValue    float64
	HasSecondFixedSurfaceValue bool

	Discipline      string
	Category        string
	DataCompression string
	HasBitmap       bool

	ReferenceDate      time.Time
	ForecastDate       time.Time
	ForecastEndDate    time.Time
	HasForecastEndDate bool

	Proj          string
	CRS           string
	IsRegularGrid bool
	GridShape     [2]int
	Projector     string

	IsEnsemble         bool
	PerturbationNumber uint8
	EnsembleSize       uint8
}

// forecastDateTime adds a GRIB2 Table 4.4 time-unit/amount pair to a
// reference instant. Month (3) and Year (4) are calendar-relative and
// handled via AddDate rather than a fixed-duration lookup; every other
// unit has a fixed length in seconds (tables.TimeUnitSeconds).
func forecastDateTime(reference time.Time, unit uint8, amount uint32) time.Time {
	switch unit {
	case 3:
		return reference.AddDate(0, int(amount), 0)
	case 4:
		return reference.AddDate(int(amount), 0, 0)
	}
	if secs, ok := tables.TimeUnitSeconds(int(unit)); ok {
		return reference.Add(time.Duration(int64(amount)*secs) * time.Second)
	}
	return reference
}

// fixedSurfaceString returns the lowercased Table 4.5 surface name for a
// fixed-surface type code, e.g. "isobaric" for code 100.
func fixedSurfaceString(code int) string {
	return strings.ToLower(tables.GetLevelName(code))
}

// levelString renders a GRIB2 first fixed surface the way the GRIB1 side
// renders a level (grib1.ProductDefinition.LevelString): "<value> in
// <unit>" when the surface type has a physical unit, else the surface
// name alone.
func levelString(surfaceType uint8, value float64) string {
	if unit := tables.GetLevelUnit(int(surfaceType)); unit != "" {
		return fmt.Sprintf("%g in %s", value, unit)
	}
	return fixedSurfaceString(int(surfaceType))
}

// Metadata returns identifying information about the message's field
// without decoding its data values.
func (m *Message) Metadata() Metadata {
	var md Metadata

	md.ByteOffset = m.ByteOffset
	if m.RawData != nil {
		md.MessageSize = uint64(len(m.RawData))
	}

	discipline := 0
	if m.Section0 != nil {
		discipline = int(m.Section0.Discipline)
		md.Discipline = m.Section0.DisciplineName()
	}

	if m.Section1 != nil {
		md.ReferenceDate = m.Section1.ReferenceTime
	}

	if m.Section3 != nil && m.Section3.Grid != nil {
		if proj, ok := m.Section3.Grid.(grid.ProjectionInfo); ok {
			md.Proj = proj.ProjectionName()
			md.CRS = proj.CRS()
			md.IsRegularGrid = proj.IsRegular()
			rows, cols := proj.Shape()
			md.GridShape = [2]int{rows, cols}
			md.Projector = proj.Projector()
		}
	}

	if m.Section5 != nil && m.Section5.Representation != nil {
		md.DataCompression = m.Section5.Representation.String()
	}
	if m.Section6 != nil {
		md.HasBitmap = m.Section6.HasBitmap()
	}

	if m.Section4 != nil && m.Section4.Product != nil {
		p := m.Section4.Product

		category := int(p.GetParameterCategory())
		number := int(p.GetParameterNumber())
		md.Category = tables.GetParameterCategoryName(discipline, category)
		md.Var = tables.GetParameterAbbrev(discipline, category, number)
		md.Name = tables.GetParameterName(discipline, category, number)
		md.Units = tables.GetParameterUnit(discipline, category, number)

		if si, ok := p.(product.SurfaceInfo); ok {
			md.GeneratingProcess = tables.GetGeneratingProcessName(int(si.GetGeneratingProcess()))
			md.TimeUnit = tables.GetTimeUnitName(int(si.GetTimeRangeUnit()))
			md.TimeInterval = si.GetForecastTime()

			md.FirstFixedSurfaceType = fixedSurfaceString(int(si.GetFirstSurfaceType()))
			md.FirstFixedSurfaceValue = si.FirstSurfaceValueScaled()
			md.HasFirstFixedSurfaceValue = true

			if si.HasSecondSurface() {
				md.SecondFixedSurfaceType = fixedSurfaceString(int(si.GetSecondSurfaceType()))
				md.SecondFixedSurfaceValue = si.SecondSurfaceValueScaled()
				md.HasSecondFixedSurfaceValue = true
			}

			if !md.ReferenceDate.IsZero() {
				md.ForecastDate = forecastDateTime(md.ReferenceDate, si.GetTimeRangeUnit(), si.GetForecastTime())
			}
		}

		if si, ok := p.(product.StatisticalInfo); ok {
			ranges := si.GetTimeRanges()
			if len(ranges) > 0 {
				md.StatisticalProcess = tables.GetStatisticalProcessName(int(ranges[0].StatisticalProcess))
			}
			year, month, day, hour, minute, second := si.GetEndOfInterval()
			if year > 0 {
				md.ForecastEndDate = time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
				md.HasForecastEndDate = true
			}
		}

		if di, ok := p.(product.DerivedForecastInfo); ok {
			md.DerivedForecastType = tables.GetDerivedForecastTypeName(int(di.GetDerivedForecastType()))
		}

		if ei, ok := p.(product.EnsembleInfo); ok {
			md.IsEnsemble = true
			md.PerturbationNumber = ei.GetPerturbationNumber()
			md.EnsembleSize = ei.GetEnsembleSize()
		}
	}

	md.Key = m.Key()

	return md
}

// Key returns a canonical string identifying this message's field,
// suitable as a map key when grouping messages by variable and level
// (e.g. when collating an ensemble or a time series): spec.md §3's
// "<var>:<forecast_date>:<level>:<gen_proc_abbrev>[:ens<n>]", matching
// the format produced by the GRIB1 façade's Message.Key().
func (m *Message) Key() string {
	discipline := 0
	if m.Section0 != nil {
		discipline = int(m.Section0.Discipline)
	}

	var varAbbrev, level, genProc string
	var forecastDate time.Time
	var ensembleSuffix string

	if m.Section1 != nil {
		forecastDate = m.Section1.ReferenceTime
	}

	if m.Section4 != nil && m.Section4.Product != nil {
		p := m.Section4.Product
		category := int(p.GetParameterCategory())
		number := int(p.GetParameterNumber())
		varAbbrev = tables.GetParameterAbbrev(discipline, category, number)

		if si, ok := p.(product.SurfaceInfo); ok {
			level = levelString(si.GetFirstSurfaceType(), si.FirstSurfaceValueScaled())
			genProc = tables.GetGeneratingProcessAbbrev(int(si.GetGeneratingProcess()))
			if !forecastDate.IsZero() {
				forecastDate = forecastDateTime(forecastDate, si.GetTimeRangeUnit(), si.GetForecastTime())
			}
		}

		if ei, ok := p.(product.EnsembleInfo); ok {
			ensembleSuffix = fmt.Sprintf(":ens%d", ei.GetPerturbationNumber())
		}
	}

	return fmt.Sprintf("%s:%s:%s:%s%s",
		varAbbrev, forecastDate.Format("200601021504"), level, genProc, ensembleSuffix)
}

// DataAtLocation decodes the message's data and returns the value at the
// grid point nearest to the given latitude/longitude, along with the
// distance (degrees, treating lat/lon as a flat plane) from the query
// point to that grid point.
//
// This is a linear nearest-neighbor search: O(numGridPoints) per call.
// Callers doing many lookups against the same message should call
// DecodeData and Coordinates once and search themselves.
func (m *Message) DataAtLocation(lat, lon float64) (value float64, distance float64, err error) {
	lats, lons, err := m.Coordinates()
	if err != nil {
		return 0, 0, err
	}

	values, err := m.DecodeData()
	if err != nil {
		return 0, 0, err
	}

	if len(values) != len(lats) {
		return 0, 0, fmt.Errorf("data length %d does not match coordinate length %d", len(values), len(lats))
	}

	bestIdx := -1
	bestDist := math.Inf(1)
	for i := range lats {
		dLat := lats[i] - lat
		dLon := normalizedLonDelta(lons[i], lon)
		d := math.Sqrt(dLat*dLat + dLon*dLon)
		if d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return 0, 0, fmt.Errorf("grid has no points")
	}

	return values[bestIdx], bestDist, nil
}

// normalizedLonDelta computes the shortest angular difference between two
// longitudes expressed in [0, 360) degrees, accounting for dateline wraparound.
func normalizedLonDelta(a, b float64) float64 {
	d := a - b
	for d > 180 {
		d -= 360
	}
	for d < -180 {
		d += 360
	}
	return d
}

// String returns a human-readable summary of the message.
func (m *Message) String() string {
	if m.Section0 == nil {
		return "Invalid GRIB2 message"
	}

	discipline := "Unknown"
	if m.Section0 != nil {
		discipline = m.Section0.DisciplineName()
	}

	grid := "Unknown"
	if m.Section3 != nil && m.Section3.Grid != nil {
		grid = m.Section3.Grid.String()
	}

	product := "Unknown"
	if m.Section4 != nil && m.Section4.Product != nil {
		product = m.Section4.Product.String()
	}

	return fmt.Sprintf("GRIB2 Message: Discipline=%s, Grid=%s, Product=%s",
		discipline, grid, product)
}
