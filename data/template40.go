package data

import (
	"fmt"
	"math"

	"github.com/mmp/squall/internal"
)

// Template5340 represents Data Representation Template 5.40: Grid point
// data - JPEG 2000 code stream format.
//
// Decode runs a from-scratch JPEG 2000 Part 1 decoder (see jpeg2000.go,
// jpeg2000_packet.go, jpeg2000_tier1.go, jpeg2000_dwt.go) scoped to the
// codestreams GRIB2 encoders actually produce: one tile, one quality
// layer, default precincts, and the reversible 5/3 wavelet. Anything
// outside that scope (multi-tile, multi-layer, irreversible/lossy,
// custom precincts) is reported via UnsupportedTemplateError rather than
// silently mis-decoded.
type Template5340 struct {
	ReferenceValue      float32
	BinaryScaleFactor   int16
	DecimalScaleFactor  int16
	NumBitsPerValue     uint8
	OriginalFieldType   uint8
	TypeOfCompression    uint8 // Table 5.40: 0 = lossless, 1 = lossy
	TargetCompressionRatio uint8
	NumberOfDataValues  uint32
}

// jpeg2000SOCMarker is the Start-Of-Codestream marker (0xFF4F) that every
// valid JP2K codestream begins with.
const jpeg2000SOCMarker = 0xFF4F

// ParseTemplate5340 parses Data Representation Template 5.40.
//
// The template data should be at least 12 bytes for Template 5.40.
func ParseTemplate5340(numDataValues uint32, data []byte) (*Template5340, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("template 5.40 requires at least 12 bytes, got %d", len(data))
	}

	r := internal.NewReader(data)

	referenceValue, _ := r.Float32()
	binaryScaleFactor, _ := r.Int16()
	decimalScaleFactor, _ := r.Int16()
	bitsPerValue, _ := r.Uint8()
	originalFieldType, _ := r.Uint8()
	typeOfCompression, _ := r.Uint8()
	targetCompressionRatio, _ := r.Uint8()

	return &Template5340{
		ReferenceValue:         referenceValue,
		BinaryScaleFactor:      binaryScaleFactor,
		DecimalScaleFactor:     decimalScaleFactor,
		NumBitsPerValue:        bitsPerValue,
		OriginalFieldType:      originalFieldType,
		TypeOfCompression:      typeOfCompression,
		TargetCompressionRatio: targetCompressionRatio,
		NumberOfDataValues:     numDataValues,
	}, nil
}

func (t *Template5340) TemplateNumber() int    { return 40 }
func (t *Template5340) NumDataValues() uint32  { return t.NumberOfDataValues }
func (t *Template5340) BitsPerValue() uint8    { return t.NumBitsPerValue }

// Decode parses and entropy-decodes the JPEG 2000 codestream, then
// rescales each sample X_i as (R + X_i*2^E)*10^-D per the template's
// reference value, binary scale factor E, and decimal scale factor D.
func (t *Template5340) Decode(packedData []byte, bitmap []bool) ([]float64, error) {
	if len(packedData) < 2 {
		return nil, &UnsupportedTemplateError{Template: 40, Reason: "JPEG 2000 payload too short to contain an SOC marker"}
	}

	marker := uint16(packedData[0])<<8 | uint16(packedData[1])
	if marker != jpeg2000SOCMarker {
		return nil, fmt.Errorf("template 5.40: missing JPEG 2000 SOC marker, got 0x%04X", marker)
	}

	samples, width, height, err := decodeJPEG2000(packedData)
	if err != nil {
		return nil, err
	}
	if width*height != len(samples) {
		return nil, fmt.Errorf("template 5.40: decoded %d samples, expected %d (%dx%d)", len(samples), width*height, width, height)
	}

	binScale := math.Pow(2.0, float64(t.BinaryScaleFactor))
	decScale := math.Pow(10.0, -float64(t.DecimalScaleFactor))
	ref := float64(t.ReferenceValue)

	rescale := func(x int32) float64 {
		return (ref + float64(x)*binScale) * decScale
	}

	if bitmap == nil {
		values := make([]float64, len(samples))
		for i, x := range samples {
			values[i] = rescale(x)
		}
		return values, nil
	}

	if len(samples) > len(bitmap) {
		return nil, fmt.Errorf("template 5.40: decoded %d samples, more than %d bitmap entries", len(samples), len(bitmap))
	}
	values := make([]float64, len(bitmap))
	idx := 0
	for i, present := range bitmap {
		if present {
			values[i] = rescale(samples[idx])
			idx++
		} else {
			values[i] = math.NaN()
		}
	}
	return values, nil
}

func (t *Template5340) String() string {
	return fmt.Sprintf("Template 5.40: JPEG 2000, %d values, compression type=%d",
		t.NumberOfDataValues, t.TypeOfCompression)
}

// UnsupportedTemplateError indicates a recognized but unimplemented
// data representation template: its metadata decodes fine, but its
// payload cannot be unpacked.
type UnsupportedTemplateError struct {
	Template int
	Reason   string
}

func (e *UnsupportedTemplateError) Error() string {
	return fmt.Sprintf("data representation template 5.%d data unsupported: %s", e.Template, e.Reason)
}
