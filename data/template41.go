package data

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/mmp/squall/internal"
)

// Template5341 represents Data Representation Template 5.41: Grid point
// data - PNG format.
//
// Field values are packed into a single-channel PNG image (8 or 16 bits
// per sample), decoded with the standard library's image/png, then
// unpacked with the same reference/binary/decimal scaling formula as
// simple packing (Template 5.0).
type Template5341 struct {
	ReferenceValue     float32
	BinaryScaleFactor  int16
	DecimalScaleFactor int16
	NumBitsPerValue    uint8
	OriginalFieldType  uint8
	NumberOfDataValues uint32
}

// ParseTemplate5341 parses Data Representation Template 5.41.
//
// The template data should be 10 bytes, identical in layout to
// Template 5.0.
func ParseTemplate5341(numDataValues uint32, data []byte) (*Template5341, error) {
	if len(data) < 10 {
		return nil, fmt.Errorf("template 5.41 requires at least 10 bytes, got %d", len(data))
	}

	r := internal.NewReader(data)

	referenceValue, _ := r.Float32()
	binaryScaleFactor, _ := r.Int16()
	decimalScaleFactor, _ := r.Int16()
	bitsPerValue, _ := r.Uint8()
	originalFieldType, _ := r.Uint8()

	return &Template5341{
		ReferenceValue:     referenceValue,
		BinaryScaleFactor:  binaryScaleFactor,
		DecimalScaleFactor: decimalScaleFactor,
		NumBitsPerValue:    bitsPerValue,
		OriginalFieldType:  originalFieldType,
		NumberOfDataValues: numDataValues,
	}, nil
}

func (t *Template5341) TemplateNumber() int { return 41 }
func (t *Template5341) NumDataValues() uint32 { return t.NumberOfDataValues }
func (t *Template5341) BitsPerValue() uint8   { return t.NumBitsPerValue }

// Decode decodes the PNG-packed payload and applies the simple-packing
// scaling formula: value = (R + X * 2^E) / 10^D.
func (t *Template5341) Decode(packedData []byte, bitmap []bool) ([]float64, error) {
	img, err := png.Decode(bytes.NewReader(packedData))
	if err != nil {
		return nil, fmt.Errorf("template 5.41: failed to decode PNG payload: %w", err)
	}

	samples, err := extractGraySamples(img, int(t.NumberOfDataValues))
	if err != nil {
		return nil, fmt.Errorf("template 5.41: %w", err)
	}

	if bitmap != nil {
		return t.applyScalingWithBitmap(samples, bitmap)
	}
	return t.applyScalingWithoutBitmap(samples), nil
}

// extractGraySamples reads single-channel sample values out of a decoded
// image in row-major order, supporting both 8-bit and 16-bit grayscale.
func extractGraySamples(img image.Image, want int) ([]uint32, error) {
	bounds := img.Bounds()
	samples := make([]uint32, 0, want)

	switch gray := img.(type) {
	case *image.Gray:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				samples = append(samples, uint32(gray.GrayAt(x, y).Y))
			}
		}
	case *image.Gray16:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				samples = append(samples, uint32(gray.Gray16At(x, y).Y))
			}
		}
	default:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, _, _, _ := img.At(x, y).RGBA()
				samples = append(samples, r>>8)
			}
		}
	}

	if len(samples) < want {
		return nil, fmt.Errorf("PNG payload has %d samples, need %d", len(samples), want)
	}

	return samples[:want], nil
}

// applyScalingWithoutBitmap applies scaling when all values are valid.
func (t *Template5341) applyScalingWithoutBitmap(packedValues []uint32) []float64 {
	values := make([]float64, len(packedValues))
	for i, packed := range packedValues {
		values[i] = t.applyScaling(packed)
	}
	return values
}

// applyScalingWithBitmap applies scaling and bitmap.
func (t *Template5341) applyScalingWithBitmap(packedValues []uint32, bitmap []bool) ([]float64, error) {
	if len(packedValues) > len(bitmap) {
		return nil, fmt.Errorf("more packed values (%d) than bitmap entries (%d)",
			len(packedValues), len(bitmap))
	}

	values := make([]float64, len(bitmap))
	packedIdx := 0
	for i := range bitmap {
		if bitmap[i] {
			values[i] = t.applyScaling(packedValues[packedIdx])
			packedIdx++
		} else {
			values[i] = math.NaN()
		}
	}

	return values, nil
}

// applyScaling applies the scaling formula to a packed value.
//
// Formula: value = (R + X * 2^E) / 10^D
func (t *Template5341) applyScaling(packedValue uint32) float64 {
	value := float64(t.ReferenceValue)
	if packedValue != 0 {
		value += float64(packedValue) * math.Pow(2.0, float64(t.BinaryScaleFactor))
	}
	if t.DecimalScaleFactor != 0 {
		value /= math.Pow(10.0, float64(t.DecimalScaleFactor))
	}
	return value
}

func (t *Template5341) String() string {
	return fmt.Sprintf("Template 5.41: PNG, %d values, %d bits/value, R=%g, E=%d, D=%d",
		t.NumberOfDataValues, t.NumBitsPerValue, t.ReferenceValue,
		t.BinaryScaleFactor, t.DecimalScaleFactor)
}
