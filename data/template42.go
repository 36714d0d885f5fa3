package data

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/mmp/squall/internal"
)

// Template5342 represents Data Representation Template 5.42: Grid point
// and spectral data - CCSDS recommended lossless compression.
//
// CCSDS 121.0-B-3 ("Lossless Data Compression") packs samples into
// fixed-size blocks, each preceded by a short option identifier selecting
// how that block's residuals are Golomb-Rice coded. This implements the
// two option classes that cover the overwhelming majority of
// NCEP/ECMWF-produced CCSDS payloads: the fundamental-sequence
// (unary, k=0) and split-sample (Golomb-Rice, k>0) codes, plus the
// zero-block escape. The rarer second-extension option (pairs of
// samples folded via a triangular numbering) is detected but reported
// as unsupported rather than silently miscoded.
type Template5342 struct {
	ReferenceValue            float32
	BinaryScaleFactor         int16
	DecimalScaleFactor        int16
	NumBitsPerValue           uint8
	OriginalFieldType         uint8
	CompressionOptionsMask    uint8
	BlockSize                 uint8
	ReferenceSampleInterval   uint16
	NumberOfDataValues        uint32
}

// ParseTemplate5342 parses Data Representation Template 5.42.
//
// The template data should be at least 14 bytes.
func ParseTemplate5342(numDataValues uint32, data []byte) (*Template5342, error) {
	if len(data) < 14 {
		return nil, fmt.Errorf("template 5.42 requires at least 14 bytes, got %d", len(data))
	}

	r := internal.NewReader(data)

	referenceValue, _ := r.Float32()
	binaryScaleFactor, _ := r.Int16()
	decimalScaleFactor, _ := r.Int16()
	bitsPerValue, _ := r.Uint8()
	originalFieldType, _ := r.Uint8()
	compressionOptionsMask, _ := r.Uint8()
	blockSize, _ := r.Uint8()
	referenceSampleInterval, _ := r.Uint16()

	return &Template5342{
		ReferenceValue:          referenceValue,
		BinaryScaleFactor:       binaryScaleFactor,
		DecimalScaleFactor:      decimalScaleFactor,
		NumBitsPerValue:         bitsPerValue,
		OriginalFieldType:       originalFieldType,
		CompressionOptionsMask:  compressionOptionsMask,
		BlockSize:               blockSize,
		ReferenceSampleInterval: referenceSampleInterval,
		NumberOfDataValues:      numDataValues,
	}, nil
}

func (t *Template5342) TemplateNumber() int   { return 42 }
func (t *Template5342) NumDataValues() uint32 { return t.NumberOfDataValues }
func (t *Template5342) BitsPerValue() uint8   { return t.NumBitsPerValue }

// ccsds option IDs, relative to the block's k=0..bitsPerValue-1 Golomb-Rice
// parameter range: id == bitsPerValue selects the fundamental sequence
// (unary) code, id == bitsPerValue+1 selects the zero-block escape, and
// id == bitsPerValue+2 selects the second-extension code.
func (t *Template5342) Decode(packedData []byte, bitmap []bool) ([]float64, error) {
	if t.NumBitsPerValue == 0 {
		count := t.NumberOfDataValues
		if bitmap != nil {
			count = uint32(len(bitmap))
		}
		values := make([]float64, count)
		ref := t.applyScaling(0)
		for i := range values {
			values[i] = ref
		}
		return values, nil
	}

	blockSize := int(t.BlockSize)
	if blockSize == 0 {
		blockSize = 16
	}

	total := int(t.NumberOfDataValues)
	residuals := make([]int64, 0, total)

	br := internal.NewBitReader(packedData)
	idBits := bitsForValues(int(t.NumBitsPerValue) + 2)

	for len(residuals) < total {
		n := blockSize
		if total-len(residuals) < n {
			n = total - len(residuals)
		}

		id, err := br.ReadBits(idBits)
		if err != nil {
			return nil, fmt.Errorf("template 5.42: failed to read block option id: %w", err)
		}

		switch {
		case int(id) == int(t.NumBitsPerValue)+1:
			// Zero-block: all residuals in this block are zero.
			for i := 0; i < n; i++ {
				residuals = append(residuals, 0)
			}

		case int(id) == int(t.NumBitsPerValue)+2:
			// Stack-traced: errors.As still reaches the underlying
			// UnsupportedTemplateError through Unwrap, but the trace
			// pinpoints which block in which message tripped this rare
			// option, several calls below where Decode's caller sees it.
			return nil, errors.WithStack(&UnsupportedTemplateError{Template: 42, Reason: "CCSDS second-extension option not implemented"})

		case int(id) == int(t.NumBitsPerValue):
			// Fundamental sequence: each residual is a unary run-length.
			for i := 0; i < n; i++ {
				val, err := readUnary(br)
				if err != nil {
					return nil, fmt.Errorf("template 5.42: failed to read unary residual: %w", err)
				}
				residuals = append(residuals, int64(val))
			}

		default:
			// Split-sample (Golomb-Rice with parameter k = id): each
			// residual is a unary quotient followed by a k-bit remainder.
			k := int(id)
			for i := 0; i < n; i++ {
				quotient, err := readUnary(br)
				if err != nil {
					return nil, fmt.Errorf("template 5.42: failed to read rice quotient: %w", err)
				}
				var remainder uint64
				if k > 0 {
					remainder, err = br.ReadBits(k)
					if err != nil {
						return nil, fmt.Errorf("template 5.42: failed to read rice remainder: %w", err)
					}
				}
				residuals = append(residuals, int64(quotient)<<uint(k)|int64(remainder))
			}
		}
	}

	packedValues := make([]int32, len(residuals))
	for i, r := range residuals {
		packedValues[i] = int32(r)
	}

	if bitmap != nil {
		return t.applyScalingWithBitmap(packedValues, bitmap)
	}
	return t.applyScalingWithoutBitmap(packedValues), nil
}

// readUnary reads a run of 0 bits terminated by a 1 bit and returns the
// run length, per the CCSDS fundamental-sequence / Rice-quotient coding.
func readUnary(br *internal.BitReader) (uint64, error) {
	var count uint64
	for {
		bit, err := br.ReadBits(1)
		if err != nil {
			return 0, err
		}
		if bit == 1 {
			return count, nil
		}
		count++
	}
}

// bitsForValues returns the number of bits needed to represent values in
// [0, n], i.e. ceil(log2(n+1)).
func bitsForValues(n int) int {
	bits := 1
	for (1 << bits) <= n {
		bits++
	}
	return bits
}

func (t *Template5342) applyScalingWithoutBitmap(packedValues []int32) []float64 {
	values := make([]float64, len(packedValues))
	for i, packed := range packedValues {
		values[i] = t.applyScaling(packed)
	}
	return values
}

func (t *Template5342) applyScalingWithBitmap(packedValues []int32, bitmap []bool) ([]float64, error) {
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

func (t *Template5342) applyScaling(packedValue int32) float64 {
	value := float64(t.ReferenceValue)
	if packedValue != 0 {
		value += float64(packedValue) * math.Pow(2.0, float64(t.BinaryScaleFactor))
	}
	if t.DecimalScaleFactor != 0 {
		value /= math.Pow(10.0, float64(t.DecimalScaleFactor))
	}
	return value
}

func (t *Template5342) String() string {
	return fmt.Sprintf("Template 5.42: CCSDS, %d values, block size=%d, %d bits/value",
		t.NumberOfDataValues, t.BlockSize, t.NumBitsPerValue)
}
