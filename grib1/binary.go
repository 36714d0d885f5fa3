package grib1

import (
	"fmt"
	"math"

	"github.com/mmp/squall/internal"
)

// parseBinaryDataSection parses GRIB1 Section 4 (BDS): the packed data
// values. Only simple packing (flag octet bits 6 and 7 clear) is implemented;
// the rarer complex/spherical-harmonic packing used by spectral models
// is out of scope, matching Template 5.3's complex-packing-only (no
// spherical harmonics) stance on the GRIB2 side.
//
// Decoding formula (WMO GRIB1 regulation 92.9.4):
//
//	value = (R + X * 2^E) / 10^D
//
// where R is the IBM-float reference value, E the binary scale factor,
// X the packed unsigned integer, and D the PDS decimal scale factor.
func parseBinaryDataSection(data []byte, bitmap []bool, decimalScaleFactor int16) ([]float64, error) {
	if len(data) < 11 {
		return nil, fmt.Errorf("BDS requires at least 11 bytes, got %d", len(data))
	}

	flags := data[3]
	if flags&0xC0 != 0 {
		return nil, fmt.Errorf("BDS: complex/spherical-harmonic packing not supported")
	}

	binaryScale := internal.ReadSignMagnitudeInt16(uint16(data[4])<<8 | uint16(data[5]))

	refValue, err := internal.ReadIBMFloat32(data[6:10])
	if err != nil {
		return nil, fmt.Errorf("BDS: %w", err)
	}

	bitsPerValue := int(data[10])

	count := 0
	if bitmap != nil {
		for _, present := range bitmap {
			if present {
				count++
			}
		}
	}

	packed := data[11:]

	var packedValues []uint64
	if bitsPerValue > 0 {
		br := internal.NewBitReader(packed)
		n := count
		if bitmap == nil {
			n = (len(packed) * 8) / bitsPerValue
		}
		packedValues = make([]uint64, n)
		for i := 0; i < n; i++ {
			val, err := br.ReadBits(bitsPerValue)
			if err != nil {
				return nil, fmt.Errorf("BDS: failed to read packed value %d: %w", i, err)
			}
			packedValues[i] = val
		}
	}

	binScale := math.Pow(2.0, float64(binaryScale))
	decimalScale := math.Pow(10.0, float64(decimalScaleFactor))

	applyScaling := func(x uint64) float64 {
		return (refValue + float64(x)*binScale) / decimalScale
	}

	if bitmap == nil {
		values := make([]float64, len(packedValues))
		for i, x := range packedValues {
			values[i] = applyScaling(x)
		}
		return values, nil
	}

	values := make([]float64, len(bitmap))
	idx := 0
	for i, present := range bitmap {
		if present {
			values[i] = applyScaling(packedValues[idx])
			idx++
		} else {
			values[i] = math.NaN()
		}
	}
	return values, nil
}
