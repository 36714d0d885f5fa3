package grib1

import (
	"fmt"

	"github.com/mmp/squall/internal"
)

// parseBitmapSection parses GRIB1 Section 3 (BMS): a presence bitmap
// over the grid, one bit per point (1 = data present). Returns the
// expanded bitmap and the section's total length in bytes.
//
// A non-zero "number of unused bits at the end" in octet 4 and a
// predefined-bitmap table reference in octets 5-6 are both legal per
// the spec but unused by every producer in the retrieved corpus;
// a predefined-bitmap reference is reported as an error rather than
// silently treated as "no bitmap".
func parseBitmapSection(data []byte) (bitmap []bool, length int, err error) {
	if len(data) < 6 {
		return nil, 0, fmt.Errorf("BMS requires at least 6 bytes, got %d", len(data))
	}

	sectionLength := int(uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2]))
	if sectionLength > len(data) {
		return nil, 0, fmt.Errorf("BMS declared length %d exceeds available %d bytes", sectionLength, len(data))
	}

	tableRef := uint16(data[4])<<8 | uint16(data[5])
	if tableRef != 0 {
		return nil, 0, fmt.Errorf("BMS: predefined bitmap table reference %d not supported", tableRef)
	}

	bits := internal.BitArrayFromBytes(data[6:sectionLength])
	bitmap = make([]bool, len(bits))
	for i, b := range bits {
		bitmap[i] = b == 1
	}

	return bitmap, sectionLength, nil
}
