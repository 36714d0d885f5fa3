package grib1

import (
	"fmt"

	"github.com/mmp/squall/internal"
)

// ParseGridDescription parses GRIB1 Section 2 (GDS) for a latitude/
// longitude grid (data representation type 0 in Table 6). Other
// representation types (Gaussian, Lambert, etc.) are not implemented:
// GRIB1 archives in active use (ERA5, legacy NCEP reanalyses) are
// overwhelmingly lat/lon.
func ParseGridDescription(data []byte) (*GridDescription, error) {
	if len(data) < 32 {
		return nil, fmt.Errorf("GDS requires at least 32 bytes, got %d", len(data))
	}

	length := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
	dataRepType := data[5]

	if dataRepType != 0 {
		return nil, fmt.Errorf("grib1 GDS: data representation type %d (Table 6) not implemented, only 0 (lat/lon)", dataRepType)
	}

	ni := uint32(data[6])<<8 | uint32(data[7])
	nj := uint32(data[8])<<8 | uint32(data[9])

	la1 := float64(internal.AsSigned(uint64(data[10])<<16|uint64(data[11])<<8|uint64(data[12]), 24, true)) / 1000.0
	lo1 := float64(internal.AsSigned(uint64(data[13])<<16|uint64(data[14])<<8|uint64(data[15]), 24, true)) / 1000.0

	// Octet 17 holds the resolution/component flags; la2/lo2 follow.
	la2 := float64(internal.AsSigned(uint64(data[18])<<16|uint64(data[19])<<8|uint64(data[20]), 24, true)) / 1000.0
	lo2 := float64(internal.AsSigned(uint64(data[21])<<16|uint64(data[22])<<8|uint64(data[23]), 24, true)) / 1000.0

	di := float64(uint16(data[24])<<8|uint16(data[25])) / 1000.0
	dj := float64(uint16(data[26])<<8|uint16(data[27])) / 1000.0

	scanningMode := data[28]

	return &GridDescription{
		Length:                 length,
		DataRepresentationType: dataRepType,
		Ni:                     ni,
		Nj:                     nj,
		La1:                    la1,
		Lo1:                    lo1,
		La2:                    la2,
		Lo2:                    lo2,
		Di:                     di,
		Dj:                     dj,
		ScanningMode:           scanningMode,
	}, nil
}

// Coordinates returns the lat/lon grid's coordinates in scan order,
// honoring the GDS scanning-mode flags the same way GRIB2's LatLonGrid does.
func (g *GridDescription) Coordinates() ([]float64, []float64) {
	nPoints := int(g.Ni * g.Nj)
	lats := make([]float64, nPoints)
	lons := make([]float64, nPoints)

	iNegative := g.ScanningMode&0x80 != 0
	jPositive := g.ScanningMode&0x40 != 0

	idx := 0
	for j := uint32(0); j < g.Nj; j++ {
		lat := g.La1
		if jPositive {
			lat = g.La1 + float64(j)*g.Dj
		} else {
			lat = g.La1 - float64(j)*g.Dj
		}
		for i := uint32(0); i < g.Ni; i++ {
			lon := g.Lo1
			if iNegative {
				lon = g.Lo1 - float64(i)*g.Di
			} else {
				lon = g.Lo1 + float64(i)*g.Di
			}
			lats[idx] = lat
			lons[idx] = lon
			idx++
		}
	}

	return lats, lons
}
