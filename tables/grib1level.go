package tables

// GRIB1 Table 3 (type of level) shares its numeric codes with GRIB2 Table
// 4.5 for the common surface types (both are WMO-standardized), so
// GetLevelName/GetLevelDescription are reused directly. Level *values*
// diverge: GRIB1 conventionally expresses an isobaric (code 100) level's
// value directly in hPa/mb, where GRIB2 Template 4.x expresses the same
// surface's value in Pa. This override supplies the GRIB1 convention;
// every other level type delegates to the shared Table 4.5 unit.
func GetGRIB1LevelUnit(code int) string {
	if code == 100 {
		return "mb"
	}
	return GetLevelUnit(code)
}
