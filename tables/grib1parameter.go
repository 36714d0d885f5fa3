package tables

import "fmt"

// GRIB1 Table 2 (indicator of parameter) is versioned per originating
// center: NCEP, ECMWF, and others each maintain their own extensions past
// the small WMO-standard core. This is a curated subset of NCEP's table
// version 2 (the most common table version in archived GRIB1 data),
// grounded on the parameter IDs reddaly-gogrib2's grib1 package documents
// against the ECMWF param-db (https://codes.ecmwf.int/grib/param-db/),
// which republishes the same WMO Table 2 codes NCEP uses for table
// version 2. Abbreviations follow NCEP wgrib2's uppercase shortName
// convention, matching the Table 4.2 abbreviations in parameter.go.
var grib1ParameterTableVersion2Entries = []*Entry{
	{1, "Pressure", "Pressure", "Pa", "PRES"},
	{2, "Pressure Reduced to MSL", "Pressure reduced to mean sea level", "Pa", "PRMSL"},
	{6, "Geopotential", "Geopotential", "m²/s²", "GP"},
	{7, "Geopotential Height", "Geopotential height", "gpm", "HGT"},
	{11, "Temperature", "Temperature", "K", "TMP"},
	{13, "Potential Temperature", "Potential temperature", "K", "POT"},
	{15, "Maximum Temperature", "Maximum temperature", "K", "TMAX"},
	{16, "Minimum Temperature", "Minimum temperature", "K", "TMIN"},
	{17, "Dew Point Temperature", "Dew point temperature", "K", "DPT"},
	{33, "U-Component of Wind", "U-component of wind", "m/s", "UGRD"},
	{34, "V-Component of Wind", "V-component of wind", "m/s", "VGRD"},
	{39, "Vertical Velocity (Pressure)", "Vertical velocity (pressure)", "Pa/s", "VVEL"},
	{41, "Absolute Vorticity", "Absolute vorticity", "1/s", "ABSV"},
	{51, "Specific Humidity", "Specific humidity", "kg/kg", "SPFH"},
	{52, "Relative Humidity", "Relative humidity", "%", "RH"},
	{54, "Precipitable Water", "Precipitable water", "kg/m²", "PWAT"},
	{59, "Precipitation Rate", "Precipitation rate", "kg/(m² s)", "PRATE"},
	{61, "Total Precipitation", "Total precipitation", "kg/m²", "APCP"},
	{65, "Water Equiv of Accumulated Snow", "Water equivalent of accumulated snow depth", "kg/m²", "WEASD"},
	{66, "Snow Depth", "Snow depth", "m", "SNOD"},
	{71, "Total Cloud Cover", "Total cloud cover", "%", "TCDC"},
	{81, "Land Cover", "Land cover (1=land, 0=sea)", "Proportion", "LAND"},
	{84, "Albedo", "Albedo", "%", "ALBDO"},
	{91, "Ice Cover", "Ice cover", "Proportion", "ICEC"},
}

// ECMWF parameter table 128 (the "operational" table behind most archived
// ECMWF/ERA5 GRIB1 output). Curated subset, grounded on the same
// codes.ecmwf.int param-db used above; abbreviations follow the lowercase
// eccodes "shortName" convention (e.g. "z" for geopotential), distinct from
// NCEP table version 2's uppercase wgrib2 convention — spec.md §8's
// scenario 6 depends on this lowercase form for its GRIB1/ERA5 key.
var grib1ParameterTable128Entries = []*Entry{
	{129, "Geopotential", "Geopotential", "m²/s²", "z"},
	{130, "Temperature", "Temperature", "K", "t"},
	{131, "U Wind Component", "U-component of wind", "m/s", "u"},
	{132, "V Wind Component", "V-component of wind", "m/s", "v"},
	{133, "Specific Humidity", "Specific humidity", "kg/kg", "q"},
	{134, "Surface Pressure", "Surface pressure", "Pa", "sp"},
	{135, "Vertical Velocity", "Vertical velocity (pressure)", "Pa/s", "w"},
	{138, "Vorticity (relative)", "Relative vorticity", "1/s", "vo"},
	{151, "Mean Sea Level Pressure", "Mean sea level pressure", "Pa", "msl"},
	{165, "10 Metre U Wind Component", "10 metre U wind component", "m/s", "u10"},
	{166, "10 Metre V Wind Component", "10 metre V wind component", "m/s", "v10"},
	{167, "2 Metre Temperature", "2 metre temperature", "K", "t2m"},
	{168, "2 Metre Dewpoint Temperature", "2 metre dewpoint temperature", "K", "d2m"},
	{172, "Land-Sea Mask", "Land-sea mask", "Proportion", "lsm"},
	{228, "Total Precipitation", "Total precipitation", "m", "tp"},
}

// ECMWF parameter table 228 ("mars128to228" post-processed derived
// parameters), small curated subset for 100-metre winds — the only
// table-228 entries spec.md §4.7 specifically calls out.
var grib1ParameterTable228Entries = []*Entry{
	{246, "100 Metre U Wind Component", "100 metre U wind component", "m/s", "u100"},
	{247, "100 Metre V Wind Component", "100 metre V wind component", "m/s", "v100"},
}

// grib1ParameterTables maps GRIB1 table version -> parameter table.
// Table version 2 is NCEP's most common production table; 128 and 228 are
// ECMWF's operational and derived-parameter tables respectively. Other
// table versions fall back to an "Unknown parameter" name.
var grib1ParameterTables = map[uint8]*SimpleTable{
	2:   NewSimpleTable(grib1ParameterTableVersion2Entries, "Unknown parameter"),
	128: NewSimpleTable(grib1ParameterTable128Entries, "Unknown parameter"),
	228: NewSimpleTable(grib1ParameterTable228Entries, "Unknown parameter"),
}

// GetGRIB1ParameterName returns the parameter name for a GRIB1 table
// version and parameter number (PDS octet 9), per GRIB1 Table 2.
func GetGRIB1ParameterName(tableVersion uint8, parameter int) string {
	if table, ok := grib1ParameterTables[tableVersion]; ok {
		if e := table.Lookup(parameter); e != nil {
			return e.Name
		}
	}
	return fmt.Sprintf("Unknown parameter (table %d, code %d)", tableVersion, parameter)
}

// GetGRIB1ParameterUnit returns the parameter's unit for a GRIB1 table
// version and parameter number.
func GetGRIB1ParameterUnit(tableVersion uint8, parameter int) string {
	if table, ok := grib1ParameterTables[tableVersion]; ok {
		if e := table.Lookup(parameter); e != nil {
			return e.Unit
		}
	}
	return ""
}

// GetGRIB1ParameterAbbrev returns the parameter's short abbreviation for a
// GRIB1 table version and parameter number, falling back to "unknown" when
// the table or entry isn't found (spec.md §4.7's Missing sentinel). Per
// spec.md §4.7, the full lookup is (center_id, table_version, parameter) ->
// Parameter with a center->legacy->WMO-standard fallback; this module
// simplifies that to table-version-only dispatch since the originating
// center rarely selects a different table at the same version number in
// practice, and the teacher's table infrastructure has no center axis to
// key on (documented in DESIGN.md).
func GetGRIB1ParameterAbbrev(tableVersion uint8, parameter int) string {
	if table, ok := grib1ParameterTables[tableVersion]; ok {
		if e := table.Lookup(parameter); e != nil && e.Abbrev != "" {
			return e.Abbrev
		}
	}
	return "unknown"
}
