package tables

import "fmt"

// WMO Code Table 4.1: Parameter Category by Product Discipline
//
// This table defines parameter categories within each discipline.
// The actual parameters are defined in Table 4.2, which is further subdivided
// by discipline and category.

// Discipline 0: Meteorological Products
var parameterCategoryMeteorologicalEntries = []*Entry{
	{0, "Temperature", "Temperature", "", ""},
	{1, "Moisture", "Moisture", "", ""},
	{2, "Momentum", "Momentum", "", ""},
	{3, "Mass", "Mass", "", ""},
	{4, "Short-wave Radiation", "Short-wave radiation", "", ""},
	{5, "Long-wave Radiation", "Long-wave radiation", "", ""},
	{6, "Cloud", "Cloud", "", ""},
	{7, "Thermodynamic Stability", "Thermodynamic stability indices", "", ""},
	{8, "Aerosols", "Aerosols", "", ""},
	{9, "Trace Gases", "Trace gases (e.g. ozone, CO2)", "", ""},
	{10, "Radar", "Radar", "", ""},
	{11, "Radar Imagery", "Radar imagery", "", ""},
	{12, "Electrodynamics", "Electrodynamics", "", ""},
	{13, "Nuclear/Radiology", "Nuclear/radiology", "", ""},
	{14, "Physical Atmospheric", "Physical atmospheric properties", "", ""},
	{15, "Atmospheric Chemical", "Atmospheric chemical constituents", "", ""},
	{16, "Forecast Radar Imagery", "Forecast radar imagery", "", ""},
	{17, "Electrodynamics", "Electrodynamics", "", ""},
	{18, "Signal Processing", "Signal processing", "", ""},
	{19, "Vegetation/Biomass", "Vegetation/biomass", "", ""},
	{20, "Atmospheric", "Atmospheric", "", ""},
	{190, "CCITT IA5 String", "CCITT IA5 string", "", ""},
	{191, "Miscellaneous", "Miscellaneous", "", ""},
}

// Discipline 1: Hydrological Products
var parameterCategoryHydrologicalEntries = []*Entry{
	{0, "Hydrology Basic", "Hydrology basic products", "", ""},
	{1, "Hydrology Probabilities", "Hydrology probabilities", "", ""},
	{2, "Inland Water", "Inland water and sediment properties", "", ""},
}

// Discipline 2: Land Surface Products
var parameterCategoryLandSurfaceEntries = []*Entry{
	{0, "Vegetation/Biomass", "Vegetation/biomass", "", ""},
	{1, "Agricultural", "Agricultural/aquacultural special products", "", ""},
	{2, "Transportation", "Transportation-related products", "", ""},
	{3, "Soil Products", "Soil products", "", ""},
	{4, "Fire Weather", "Fire weather products", "", ""},
	{5, "Glaciers and Ice Sheets", "Glaciers and inland ice", "", ""},
}

// Discipline 3: Space Products
var parameterCategorySpaceEntries = []*Entry{
	{0, "Image Format", "Image format products", "", ""},
	{1, "Quantitative", "Quantitative products", "", ""},
	{2, "Cloud Properties", "Cloud properties", "", ""},
	{3, "Flight Rules", "Flight rule conditions", "", ""},
	{4, "Volcanic Ash", "Volcanic ash", "", ""},
	{5, "Sea-surface Temperature", "Sea-surface temperature", "", ""},
	{6, "Solar Radiation", "Solar radiation", "", ""},
}

// Discipline 10: Oceanographic Products
var parameterCategoryOceanographicEntries = []*Entry{
	{0, "Waves", "Waves", "", ""},
	{1, "Currents", "Currents", "", ""},
	{2, "Ice", "Ice", "", ""},
	{3, "Surface Properties", "Surface properties", "", ""},
	{4, "Sub-surface Properties", "Sub-surface properties", "", ""},
	{191, "Miscellaneous", "Miscellaneous", "", ""},
}

// ParameterCategoryTable is a discipline-specific table for parameter categories.
var ParameterCategoryTable *DisciplineSpecificTable

func init() {
	ParameterCategoryTable = NewDisciplineSpecificTable("Unknown parameter category")

	// Add tables for each discipline
	ParameterCategoryTable.AddTable(0, NewSimpleTable(parameterCategoryMeteorologicalEntries, "Unknown category"))
	ParameterCategoryTable.AddTable(1, NewSimpleTable(parameterCategoryHydrologicalEntries, "Unknown category"))
	ParameterCategoryTable.AddTable(2, NewSimpleTable(parameterCategoryLandSurfaceEntries, "Unknown category"))
	ParameterCategoryTable.AddTable(3, NewSimpleTable(parameterCategorySpaceEntries, "Unknown category"))
	ParameterCategoryTable.AddTable(10, NewSimpleTable(parameterCategoryOceanographicEntries, "Unknown category"))
}

// GetParameterCategoryName returns the name for a parameter category code
// within a specific discipline.
func GetParameterCategoryName(discipline, category int) string {
	return ParameterCategoryTable.Name(discipline, category)
}

// GetParameterCategoryDescription returns the full description for a parameter
// category code within a specific discipline.
func GetParameterCategoryDescription(discipline, category int) string {
	return ParameterCategoryTable.Description(discipline, category)
}

// WMO Code Table 4.2: Parameter Number by Product Discipline and Parameter Category
//
// This table is extremely large and varies by both discipline and category.
// We implement only the most common parameters from Discipline 0 (Meteorological).
//
// Full implementation would require hundreds of entries across multiple tables.
// Abbreviations follow NCEP wgrib2's uppercase shortName convention, since
// Discipline 0/10 here is sourced from NCEP-produced GRIB2 (spec.md §8's
// scenario 5 key, e.g. "HGT", depends on this).

// Discipline 0, Category 0: Temperature parameters
var parameterTemperatureEntries = []*Entry{
	{0, "Temperature", "Temperature", "K", "TMP"},
	{1, "Virtual Temperature", "Virtual temperature", "K", "VTMP"},
	{2, "Potential Temperature", "Potential temperature", "K", "POT"},
	{3, "Pseudo-Adiabatic Potential Temperature", "Pseudo-adiabatic potential temperature", "K", "EPOT"},
	{4, "Maximum Temperature", "Maximum temperature", "K", "TMAX"},
	{5, "Minimum Temperature", "Minimum temperature", "K", "TMIN"},
	{6, "Dew Point Temperature", "Dew point temperature", "K", "DPT"},
	{7, "Dew Point Depression", "Dew point depression (or deficit)", "K", "DEPR"},
	{8, "Lapse Rate", "Lapse rate", "K/m", "LAPR"},
	{9, "Temperature Anomaly", "Temperature anomaly", "K", "TMPA"},
	{10, "Latent Heat", "Latent heat net flux", "W/m²", "LHTFL"},
	{11, "Sensible Heat", "Sensible heat net flux", "W/m²", "SHTFL"},
	{12, "Heat Index", "Heat index", "K", "HEATX"},
	{13, "Wind Chill", "Wind chill factor", "K", "WCF"},
	{14, "Minimum Dew Point", "Minimum dew point depression", "K", "MINDPD"},
	{15, "Virtual Potential Temperature", "Virtual potential temperature", "K", "VPTMP"},
	{16, "Snow Phase Change Heat Flux", "Snow phase change heat flux", "W/m²", "SNOHF"},
	{17, "Skin Temperature", "Skin temperature", "K", "SKINT"},
	{18, "Snow Temperature", "Snow temperature", "K", "SNOT"},
	{19, "Turbulent Transfer Coefficient", "Turbulent transfer coefficient for heat", "Numeric", "TTCHT"},
	{20, "Turbulent Diffusion Coefficient", "Turbulent diffusion coefficient for heat", "m²/s", "TDCHT"},
	{21, "Apparent Temperature", "Apparent temperature", "K", "APTMP"},
	{192, "Snow Phase Change Heat Flux", "Snow phase change heat flux", "W/m²", "SNOHF"},
}

// Discipline 0, Category 1: Moisture parameters
var parameterMoistureEntries = []*Entry{
	{0, "Specific Humidity", "Specific humidity", "kg/kg", "SPFH"},
	{1, "Relative Humidity", "Relative humidity", "%", "RH"},
	{2, "Humidity Mixing Ratio", "Humidity mixing ratio", "kg/kg", "MIXR"},
	{3, "Precipitable Water", "Precipitable water", "kg/m²", "PWAT"},
	{4, "Vapor Pressure", "Vapor pressure", "Pa", "VAPP"},
	{5, "Saturation Deficit", "Saturation deficit", "Pa", "SATD"},
	{6, "Evaporation", "Evaporation", "kg/m²", "EVP"},
	{7, "Precipitation Rate", "Precipitation rate", "kg/(m² s)", "PRATE"},
	{8, "Total Precipitation", "Total precipitation", "kg/m²", "APCP"},
	{9, "Large Scale Precipitation", "Large scale precipitation", "kg/m²", "NCPCP"},
	{10, "Convective Precipitation", "Convective precipitation", "kg/m²", "ACPCP"},
	{11, "Snow Depth", "Snow depth", "m", "SNOD"},
	{12, "Snowfall Rate Water Equivalent", "Snowfall rate water equivalent", "kg/(m² s)", "SRWEQ"},
	{13, "Water Equiv of Accumulated Snow", "Water equivalent of accumulated snow depth", "kg/m²", "WEASD"},
	{14, "Convective Snow", "Convective snow", "kg/m²", "SNOC"},
	{15, "Large Scale Snow", "Large scale snow", "kg/m²", "SNOL"},
	{16, "Snow Melt", "Snow melt", "kg/m²", "SNOM"},
	{17, "Snow Age", "Snow age", "day", "SNOAG"},
	{18, "Absolute Humidity", "Absolute humidity", "kg/m³", "ABSH"},
	{19, "Precipitation Type", "Precipitation type", "Code table 4.201", "PTYPE"},
	{20, "Integrated Liquid Water", "Integrated liquid water", "kg/m²", "ILIQW"},
	{21, "Condensate", "Condensate", "kg/kg", "TCOND"},
	{22, "Cloud Mixing Ratio", "Cloud mixing ratio", "kg/kg", "CLWMR"},
	{23, "Ice Water Mixing Ratio", "Ice water mixing ratio", "kg/kg", "ICMR"},
	{24, "Rain Mixing Ratio", "Rain mixing ratio", "kg/kg", "RWMR"},
	{25, "Snow Mixing Ratio", "Snow mixing ratio", "kg/kg", "SNMR"},
	{26, "Horizontal Moisture Convergence", "Horizontal moisture convergence", "kg/(kg s)", "MCONV"},
	{27, "Maximum Relative Humidity", "Maximum relative humidity", "%", "MAXRH"},
	{28, "Maximum Absolute Humidity", "Maximum absolute humidity", "kg/m³", "MAXAH"},
	{29, "Total Snowfall", "Total snowfall", "m", "ASNOW"},
	{32, "Graupel", "Graupel (precipitation-sized ice particles)", "kg/kg", "GRLE"},
	{82, "Cloud Ice Mixing Ratio", "Cloud ice mixing ratio", "kg/kg", "CIMIXR"},
}

// Discipline 0, Category 2: Momentum parameters
var parameterMomentumEntries = []*Entry{
	{0, "Wind Direction", "Wind direction (from which blowing)", "°", "WDIR"},
	{1, "Wind Speed", "Wind speed", "m/s", "WIND"},
	{2, "U-Component of Wind", "U-component of wind", "m/s", "UGRD"},
	{3, "V-Component of Wind", "V-component of wind", "m/s", "VGRD"},
	{4, "Stream Function", "Stream function", "m²/s", "STRM"},
	{5, "Velocity Potential", "Velocity potential", "m²/s", "VPOT"},
	{6, "Montgomery Stream Function", "Montgomery stream function", "m²/s²", "MNTSF"},
	{7, "Sigma Vertical Velocity", "Sigma coordinate vertical velocity", "1/s", "SGCVV"},
	{8, "Vertical Velocity (Pressure)", "Vertical velocity (pressure)", "Pa/s", "VVEL"},
	{9, "Vertical Velocity (Geometric)", "Vertical velocity (geometric)", "m/s", "DZDT"},
	{10, "Absolute Vorticity", "Absolute vorticity", "1/s", "ABSV"},
	{11, "Absolute Divergence", "Absolute divergence", "1/s", "ABSD"},
	{12, "Relative Vorticity", "Relative vorticity", "1/s", "RELV"},
	{13, "Relative Divergence", "Relative divergence", "1/s", "RELD"},
	{14, "Potential Vorticity", "Potential vorticity", "K m²/(kg s)", "PVORT"},
	{15, "Vertical U Shear", "Vertical u-component shear", "1/s", "VUCSH"},
	{16, "Vertical V Shear", "Vertical v-component shear", "1/s", "VVCSH"},
	{17, "Momentum Flux U", "Momentum flux, u-component", "N/m²", "UFLX"},
	{18, "Momentum Flux V", "Momentum flux, v-component", "N/m²", "VFLX"},
	{19, "Wind Mixing Energy", "Wind mixing energy", "J", "WMIXE"},
	{20, "Boundary Layer Dissipation", "Boundary layer dissipation", "W/m²", "BLYDP"},
	{21, "Maximum Wind Speed", "Maximum wind speed", "m/s", "MAXGUST"},
	{22, "Wind Gust", "Wind speed (gust)", "m/s", "GUST"},
	{23, "U-Component Gust", "U-component of wind (gust)", "m/s", "UGUST"},
	{24, "V-Component Gust", "V-component of wind (gust)", "m/s", "VGUST"},
}

// Discipline 0, Category 3: Mass parameters
var parameterMassEntries = []*Entry{
	{0, "Pressure", "Pressure", "Pa", "PRES"},
	{1, "Pressure Reduced to MSL", "Pressure reduced to MSL", "Pa", "PRMSL"},
	{2, "Pressure Tendency", "Pressure tendency", "Pa/s", "PTEND"},
	{3, "ICAO Standard Atmosphere", "ICAO standard atmosphere reference height", "m", "ICAHT"},
	{4, "Geopotential", "Geopotential", "m²/s²", "GP"},
	{5, "Geopotential Height", "Geopotential height", "gpm", "HGT"},
	{6, "Geometric Height", "Geometric height", "m", "DIST"},
	{7, "Standard Deviation Height", "Standard deviation of height", "m", "HSTDV"},
	{8, "Pressure Anomaly", "Pressure anomaly", "Pa", "PRESA"},
	{9, "Geopotential Height Anomaly", "Geopotential height anomaly", "gpm", "GPA"},
	{10, "Density", "Density", "kg/m³", "DEN"},
	{11, "Altimeter Setting", "Altimeter setting", "Pa", "ALTS"},
	{12, "Thickness", "Thickness", "m", "THICK"},
	{13, "Pressure Altitude", "Pressure altitude", "m", "PRESALT"},
	{14, "Density Altitude", "Density altitude", "m", "DENALT"},
	{15, "5-Wave Geopotential Height", "5-wave geopotential height", "gpm", "5WAVH"},
	{16, "Zonal Flux Gravity Wave Stress", "Zonal flux of gravity wave stress", "N/m²", "U-GWD"},
	{17, "Meridional Flux Gravity Wave Stress", "Meridional flux of gravity wave stress", "N/m²", "V-GWD"},
	{18, "Planetary Boundary Layer Height", "Planetary boundary layer height", "m", "HPBL"},
	{19, "5-Wave Geopotential Height Anomaly", "5-wave geopotential height anomaly", "gpm", "5WAVA"},
	{20, "Standard Deviation Pressure", "Standard deviation of pressure", "Pa", "PRESSTDV"},
}

// Discipline 0, Category 4: Short-wave radiation parameters
var parameterShortWaveRadiationEntries = []*Entry{
	{0, "Net Short-Wave Radiation Flux (Surface)", "Net short-wave radiation flux (surface)", "W/m²", "NSWRS"},
	{1, "Net Short-Wave Radiation Flux (Top)", "Net short-wave radiation flux (top of atmosphere)", "W/m²", "NSWRT"},
	{2, "Short-Wave Radiation Flux", "Short-wave radiation flux", "W/m²", "SWAVR"},
	{3, "Global Radiation Flux", "Global radiation flux", "W/m²", "GRAD"},
	{4, "Brightness Temperature", "Brightness temperature", "K", "BRTMP"},
	{7, "Downward Short-Wave Radiation Flux", "Downward short-wave radiation flux", "W/m²", "DSWRF"},
	{8, "Upward Short-Wave Radiation Flux", "Upward short-wave radiation flux", "W/m²", "USWRF"},
}

// Discipline 0, Category 5: Long-wave radiation parameters
var parameterLongWaveRadiationEntries = []*Entry{
	{0, "Net Long-Wave Radiation Flux (Surface)", "Net long-wave radiation flux (surface)", "W/m²", "NLWRS"},
	{1, "Net Long-Wave Radiation Flux (Top)", "Net long-wave radiation flux (top of atmosphere)", "W/m²", "NLWRT"},
	{2, "Long-Wave Radiation Flux", "Long-wave radiation flux", "W/m²", "LWAVR"},
	{3, "Downward Long-Wave Radiation Flux", "Downward long-wave radiation flux", "W/m²", "DLWRF"},
	{4, "Upward Long-Wave Radiation Flux", "Upward long-wave radiation flux", "W/m²", "ULWRF"},
}

// Discipline 0, Category 6: Cloud parameters
var parameterCloudEntries = []*Entry{
	{0, "Cloud Ice", "Cloud ice", "kg/m²", "CICE"},
	{1, "Total Cloud Cover", "Total cloud cover", "%", "TCDC"},
	{2, "Convective Cloud Cover", "Convective cloud cover", "%", "CDCON"},
	{3, "Low Cloud Cover", "Low cloud cover", "%", "LCDC"},
	{4, "Medium Cloud Cover", "Medium cloud cover", "%", "MCDC"},
	{5, "High Cloud Cover", "High cloud cover", "%", "HCDC"},
	{6, "Cloud Water", "Cloud water", "kg/m²", "CWAT"},
	{7, "Cloud Amount", "Cloud amount", "%", "CDCA"},
	{13, "Cloud Base", "Cloud base", "m", "CDBS"},
	{14, "Cloud Top", "Cloud top", "m", "CDTP"},
	{22, "Cloud Cover", "Cloud cover", "%", "CDLYR"},
}

// Discipline 10, Category 0: Oceanographic wave parameters
var parameterOceanWavesEntries = []*Entry{
	{0, "Wave Spectra (1)", "Wave spectra (1)", "Numeric", "WVSP1"},
	{3, "Significant Height Wind Waves and Swell", "Significant height of combined wind waves and swell", "m", "HTSGW"},
	{4, "Direction of Wind Waves", "Direction of wind waves", "°", "WVDIR"},
	{5, "Significant Height of Wind Waves", "Significant height of wind waves", "m", "WVHGT"},
	{6, "Mean Period of Wind Waves", "Mean period of wind waves", "s", "WVPER"},
	{7, "Direction of Swell Waves", "Direction of swell waves", "°", "SWDIR"},
	{8, "Significant Height of Swell Waves", "Significant height of swell waves", "m", "SWELL"},
	{9, "Mean Period of Swell Waves", "Mean period of swell waves", "s", "SWPER"},
	{10, "Primary Wave Direction", "Primary wave direction", "°", "DIRPW"},
	{11, "Primary Wave Mean Period", "Primary wave mean period", "s", "PERPW"},
	{12, "Peak Wave Period", "Peak wave period", "s", "PEAKPER"},
}

// Discipline 10, Category 1: Oceanographic current parameters
var parameterOceanCurrentsEntries = []*Entry{
	{0, "Current Direction", "Current direction", "°", "DIRC"},
	{1, "Current Speed", "Current speed", "m/s", "SPC"},
	{2, "U-Component of Current", "U-component of current", "m/s", "UOGRD"},
	{3, "V-Component of Current", "V-component of current", "m/s", "VOGRD"},
}

// Discipline 10, Category 2: Ice parameters
var parameterOceanIceEntries = []*Entry{
	{0, "Ice Cover", "Ice cover", "Proportion", "ICEC"},
	{1, "Ice Thickness", "Ice thickness", "m", "ICETK"},
	{2, "Direction of Ice Drift", "Direction of ice drift", "°", "DICED"},
	{3, "Speed of Ice Drift", "Speed of ice drift", "m/s", "SICED"},
	{4, "U-Component of Ice Drift", "U-component of ice drift", "m/s", "UICE"},
	{5, "V-Component of Ice Drift", "V-component of ice drift", "m/s", "VICE"},
	{6, "Ice Growth Rate", "Ice growth rate", "m/s", "ICEG"},
	{7, "Ice Divergence", "Ice divergence", "1/s", "ICED"},
}

// Discipline 10, Category 3: Surface properties
var parameterOceanSurfaceEntries = []*Entry{
	{0, "Water Temperature", "Water temperature", "K", "WTMP"},
	{1, "Deviation of Sea Level from Mean", "Deviation of sea level from mean", "m", "DSLM"},
}

// Discipline 10, Category 4: Sub-surface properties
var parameterOceanSubSurfaceEntries = []*Entry{
	{0, "Main Thermocline Depth", "Main thermocline depth", "m", "MTHD"},
	{1, "Main Thermocline Anomaly", "Main thermocline anomaly", "m", "MTHA"},
	{2, "Transient Thermocline Depth", "Transient thermocline depth", "m", "TTHDP"},
	{3, "Salinity", "Salinity", "kg/kg", "SALTY"},
}

// ParameterNumberTable is the global lookup table for GRIB2 parameter names.
// It maps discipline, category, and parameter numbers to human-readable names
// according to WMO GRIB2 Code Table 4.2. Table 4.2 is keyed by three values
// (discipline, category, parameter), one more than DisciplineSpecificTable's
// two-level (discipline, code) lookup natively supports, so category and
// parameter are packed into a single composite code (category*1000+parameter)
// rather than introducing a new table type for this one case.
var ParameterNumberTable *DisciplineSpecificTable

// parameterCategoryEntries maps discipline -> category -> entries, used to
// build ParameterNumberTable's composite-keyed per-discipline tables.
var parameterCategoryEntries = map[int]map[int][]*Entry{
	0: {
		0: parameterTemperatureEntries,
		1: parameterMoistureEntries,
		2: parameterMomentumEntries,
		3: parameterMassEntries,
		4: parameterShortWaveRadiationEntries,
		5: parameterLongWaveRadiationEntries,
		6: parameterCloudEntries,
	},
	10: {
		0: parameterOceanWavesEntries,
		1: parameterOceanCurrentsEntries,
		2: parameterOceanIceEntries,
		3: parameterOceanSurfaceEntries,
		4: parameterOceanSubSurfaceEntries,
	},
}

func parameterCompositeCode(category, parameter int) int {
	return category*1000 + parameter
}

func init() {
	ParameterNumberTable = NewDisciplineSpecificTable("Unknown parameter")

	for discipline, categories := range parameterCategoryEntries {
		var composite []*Entry
		for category, entries := range categories {
			for _, e := range entries {
				composite = append(composite, &Entry{
					Code:        parameterCompositeCode(category, e.Code),
					Name:        e.Name,
					Description: e.Description,
					Unit:        e.Unit,
					Abbrev:      e.Abbrev,
				})
			}
		}
		ParameterNumberTable.AddTable(discipline, NewSimpleTable(composite, "Unknown parameter"))
	}
}

// GetParameterName returns the name for a specific parameter according to
// WMO GRIB2 Code Table 4.2.
func GetParameterName(discipline, category, parameter int) string {
	if entry := ParameterNumberTable.Lookup(discipline, parameterCompositeCode(category, parameter)); entry != nil {
		return entry.Name
	}
	return fmt.Sprintf("Unknown parameter (%d.%d.%d)", discipline, category, parameter)
}

// GetParameterUnit returns the unit for a specific parameter according to
// WMO GRIB2 Code Table 4.2.
func GetParameterUnit(discipline, category, parameter int) string {
	if entry := ParameterNumberTable.Lookup(discipline, parameterCompositeCode(category, parameter)); entry != nil {
		return entry.Unit
	}
	return ""
}

// GetParameterAbbrev returns the short variable abbreviation for a specific
// parameter according to WMO GRIB2 Code Table 4.2, falling back to "unknown"
// when the table has no entry (spec.md §4.7's Missing sentinel).
func GetParameterAbbrev(discipline, category, parameter int) string {
	if entry := ParameterNumberTable.Lookup(discipline, parameterCompositeCode(category, parameter)); entry != nil && entry.Abbrev != "" {
		return entry.Abbrev
	}
	return "unknown"
}
