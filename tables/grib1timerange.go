package tables

// GRIB1 Table 5: Indicator of Type of Time Range
//
// GRIB1 has no equivalent of GRIB2 Table 4.3 (type of generating
// process): its PDS time-range indicator octet instead says how P1/P2
// combine to locate the field's valid time, which doubles as the closest
// GRIB1 analogue of "how was this field produced" for Message.Key()'s
// gen_proc_abbrev component (spec.md §8 scenario 6's "forecast" suffix).
var grib1TimeRangeEntries = []*Entry{
	{0, "Forecast", "Uninitialized analysis or forecast product valid for reference time + P1", "", "forecast"},
	{1, "Initialized Analysis", "Initialized analysis product for reference time (P1=0)", "", "analysis"},
	{2, "Valid Between", "Product valid for the time between reference time + P1 and reference time + P2", "", "between"},
	{3, "Average", "Average (reference time + P1 to reference time + P2)", "", "avg"},
	{4, "Accumulation", "Accumulation (reference time + P1 to reference time + P2)", "", "accum"},
	{5, "Difference", "Difference (reference time + P2 minus reference time + P1)", "", "diff"},
	{6, "Average (Past)", "Average (reference time - P1 to reference time - P2)", "", "avg"},
	{7, "Average (Past/Future)", "Average (reference time - P1 to reference time + P2)", "", "avg"},
	{10, "Forecast (Extended)", "Product valid at reference time + P1 (P1 occupies octets 19-20)", "", "forecast"},
	{51, "Climatological Mean", "Climatological mean value", "", "climo"},
	{113, "Average N Forecasts", "Average of N forecasts with the same reference time", "", "avg"},
	{114, "Accumulation N Forecasts", "Accumulation of N forecasts with the same reference time", "", "accum"},
	{115, "Average N Forecasts (Successive)", "Average of N forecasts, each 24 hours apart", "", "avg"},
	{116, "Accumulation N Forecasts (Successive)", "Accumulation of N forecasts, each 24 hours apart", "", "accum"},
	{117, "Average N Forecasts (12h)", "Average of N forecasts, the reference times 12 hours apart", "", "avg"},
	{118, "Temporal Variance", "Temporal variance/covariance of N initialized analyses", "", "var"},
	{119, "Standard Deviation", "Standard deviation of N forecasts from the same reference time", "", "stddev"},
	{123, "Average N Analyses", "Average of N uninitialized analyses, each 24 hours apart", "", "avg"},
	{124, "Accumulation N Analyses", "Accumulation of N uninitialized analyses, each 24 hours apart", "", "accum"},
}

var grib1TimeRangeRanges = []RangeEntry{
	{255, 255, "Missing", "Missing"},
}

// GRIB1TimeRangeTable is GRIB1 Table 5.
var GRIB1TimeRangeTable = NewRangeTable(grib1TimeRangeEntries, grib1TimeRangeRanges, "Unknown time range indicator")

// GetGRIB1TimeRangeName returns the Table 5 name for a time range
// indicator code.
func GetGRIB1TimeRangeName(code int) string {
	return GRIB1TimeRangeTable.Name(code)
}

// GetGRIB1TimeRangeAbbrev returns the Message.Key() abbreviation for a
// GRIB1 time range indicator code, falling back to "unknown".
func GetGRIB1TimeRangeAbbrev(code int) string {
	if e := GRIB1TimeRangeTable.Lookup(code); e != nil && e.Abbrev != "" {
		return e.Abbrev
	}
	return "unknown"
}
