package tables

// WMO Code Table 4.7: Derived Forecast
//
// Product Definition Templates 4.2 (Derived Forecast) and 4.12 (Derived
// Forecast on a Statistically Processed Interval) carry this code to say
// how an ensemble was collapsed into a single derived field.

var derivedForecastTypeEntries = []*Entry{
	{0, "UnweightedMean", "Unweighted mean of all members", "", ""},
	{1, "WeightedMean", "Weighted mean of all members", "", ""},
	{2, "StandardDeviation", "Standard deviation of all members", "", ""},
	{3, "NormalizedStandardDeviation", "Normalized standard deviation of all members", "", ""},
	{4, "Spread", "Spread of all members", "", ""},
	{5, "LargeAnomalyIndex", "Large anomaly index of all members", "", ""},
	{6, "UnweightedMeanOfCluster", "Unweighted mean of the cluster members", "", ""},
	{7, "InterquartileRange", "Interquartile range (25%-75%) of all members", "", ""},
	{8, "Minimum", "Minimum of all members", "", ""},
	{9, "Maximum", "Maximum of all members", "", ""},
}

var derivedForecastTypeRanges = []RangeEntry{
	{192, 254, "Local", "Reserved for local use"},
	{255, 255, "Missing", "Missing"},
}

// DerivedForecastTypeTable is WMO Code Table 4.7.
var DerivedForecastTypeTable = NewRangeTable(derivedForecastTypeEntries, derivedForecastTypeRanges, "Unknown derived forecast type")

// GetDerivedForecastTypeName returns the Table 4.7 name for a derived
// forecast type code, e.g. 0 -> "UnweightedMean" (spec.md §8 scenario 5's
// metadata.derived_forecast_type value).
func GetDerivedForecastTypeName(code int) string {
	return DerivedForecastTypeTable.Name(code)
}
