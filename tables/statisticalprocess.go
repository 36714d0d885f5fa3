package tables

// WMO Code Table 4.10: Type of Statistical Processing
//
// Product Definition Templates 4.8/4.11/4.12 describe a field that is the
// result of a statistical process (average, accumulation, maximum, ...)
// applied over one or more time intervals; this table names that process.

var statisticalProcessEntries = []*Entry{
	{0, "Average", "Average", "", ""},
	{1, "Accumulation", "Accumulation", "", ""},
	{2, "Maximum", "Maximum", "", ""},
	{3, "Minimum", "Minimum", "", ""},
	{4, "Difference", "Difference (end minus beginning)", "", ""},
	{5, "RootMeanSquare", "Root mean square", "", ""},
	{6, "StandardDeviation", "Standard deviation", "", ""},
	{7, "Covariance", "Covariance", "", ""},
	{8, "Difference2", "Difference (beginning minus end)", "", ""},
	{9, "Ratio", "Ratio", "", ""},
	{10, "StandardizedAnomaly", "Standardized anomaly", "", ""},
	{11, "Summation", "Summation", "", ""},
	{100, "Severity", "Severity", "", ""},
	{101, "Mode", "Mode", "", ""},
}

var statisticalProcessRanges = []RangeEntry{
	{192, 254, "Local", "Reserved for local use"},
	{255, 255, "Missing", "Missing"},
}

// StatisticalProcessTable is WMO Code Table 4.10.
var StatisticalProcessTable = NewRangeTable(statisticalProcessEntries, statisticalProcessRanges, "Unknown statistical process")

// GetStatisticalProcessName returns the Table 4.10 name for a statistical
// process code.
func GetStatisticalProcessName(code int) string {
	return StatisticalProcessTable.Name(code)
}
