package tables

// WMO Code Table 4.3: Type of Generating Process
//
// This table classifies how a GRIB2 field was produced (analysis,
// forecast, ensemble member, probability forecast, and so on). Product
// Definition Templates 4.0/4.1/4.2/4.8/4.11/4.12 all carry this code in
// their "generating process" octet.

var generatingProcessEntries = []*Entry{
	{0, "Analysis", "Analysis", "", "analysis"},
	{1, "Initialization", "Initialization", "", "init"},
	{2, "Forecast", "Forecast", "", "forecast"},
	{3, "Bias Corrected Forecast", "Bias corrected forecast", "", "bcforecast"},
	{4, "Ensemble Forecast", "Ensemble forecast", "", "ensforecast"},
	{5, "Probability Forecast", "Probability forecast", "", "probforecast"},
	{6, "Forecast Error", "Forecast error", "", "fcsterr"},
	{7, "Analysis Error", "Analysis error", "", "analerr"},
	{8, "Observation", "Observation", "", "obs"},
	{9, "Climatological", "Climatological", "", "climo"},
	{10, "Probability-Weighted Forecast", "Probability-weighted forecast", "", "pwforecast"},
	{11, "Bias-Corrected Ensemble Forecast", "Bias-corrected ensemble forecast", "", "bcensforecast"},
	{12, "Post-Processed Analysis", "Post-processed analysis", "", "ppanalysis"},
	{13, "Post-Processed Forecast", "Post-processed forecast", "", "ppforecast"},
	{14, "Nowcast", "Nowcast", "", "nowcast"},
	{15, "Hindcast", "Hindcast", "", "hindcast"},
	{16, "Physical Retrieval", "Physical retrieval", "", "retrieval"},
	{17, "Regression Analysis", "Regression analysis", "", "regression"},
	{18, "Difference Statistically Post-Processed", "Difference between two forecasts", "", "diff"},
	{19, "Forecast Confidence Indicator", "Forecast confidence indicator", "", "conf"},
	{20, "Probability-Matched Mean", "Probability-matched mean", "", "pmmean"},
	{21, "Neighborhood Probability", "Neighborhood probability", "", "nbhdprob"},
	{22, "Bias-Corrected Downscaled Forecast", "Bias-corrected downscaled forecast", "", "bcdforecast"},
	{23, "Post-Processed Downscaled Analysis", "Post-processed downscaled analysis", "", "ppdanalysis"},
}

var generatingProcessRanges = []RangeEntry{
	{192, 254, "Local", "Reserved for local use"},
	{255, 255, "Missing", "Missing"},
}

// GeneratingProcessTable is WMO Code Table 4.3.
var GeneratingProcessTable = NewRangeTable(generatingProcessEntries, generatingProcessRanges, "Unknown generating process")

// GetGeneratingProcessName returns the name for a generating process code.
func GetGeneratingProcessName(code int) string {
	return GeneratingProcessTable.Name(code)
}

// GetGeneratingProcessAbbrev returns the short abbreviation used in a
// Message.Key() for a generating process code (e.g. "forecast",
// "analysis"), falling back to "unknown".
func GetGeneratingProcessAbbrev(code int) string {
	if e := GeneratingProcessTable.Lookup(code); e != nil && e.Abbrev != "" {
		return e.Abbrev
	}
	return "unknown"
}
