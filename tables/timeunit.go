package tables

// WMO Code Table 4.4: Indicator of Unit of Time Range
//
// This table defines the unit that a Product Definition Template's
// forecast time / time range fields are expressed in.

var timeUnitEntries = []*Entry{
	{0, "Minute", "Minute", "min", ""},
	{1, "Hour", "Hour", "h", ""},
	{2, "Day", "Day", "d", ""},
	{3, "Month", "Month", "mon", ""},
	{4, "Year", "Year", "yr", ""},
	{5, "Decade", "Decade (10 years)", "10yr", ""},
	{6, "Normal", "Normal (30 years)", "30yr", ""},
	{7, "Century", "Century (100 years)", "100yr", ""},
	{10, "3 Hours", "3 hours", "3h", ""},
	{11, "6 Hours", "6 hours", "6h", ""},
	{12, "12 Hours", "12 hours", "12h", ""},
	{13, "Second", "Second", "s", ""},
}

var timeUnitRanges = []RangeEntry{
	{192, 254, "Local", "Reserved for local use"},
	{255, 255, "Missing", "Missing"},
}

// TimeUnitTable is WMO Code Table 4.4.
var TimeUnitTable = NewRangeTable(timeUnitEntries, timeUnitRanges, "Unknown time unit")

// GetTimeUnitName returns the name for a time-range unit code.
func GetTimeUnitName(code int) string {
	return TimeUnitTable.Name(code)
}

// timeUnitSeconds maps a Table 4.4 code to its length in seconds, for
// codes with a fixed duration (calendar-relative units like Month/Year
// can't be converted without a reference date and return 0, ok=false).
var timeUnitSeconds = map[int]int64{
	0:  60,
	1:  3600,
	2:  86400,
	5:  315360000,
	6:  946080000,
	7:  3153600000,
	10: 10800,
	11: 21600,
	12: 43200,
	13: 1,
}

// TimeUnitSeconds returns the duration of one unit of the given Table 4.4
// code in seconds, and false for calendar-relative units (Month=3,
// Year=4) that have no fixed length.
func TimeUnitSeconds(code int) (int64, bool) {
	s, ok := timeUnitSeconds[code]
	return s, ok
}
