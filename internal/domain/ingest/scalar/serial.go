package scalar

import "time"

// excelEpoch is the day-zero of the legacy spreadsheet serial calendar.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// leapBugCutoff is the last serial before the phantom 1900-02-29 that the
// original spreadsheet calendar counts. Serials past it carry an extra day
// that has to be removed.
const leapBugCutoff = 59

// FromExcelSerial converts a legacy spreadsheet day-serial into a calendar
// date. Serials greater than 59 are reduced by one day to compensate for the
// 1900 leap-year miscount baked into the format; serials at or below 59 are
// used as-is. The quirk is load-bearing: every spreadsheet written with the
// legacy convention depends on it.
func FromExcelSerial(serial int) time.Time {
	days := serial
	if serial > leapBugCutoff {
		days--
	}
	return excelEpoch.AddDate(0, 0, days)
}

// PlausibleSerial reports whether n sits in the range where a bare number in
// a spreadsheet cell is more likely a date serial than an amount. The window
// covers roughly 1982 through 2064.
func PlausibleSerial(n float64) bool {
	return n >= 30000 && n <= 60000
}
