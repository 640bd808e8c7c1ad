package scalar

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// twoDigitYearPivot maps 2-digit years: below the pivot is 2000-based,
// at or above it is 1900-based.
const twoDigitYearPivot = 50

var (
	dmySlashRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dmyDashRe  = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	dmyShortRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})$`)
	isoRe      = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// genericLayouts are tried when no day-first pattern matches.
var genericLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate interprets a date token in the day-first conventions used by
// local bank exports (DD/MM/YYYY, DD-MM-YYYY, DD/MM/YY) plus ISO YYYY-MM-DD.
// Two-digit years pivot at 50. Relative vocabulary ("ayer", "anteayer")
// resolves against the current date. Anything unrecognized falls back to a
// generic calendar parse and finally to today; this parser never fails.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if s == "" {
		return today
	}

	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "anteayer"), strings.Contains(lower, "antes de ayer"):
		return today.AddDate(0, 0, -2)
	case strings.Contains(lower, "ayer"):
		return today.AddDate(0, 0, -1)
	case strings.Contains(lower, "hoy"):
		return today
	}

	if m := isoRe.FindStringSubmatch(s); m != nil {
		return civil(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := dmySlashRe.FindStringSubmatch(s); m != nil {
		return civil(atoi(m[3]), atoi(m[2]), atoi(m[1]))
	}
	if m := dmyDashRe.FindStringSubmatch(s); m != nil {
		return civil(atoi(m[3]), atoi(m[2]), atoi(m[1]))
	}
	if m := dmyShortRe.FindStringSubmatch(s); m != nil {
		return civil(ExpandYear(atoi(m[3])), atoi(m[2]), atoi(m[1]))
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}

	return today
}

// ExpandYear applies the fixed 2-digit year pivot.
func ExpandYear(y int) int {
	if y >= 100 {
		return y
	}
	if y < twoDigitYearPivot {
		return 2000 + y
	}
	return 1900 + y
}

func civil(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
