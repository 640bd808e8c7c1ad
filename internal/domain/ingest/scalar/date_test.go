package scalar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rvelazco/finparse/internal/domain/ingest/scalar"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func today() time.Time {
	now := time.Now()
	return day(now.Year(), now.Month(), now.Day())
}

func TestParseDateDayFirst(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"15/11/2025", day(2025, time.November, 15)},
		{"15-11-2025", day(2025, time.November, 15)},
		{"1/2/2024", day(2024, time.February, 1)},
		{"2025-11-15", day(2025, time.November, 15)},
		{"01/02/99", day(1999, time.February, 1)},
		{"01/02/10", day(2010, time.February, 1)},
		{"31/12/49", day(2049, time.December, 31)},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, scalar.ParseDate(tc.in))
		})
	}
}

func TestParseDateRelativeWords(t *testing.T) {
	ref := today()
	assert.Equal(t, ref, scalar.ParseDate("hoy"))
	assert.Equal(t, ref.AddDate(0, 0, -1), scalar.ParseDate("ayer"))
	assert.Equal(t, ref.AddDate(0, 0, -2), scalar.ParseDate("anteayer"))
}

func TestParseDateFallsBackToToday(t *testing.T) {
	ref := today()
	assert.Equal(t, ref, scalar.ParseDate(""))
	assert.Equal(t, ref, scalar.ParseDate("not a date at all"))
}

func TestExpandYear(t *testing.T) {
	assert.Equal(t, 2049, scalar.ExpandYear(49))
	assert.Equal(t, 1950, scalar.ExpandYear(50))
	assert.Equal(t, 1999, scalar.ExpandYear(99))
	assert.Equal(t, 2007, scalar.ExpandYear(7))
	assert.Equal(t, 2025, scalar.ExpandYear(2025))
}
