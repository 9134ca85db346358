// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"fmt"
	"strings"
	"time"
)

// MinutesOfDay: minutes since midnight of t in loc (09:30 → 570).
func MinutesOfDay(t time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return lt.Hour()*60 + lt.Minute()
}

// FormatMinutes renders minutes since midnight as zero-padded "HH:MM".
// Values outside one day wrap around.
func FormatMinutes(m int) string {
	m %= 24 * 60
	if m < 0 {
		m += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
