package analyzer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sanspareilsmyn/insightlens/internal/table"
)

const day = 24 * time.Hour

// ParsePeriod parses a trend period such as "7D", "30d" or "2W".
// Any other input is parsed as a Go duration ("12h", "90m").
// Zero is allowed; negative periods are rejected.
func ParsePeriod(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: period must not be empty", ErrInvalidPeriod)
	}

	unit := time.Duration(0)
	switch s[len(s)-1] {
	case 'D', 'd':
		unit = day
	case 'W', 'w':
		unit = 7 * day
	}

	var d time.Duration
	if unit != 0 {
		n, err := strconv.ParseInt(s[:len(s)-1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %w", ErrInvalidPeriod, s, err)
		}
		if n > math.MaxInt64/int64(unit) || n < math.MinInt64/int64(unit) {
			return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidPeriod, s)
		}
		d = time.Duration(n) * unit
	} else {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %w", ErrInvalidPeriod, s, err)
		}
		d = parsed
	}

	if d < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidPeriod, s)
	}
	return d, nil
}

// maxWindowDays is the largest day count representable as a time.Duration.
const maxWindowDays = int64(math.MaxInt64 / day)

// dayWindowStart returns the earliest timestamp inside a window of the given number of days.
// Windows longer than maxWindowDays have no lower bound and start at the zero time.
func dayWindowStart(now time.Time, days int) time.Time {
	if int64(days) > maxWindowDays {
		return time.Time{}
	}
	return now.Add(-time.Duration(days) * day)
}

// within reports whether the row's time column lies in [start, end].
// A zero end leaves the window open on the right.
// Rows whose time column is missing or unparseable are never inside a window.
func within(row table.Row, column string, start, end time.Time) bool {
	ts, ok := row.GetTime(column)
	if !ok {
		return false
	}
	if ts.Before(start) {
		return false
	}
	if !end.IsZero() && ts.After(end) {
		return false
	}
	return true
}

func validateWindow(size int) error {
	if size < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWindow, size)
	}
	return nil
}
