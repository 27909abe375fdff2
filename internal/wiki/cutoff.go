package wiki

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// durationRegex matches relative cutoffs like "24h", "7d", "2w", "1m".
var durationRegex = regexp.MustCompile(`^(\d+)([hdwm])$`)

// ParseSince parses a --since value relative to now. It accepts durations
// ("24h", "7d", "2w", "1m" for hours, days, weeks, months), ISO dates and
// anything dateparse understands, read as UTC.
func ParseSince(value string, now time.Time) (time.Time, error) {
	t, err := parseCutoff(value, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since value %q; use duration (24h, 7d, 2w) or date (2024-01-17)", value)
	}
	return t, nil
}

// ParseUntil is ParseSince for the upper bound. A bare date extends to the
// end of that day.
func ParseUntil(value string, now time.Time) (time.Time, error) {
	t, err := parseCutoff(value, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --until value %q; use duration (24h, 7d, 2w) or date (2024-01-17)", value)
	}
	if _, err := time.Parse(time.DateOnly, value); err == nil {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func parseCutoff(value string, now time.Time) (time.Time, error) {
	if m := durationRegex.FindStringSubmatch(value); m != nil {
		return subtract(m[1], m[2], now)
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return dateparse.ParseIn(value, time.UTC)
}

func subtract(numStr, unit string, now time.Time) (time.Time, error) {
	num, err := strconv.Atoi(numStr)
	if err != nil || num <= 0 {
		return time.Time{}, fmt.Errorf("invalid duration number: %s", numStr)
	}
	now = now.UTC()
	switch unit {
	case "h":
		return now.Add(-time.Duration(num) * time.Hour), nil
	case "d":
		return now.AddDate(0, 0, -num), nil
	case "w":
		return now.AddDate(0, 0, -num*7), nil
	default:
		return now.AddDate(0, -num, 0), nil
	}
}
