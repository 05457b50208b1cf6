package service

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateOptionalNonNegative(name string, value *float64) error {
	if value == nil {
		return nil
	}
	return validateNonNegativeFloat(name, *value)
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

// ParseDay reads YYYY-MM-DD as local midnight.
func ParseDay(value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// dateRange resolves the Date/FromDate/ToDate trio shared by list filters.
// ok is false when no bound was given.
func dateRange(date, from, to string) (time.Time, time.Time, bool, error) {
	date, from, to = strings.TrimSpace(date), strings.TrimSpace(from), strings.TrimSpace(to)
	if date != "" && (from != "" || to != "") {
		return time.Time{}, time.Time{}, false, fmt.Errorf("--date cannot be combined with --from or --to")
	}
	if date != "" {
		d, err := ParseDay(date)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
		return d, d, true, nil
	}
	if from == "" && to == "" {
		return time.Time{}, time.Time{}, false, nil
	}
	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.Local)
	var err error
	if from != "" {
		if start, err = ParseDay(from); err != nil {
			return time.Time{}, time.Time{}, false, err
		}
	}
	if to != "" {
		if end, err = ParseDay(to); err != nil {
			return time.Time{}, time.Time{}, false, err
		}
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, false, fmt.Errorf("from date must be <= to date")
	}
	return start, end, true, nil
}

func beginningOfDay(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
