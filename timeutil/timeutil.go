// Package timeutil parses the ISO-8601 timestamps used across the dataset
// and computes elapsed-time figures.
package timeutil

import (
	"time"

	"github.com/cockroachdb/errors"
)

// daysPerMonth is the average Gregorian month length (365.25 / 12). The
// months figure is a deliberately approximate conversion, not calendar-aware.
const daysPerMonth = 30.4375

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse accepts ISO-8601 timestamps with or without a trailing Z / offset,
// and bare dates. Naive timestamps are treated as UTC.
func Parse(s string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("invalid timestamp: %q", s)
}

// Diff is the elapsed time between two timestamps.
type Diff struct {
	Days       float64 `json:"days"`
	Months     float64 `json:"months"`
	IsNegative bool    `json:"is_negative"`
}

// Between computes the fractional days and approximate months from start to
// end. The result is negative when start is after end.
func Between(start, end time.Time) Diff {
	days := end.Sub(start).Seconds() / 86400
	return Diff{
		Days:       round2(days),
		Months:     round2(days / daysPerMonth),
		IsNegative: days < 0,
	}
}

func round2(v float64) float64 {
	if v < 0 {
		return float64(int64(v*100-0.5)) / 100
	}
	return float64(int64(v*100+0.5)) / 100
}
