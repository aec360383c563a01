package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidPeriod indicates a malformed or out-of-range month token.
var ErrInvalidPeriod = errors.New("invalid period")

// Period is a half-open calendar month range [Start, End). A record
// belongs to the period iff Start <= date < End.
type Period struct {
	Start time.Time
	End   time.Time
}

// ResolvePeriod maps a "YYYY-MM" token to its month range. December
// rolls the year forward: "2024-12" -> [2024-12-01, 2025-01-01).
func ResolvePeriod(month string) (Period, error) {
	parts := strings.Split(month, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return Period{}, fmt.Errorf("%w: %q (want YYYY-MM)", ErrInvalidPeriod, month)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, month)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, month)
	}
	if m < 1 || m > 12 {
		return Period{}, fmt.Errorf("%w: month %d out of range", ErrInvalidPeriod, m)
	}

	start := time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, 0)}, nil
}

// Contains reports whether d falls inside the period.
func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.Start) && d.Before(p.End)
}

// Token renders the period back to its "YYYY-MM" form.
func (p Period) Token() string {
	return p.Start.Format("2006-01")
}
