package service

import (
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// timeRange is a half-open [start, end) window in minutes from midnight.
type timeRange struct {
	start int
	end   int
}

// overlaps reports whether two half-open windows intersect. Touching
// boundaries (one ending exactly when the other starts) do not overlap.
func (r timeRange) overlaps(other timeRange) bool {
	return r.start < other.end && r.end > other.start
}

// parseClock converts "HH:MM" to minutes from midnight.
func parseClock(value string) (int, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return 0, fmt.Errorf("parse time %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// formatClock converts minutes from midnight back to "HH:MM".
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// parseServiceDate parses a "YYYY-MM-DD" date in the given location.
func parseServiceDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

// parseRange converts a "HH:MM"/"HH:MM" pair into a window, rejecting
// inverted or empty ones.
func parseRange(start, end string) (timeRange, error) {
	s, err := parseClock(start)
	if err != nil {
		return timeRange{}, err
	}
	e, err := parseClock(end)
	if err != nil {
		return timeRange{}, err
	}
	if e <= s {
		return timeRange{}, ErrInvalidTimeRange
	}
	return timeRange{start: s, end: e}, nil
}
