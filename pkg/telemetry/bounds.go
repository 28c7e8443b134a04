package telemetry

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// RangeBounds is a resolved half-open query window: start <= ts < end.
type RangeBounds struct {
	Start time.Time
	End   time.Time
}

// ParseRangeBounds resolves start/end expressions against now. Each bound
// accepts a relative duration anchored at now ("-24h", "-30m", "-7d") or an
// absolute instant (RFC3339 or any common timestamp format). An empty or
// "now" end defaults to now; an empty start defaults to 24 hours before end.
func ParseRangeBounds(start, end string, now time.Time) (RangeBounds, error) {
	var bounds RangeBounds

	switch end {
	case "", "now":
		bounds.End = now
	default:
		t, err := parseBound(end, now)
		if err != nil {
			return bounds, fmt.Errorf("invalid end time %q: %w", end, err)
		}
		bounds.End = t
	}

	if start == "" {
		bounds.Start = bounds.End.Add(-24 * time.Hour)
	} else {
		t, err := parseBound(start, now)
		if err != nil {
			return bounds, fmt.Errorf("invalid start time %q: %w", start, err)
		}
		bounds.Start = t
	}

	if bounds.End.Before(bounds.Start) {
		return bounds, fmt.Errorf("end time %s is before start time %s", bounds.End, bounds.Start)
	}

	return bounds, nil
}

// parseBound resolves a single bound expression
func parseBound(expr string, now time.Time) (time.Time, error) {
	if strings.HasPrefix(expr, "-") {
		d, err := parseRelativeDuration(expr[1:])
		if err != nil {
			return time.Time{}, err
		}
		return now.Add(-d), nil
	}

	t, err := dateparse.ParseAny(expr)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// parseRelativeDuration parses durations like "24h", "30m" and the
// day-suffixed form "7d" that time.ParseDuration does not know.
func parseRelativeDuration(expr string) (time.Duration, error) {
	if strings.HasSuffix(expr, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(expr, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q", expr)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(expr)
}
