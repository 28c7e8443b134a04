package heating

import (
	"fmt"
	"time"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/models"
)

// ResolveTarget returns the target temperature a schedule demands at the
// given instant. The night window is closed at night_start and open at
// night_end; a window with night_start > night_end wraps past midnight.
// Equal bounds mean there is no night window at all.
func ResolveTarget(s *models.RoomSchedule, now time.Time, loc *time.Location) (float64, error) {
	nightStart, err := models.ParseClock(s.NightStart)
	if err != nil {
		return 0, fmt.Errorf("schedule for room %s: %w", s.RoomID, err)
	}
	nightEnd, err := models.ParseClock(s.NightEnd)
	if err != nil {
		return 0, fmt.Errorf("schedule for room %s: %w", s.RoomID, err)
	}

	if inNightWindow(secondsOfDay(now.In(loc)), nightStart, nightEnd) {
		return s.TargetNight, nil
	}
	return s.TargetDay, nil
}

// secondsOfDay extracts the wall-clock component of t as seconds since midnight
func secondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

// inNightWindow tests membership of a wall-clock time in [start, end),
// wrapping past midnight when start > end.
func inNightWindow(clock, start, end int) bool {
	switch {
	case start == end:
		// Zero-length window: never night
		return false
	case start < end:
		return start <= clock && clock < end
	default:
		return clock >= start || clock < end
	}
}
