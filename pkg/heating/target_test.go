package heating

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/models"
)

func TestResolveTargetDefaultSchedule(t *testing.T) {
	schedule := models.DefaultSchedule(uuid.New(), uuid.New())
	loc, err := schedule.Location()
	if err != nil {
		t.Fatalf("Failed to load schedule timezone: %v", err)
	}

	tests := []struct {
		name     string
		hour     int
		minute   int
		expected float64
	}{
		{"midday is day", 12, 0, 21.0},
		{"late evening is night", 23, 30, 18.0},
		{"after midnight is night", 3, 0, 18.0},
		{"early morning is day again", 7, 0, 21.0},
		{"night start boundary is night", 22, 0, 18.0},
		{"night end boundary is day", 6, 0, 21.0},
		{"just before night start is day", 21, 59, 21.0},
		{"just before night end is night", 5, 59, 18.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Date(2024, 3, 15, tt.hour, tt.minute, 0, 0, loc)
			target, err := ResolveTarget(&schedule, now, loc)
			if err != nil {
				t.Fatalf("ResolveTarget failed: %v", err)
			}
			if target != tt.expected {
				t.Errorf("At %02d:%02d expected target %.1f, got %.1f", tt.hour, tt.minute, tt.expected, target)
			}
		})
	}
}

func TestResolveTargetNonWrappingWindow(t *testing.T) {
	schedule := models.DefaultSchedule(uuid.New(), uuid.New())
	schedule.NightStart = "13:00:00"
	schedule.NightEnd = "15:00:00"
	loc, _ := schedule.Location()

	tests := []struct {
		hour     int
		expected float64
	}{
		{12, 21.0},
		{13, 18.0},
		{14, 18.0},
		{15, 21.0},
		{16, 21.0},
	}

	for _, tt := range tests {
		now := time.Date(2024, 3, 15, tt.hour, 0, 0, 0, loc)
		target, err := ResolveTarget(&schedule, now, loc)
		if err != nil {
			t.Fatalf("ResolveTarget failed: %v", err)
		}
		if target != tt.expected {
			t.Errorf("At %02d:00 expected target %.1f, got %.1f", tt.hour, tt.expected, target)
		}
	}
}

func TestResolveTargetEqualBoundsAlwaysDay(t *testing.T) {
	schedule := models.DefaultSchedule(uuid.New(), uuid.New())
	schedule.NightStart = "22:00:00"
	schedule.NightEnd = "22:00:00"
	loc, _ := schedule.Location()

	for hour := 0; hour < 24; hour++ {
		now := time.Date(2024, 3, 15, hour, 0, 0, 0, loc)
		target, err := ResolveTarget(&schedule, now, loc)
		if err != nil {
			t.Fatalf("ResolveTarget failed: %v", err)
		}
		if target != schedule.TargetDay {
			t.Errorf("At %02d:00 expected day target %.1f with empty night window, got %.1f", hour, schedule.TargetDay, target)
		}
	}
}

func TestResolveTargetRespectsTimezone(t *testing.T) {
	schedule := models.DefaultSchedule(uuid.New(), uuid.New())
	loc, err := schedule.Location()
	if err != nil {
		t.Fatalf("Failed to load schedule timezone: %v", err)
	}

	// 23:00 Berlin in winter is 22:00 UTC; the decision must follow
	// the schedule's wall clock, not UTC.
	now := time.Date(2024, 1, 15, 22, 0, 0, 0, time.UTC)
	target, err := ResolveTarget(&schedule, now, loc)
	if err != nil {
		t.Fatalf("ResolveTarget failed: %v", err)
	}
	if target != schedule.TargetNight {
		t.Errorf("Expected night target %.1f at 23:00 local time, got %.1f", schedule.TargetNight, target)
	}
}

func TestResolveTargetInvalidClock(t *testing.T) {
	schedule := models.DefaultSchedule(uuid.New(), uuid.New())
	schedule.NightStart = "25:00:00"
	loc, _ := schedule.Location()

	if _, err := ResolveTarget(&schedule, time.Now(), loc); err == nil {
		t.Error("Expected error for out-of-range night start")
	}
}
