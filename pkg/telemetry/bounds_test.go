package telemetry

import (
	"testing"
	"time"
)

func TestParseRangeBounds_Defaults(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	bounds, err := ParseRangeBounds("", "", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !bounds.End.Equal(now) {
		t.Errorf("Expected end=now, got %s", bounds.End)
	}
	if !bounds.Start.Equal(now.Add(-24 * time.Hour)) {
		t.Errorf("Expected start=now-24h, got %s", bounds.Start)
	}
}

func TestParseRangeBounds_RelativeDurations(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		start string
		want  time.Duration
	}{
		{"-24h", 24 * time.Hour},
		{"-30m", 30 * time.Minute},
		{"-7d", 7 * 24 * time.Hour},
		{"-1d", 24 * time.Hour},
	}

	for _, tt := range tests {
		bounds, err := ParseRangeBounds(tt.start, "now", now)
		if err != nil {
			t.Errorf("ParseRangeBounds(%q): unexpected error %v", tt.start, err)
			continue
		}
		if !bounds.Start.Equal(now.Add(-tt.want)) {
			t.Errorf("ParseRangeBounds(%q): expected start %s, got %s", tt.start, now.Add(-tt.want), bounds.Start)
		}
	}
}

func TestParseRangeBounds_Absolute(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	bounds, err := ParseRangeBounds("2026-01-01T00:00:00Z", "2026-01-02T00:00:00Z", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	wantStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	if !bounds.Start.Equal(wantStart) {
		t.Errorf("Expected start %s, got %s", wantStart, bounds.Start)
	}
	if !bounds.End.Equal(wantEnd) {
		t.Errorf("Expected end %s, got %s", wantEnd, bounds.End)
	}
}

func TestParseRangeBounds_Invalid(t *testing.T) {
	now := time.Now()

	if _, err := ParseRangeBounds("not-a-time", "", now); err == nil {
		t.Error("Expected error for unparseable start")
	}

	if _, err := ParseRangeBounds("", "-x5h", now); err == nil {
		t.Error("Expected error for unparseable end")
	}

	// End before start
	if _, err := ParseRangeBounds("2026-01-02T00:00:00Z", "2026-01-01T00:00:00Z", now); err == nil {
		t.Error("Expected error for end before start")
	}
}

func TestSeriesKeyString(t *testing.T) {
	userKey := WeatherSeries([16]byte{1})
	if userKey.RoomID != nil {
		t.Error("Expected weather series to have no room")
	}

	roomKey := RoomSeries([16]byte{1}, [16]byte{2})
	if roomKey.RoomID == nil {
		t.Fatal("Expected room series to carry a room ID")
	}
	if roomKey.Measurement != MeasurementRoomTemperature {
		t.Errorf("Expected measurement %s, got %s", MeasurementRoomTemperature, roomKey.Measurement)
	}
}
