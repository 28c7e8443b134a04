package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Room represents a heated room belonging to a user
type Room struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomSchedule holds the day/night target temperatures for a room.
// NightStart and NightEnd are wall-clock times ("HH:MM:SS"); the night
// window may wrap past midnight (e.g. 22:00:00 -> 06:00:00).
type RoomSchedule struct {
	RoomID      uuid.UUID `json:"room_id"`
	UserID      uuid.UUID `json:"user_id"`
	Timezone    string    `json:"timezone"`
	TargetDay   float64   `json:"target_day"`
	TargetNight float64   `json:"target_night"`
	NightStart  string    `json:"night_start"`
	NightEnd    string    `json:"night_end"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DefaultSchedule returns the schedule every new room starts with
func DefaultSchedule(userID, roomID uuid.UUID) RoomSchedule {
	return RoomSchedule{
		RoomID:      roomID,
		UserID:      userID,
		Timezone:    "Europe/Berlin",
		TargetDay:   21.0,
		TargetNight: 18.0,
		NightStart:  "22:00:00",
		NightEnd:    "06:00:00",
	}
}

// Location resolves the schedule's IANA timezone
func (s *RoomSchedule) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// Validate checks the schedule fields before they are stored
func (s *RoomSchedule) Validate() error {
	if _, err := s.Location(); err != nil {
		return err
	}
	if _, err := ParseClock(s.NightStart); err != nil {
		return fmt.Errorf("invalid night_start: %w", err)
	}
	if _, err := ParseClock(s.NightEnd); err != nil {
		return fmt.Errorf("invalid night_end: %w", err)
	}
	return nil
}

// ParseClock parses a wall-clock time of the form "HH:MM" or "HH:MM:SS"
// into seconds since midnight.
func ParseClock(value string) (int, error) {
	var h, m, s int
	if _, err := fmt.Sscanf(value, "%d:%d:%d", &h, &m, &s); err != nil {
		s = 0
		if _, err := fmt.Sscanf(value, "%d:%d", &h, &m); err != nil {
			return 0, fmt.Errorf("invalid clock time %q", value)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return 0, fmt.Errorf("clock time %q out of range", value)
	}
	return h*3600 + m*60 + s, nil
}
