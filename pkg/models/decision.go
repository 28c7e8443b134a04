package models

import "github.com/google/uuid"

// Decision is the recomputed-per-request heating verdict for a room.
// It is derived from the schedule and the latest sample, never stored.
type Decision struct {
	RoomID            uuid.UUID `json:"room_id"`
	TargetTemperature float64   `json:"target_temperature"`
	LatestSample      Sample    `json:"latest_sample"`
	HeatingOn         bool      `json:"heating_on"`
}
