package telemetry

import (
	"errors"

	"github.com/google/uuid"
)

// Measurement names partition the sample table into logical series families.
const (
	MeasurementRoomTemperature = "temperature"
	MeasurementOutdoorWeather  = "weather_temperature"
)

// ErrNotFound is returned when a query matches no samples
var ErrNotFound = errors.New("no samples found")

// ErrUnavailable wraps failures to reach the backing store
var ErrUnavailable = errors.New("telemetry store unavailable")

// SeriesKey addresses one sample series: a measurement scoped to a user
// and, for room series, a room. Room and weather series for the same user
// are disjoint.
type SeriesKey struct {
	Measurement string
	UserID      uuid.UUID
	RoomID      *uuid.UUID
}

// RoomSeries is the key for a room's indoor temperature series
func RoomSeries(userID, roomID uuid.UUID) SeriesKey {
	return SeriesKey{
		Measurement: MeasurementRoomTemperature,
		UserID:      userID,
		RoomID:      &roomID,
	}
}

// WeatherSeries is the key for a user's outdoor weather series
func WeatherSeries(userID uuid.UUID) SeriesKey {
	return SeriesKey{
		Measurement: MeasurementOutdoorWeather,
		UserID:      userID,
	}
}

// String renders the key for log messages
func (k SeriesKey) String() string {
	if k.RoomID != nil {
		return k.Measurement + "/" + k.UserID.String() + "/" + k.RoomID.String()
	}
	return k.Measurement + "/" + k.UserID.String()
}
