package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account owning rooms and weather data
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// Location is the subset of a user profile the weather refresh loop needs
type Location struct {
	UserID    uuid.UUID `json:"user_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}
