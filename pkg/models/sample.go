package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sample is a single timestamped temperature measurement
type Sample struct {
	ID      uuid.UUID `json:"id"`
	Value   float64   `json:"value"`
	DateUTC time.Time `json:"date_utc"`
}

// BatchEntry pairs a value with an already-resolved timestamp for a batch write
type BatchEntry struct {
	Value   float64
	DateUTC time.Time
}

// RangeQueryParams holds the query parameters for sample range queries.
// Start and End accept an absolute instant (RFC3339 and friends) or a
// relative duration anchored at now ("-24h", "-7d").
type RangeQueryParams struct {
	Start string
	End   string
	Limit int
	Order string
}

// Validate checks if the query parameters are valid
func (p *RangeQueryParams) Validate() error {
	if p.Limit < 1 || p.Limit > 10000 {
		return fmt.Errorf("limit must be between 1 and 10000")
	}
	if p.Order != "asc" && p.Order != "desc" {
		return fmt.Errorf("invalid order: %s (valid: asc, desc)", p.Order)
	}
	return nil
}
