package database

import (
	"context"
	"fmt"
	"log"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/models"
)

// ListLocations returns the coordinates of every user, for the weather refresh loop
func (dm *DatabaseManager) ListLocations(ctx context.Context) ([]models.Location, error) {
	query := `SELECT id, latitude, longitude FROM users`

	rows, err := dm.QueryWithHealthCheck(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var loc models.Location
		if err := rows.Scan(&loc.UserID, &loc.Latitude, &loc.Longitude); err != nil {
			log.Printf("Failed to scan location: %v", err)
			continue
		}
		locations = append(locations, loc)
	}

	return locations, rows.Err()
}
