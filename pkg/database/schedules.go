package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/models"
)

// GetSchedule loads the heating schedule for a room owned by the given user
func (dm *DatabaseManager) GetSchedule(ctx context.Context, userID, roomID uuid.UUID) (*models.RoomSchedule, error) {
	query := `
        SELECT room_id, user_id, timezone, target_day, target_night, night_start, night_end, updated_at
        FROM room_schedules
        WHERE room_id = $1 AND user_id = $2
    `

	var schedule models.RoomSchedule
	err := dm.QueryRowWithHealthCheck(ctx, query, roomID, userID).Scan(
		&schedule.RoomID,
		&schedule.UserID,
		&schedule.Timezone,
		&schedule.TargetDay,
		&schedule.TargetNight,
		&schedule.NightStart,
		&schedule.NightEnd,
		&schedule.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule: %w", err)
	}

	return &schedule, nil
}

// UpdateSchedule stores new schedule settings for a room
func (dm *DatabaseManager) UpdateSchedule(ctx context.Context, schedule *models.RoomSchedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}

	query := `
        UPDATE room_schedules
        SET timezone = $1, target_day = $2, target_night = $3, night_start = $4, night_end = $5,
            updated_at = CURRENT_TIMESTAMP
        WHERE room_id = $6 AND user_id = $7
    `

	result, err := dm.ExecWithHealthCheck(ctx, query,
		schedule.Timezone,
		schedule.TargetDay,
		schedule.TargetNight,
		schedule.NightStart,
		schedule.NightEnd,
		schedule.RoomID,
		schedule.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrRoomNotFound
	}

	return nil
}
