package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/models"
)

// ErrRoomNotFound is returned when a room does not exist or belongs to another user
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomExists is returned when the user already has a room with that name
var ErrRoomExists = errors.New("room name already in use")

// uniqueViolation is the Postgres error code for a unique constraint breach
const uniqueViolation = "23505"

// CreateRoom creates a room together with its default heating schedule
func (dm *DatabaseManager) CreateRoom(ctx context.Context, userID uuid.UUID, name string) (*models.Room, error) {
	if name == "" {
		return nil, errors.New("room name must not be empty")
	}

	tx, err := dm.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var room models.Room
	err = tx.QueryRowContext(ctx, `
        INSERT INTO rooms (user_id, name)
        VALUES ($1, $2)
        RETURNING id, user_id, name, created_at
    `, userID, name).Scan(&room.ID, &room.UserID, &room.Name, &room.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrRoomExists
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	// Every room starts with the default day/night schedule
	schedule := models.DefaultSchedule(userID, room.ID)
	_, err = tx.ExecContext(ctx, `
        INSERT INTO room_schedules (room_id, user_id, timezone, target_day, target_night, night_start, night_end)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, schedule.RoomID, schedule.UserID, schedule.Timezone,
		schedule.TargetDay, schedule.TargetNight, schedule.NightStart, schedule.NightEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to create room schedule: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit room creation: %w", err)
	}

	return &room, nil
}

// ListRooms returns all rooms of a user
func (dm *DatabaseManager) ListRooms(ctx context.Context, userID uuid.UUID) ([]models.Room, error) {
	query := `
        SELECT id, user_id, name, created_at
        FROM rooms
        WHERE user_id = $1
        ORDER BY created_at ASC
    `

	rows, err := dm.QueryWithHealthCheck(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.UserID, &room.Name, &room.CreatedAt); err != nil {
			log.Printf("Failed to scan room: %v", err)
			continue
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

// RoomBelongsTo reports whether a room exists and is owned by the given user
func (dm *DatabaseManager) RoomBelongsTo(ctx context.Context, userID, roomID uuid.UUID) (bool, error) {
	var id uuid.UUID
	err := dm.QueryRowWithHealthCheck(ctx,
		"SELECT id FROM rooms WHERE id = $1 AND user_id = $2", roomID, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check room ownership: %w", err)
	}
	return true, nil
}

// DeleteRoom removes a room; the schedule goes with it via ON DELETE CASCADE.
// The room's samples live in a separate table and are cleaned up by the caller.
func (dm *DatabaseManager) DeleteRoom(ctx context.Context, userID, roomID uuid.UUID) error {
	owned, err := dm.RoomBelongsTo(ctx, userID, roomID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrRoomNotFound
	}

	if _, err := dm.ExecWithHealthCheck(ctx, "DELETE FROM rooms WHERE id = $1", roomID); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	return nil
}
