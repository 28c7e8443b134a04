package heating

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/models"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/telemetry"
)

// ErrNoData is returned when a room has no sample inside the decision lookback window
var ErrNoData = errors.New("no temperature data found")

// decisionLookback bounds the "most recent sample" query for decisions
const decisionLookback = 7 * 24 * time.Hour

// ScheduleStore provides heating schedules keyed by owner and room
type ScheduleStore interface {
	GetSchedule(ctx context.Context, userID, roomID uuid.UUID) (*models.RoomSchedule, error)
}

// Engine decides whether heating should be on for a room by comparing
// the room's latest temperature sample against the scheduled target.
type Engine struct {
	schedules ScheduleStore
	samples   telemetry.Store
	now       func() time.Time
}

// NewEngine creates a decision engine on top of a schedule store and a sample store
func NewEngine(schedules ScheduleStore, samples telemetry.Store) *Engine {
	return &Engine{
		schedules: schedules,
		samples:   samples,
		now:       time.Now,
	}
}

// Decide computes the current heating verdict for a room. It is read-only:
// nothing in the store is mutated. Schedule-store errors (including
// not-found) are passed through; an empty lookback window yields ErrNoData.
func (e *Engine) Decide(ctx context.Context, userID, roomID uuid.UUID) (*models.Decision, error) {
	schedule, err := e.schedules.GetSchedule(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}

	loc, err := schedule.Location()
	if err != nil {
		return nil, err
	}

	target, err := ResolveTarget(schedule, e.now(), loc)
	if err != nil {
		return nil, err
	}

	latest, err := e.samples.Latest(ctx, telemetry.RoomSeries(userID, roomID), decisionLookback)
	if errors.Is(err, telemetry.ErrNotFound) {
		return nil, fmt.Errorf("room %s: %w", roomID, ErrNoData)
	}
	if err != nil {
		return nil, err
	}

	return &models.Decision{
		RoomID:            roomID,
		TargetTemperature: target,
		LatestSample:      latest,
		// Strict comparison: a room exactly at target is not heated
		HeatingOn: latest.Value < target,
	}, nil
}

// TargetAt resolves the target temperature for a room at an arbitrary instant
func (e *Engine) TargetAt(ctx context.Context, userID, roomID uuid.UUID, at time.Time) (float64, error) {
	schedule, err := e.schedules.GetSchedule(ctx, userID, roomID)
	if err != nil {
		return 0, err
	}

	loc, err := schedule.Location()
	if err != nil {
		return 0, err
	}

	return ResolveTarget(schedule, at, loc)
}
