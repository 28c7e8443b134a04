package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/models"
)

// Reader is the query side of the sample store
type Reader interface {
	// Latest returns the most recent sample within lookback of now,
	// or ErrNotFound if the window is empty.
	Latest(ctx context.Context, key SeriesKey, lookback time.Duration) (models.Sample, error)

	// Range returns all samples with bounds.Start <= ts < bounds.End,
	// ascending by timestamp.
	Range(ctx context.Context, key SeriesKey, bounds RangeBounds) ([]models.Sample, error)
}

// Writer is the append side of the sample store
type Writer interface {
	// Append writes a single sample. Retried appends may duplicate.
	Append(ctx context.Context, key SeriesKey, value float64, dateUTC time.Time) error

	// AppendBatch writes all entries in order, all-or-nothing.
	AppendBatch(ctx context.Context, key SeriesKey, entries []models.BatchEntry) error
}

// Store is the full sample store surface
type Store interface {
	Reader
	Writer

	// DeleteSeries removes every sample of a series (room deletion cleanup)
	DeleteSeries(ctx context.Context, key SeriesKey) error
}

// PostgresStore stores samples in a Postgres table. All queries are
// parameterized; series identifiers are never interpolated into SQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a sample store on an existing connection pool
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Append writes a single sample
func (s *PostgresStore) Append(ctx context.Context, key SeriesKey, value float64, dateUTC time.Time) error {
	query := `
        INSERT INTO samples (measurement, user_id, room_id, value, date_utc)
        VALUES ($1, $2, $3, $4, $5)
    `

	_, err := s.db.ExecContext(ctx, query, key.Measurement, key.UserID, key.RoomID, value, dateUTC.UTC())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// AppendBatch writes all entries in slice order within one transaction
func (s *PostgresStore) AppendBatch(ctx context.Context, key SeriesKey, entries []models.BatchEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO samples (measurement, user_id, room_id, value, date_utc)
        VALUES ($1, $2, $3, $4, $5)
    `)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		if _, err := stmt.ExecContext(ctx, key.Measurement, key.UserID, key.RoomID, entry.Value, entry.DateUTC.UTC()); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Latest returns the most recent sample within lookback of now
func (s *PostgresStore) Latest(ctx context.Context, key SeriesKey, lookback time.Duration) (models.Sample, error) {
	query := `
        SELECT id, value, date_utc
        FROM samples
        WHERE measurement = $1 AND user_id = $2 AND room_id IS NOT DISTINCT FROM $3
          AND date_utc >= $4
        ORDER BY date_utc DESC
        LIMIT 1
    `

	var sample models.Sample
	err := s.db.QueryRowContext(ctx, query,
		key.Measurement, key.UserID, key.RoomID, time.Now().UTC().Add(-lookback),
	).Scan(&sample.ID, &sample.Value, &sample.DateUTC)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Sample{}, ErrNotFound
	}
	if err != nil {
		return models.Sample{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return sample, nil
}

// Range returns the samples in [bounds.Start, bounds.End), ascending
func (s *PostgresStore) Range(ctx context.Context, key SeriesKey, bounds RangeBounds) ([]models.Sample, error) {
	query := `
        SELECT id, value, date_utc
        FROM samples
        WHERE measurement = $1 AND user_id = $2 AND room_id IS NOT DISTINCT FROM $3
          AND date_utc >= $4 AND date_utc < $5
        ORDER BY date_utc ASC
    `

	rows, err := s.db.QueryContext(ctx, query,
		key.Measurement, key.UserID, key.RoomID, bounds.Start.UTC(), bounds.End.UTC())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	samples := []models.Sample{}
	for rows.Next() {
		var sample models.Sample
		if err := rows.Scan(&sample.ID, &sample.Value, &sample.DateUTC); err != nil {
			log.Printf("Failed to scan sample: %v", err)
			continue
		}
		samples = append(samples, sample)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return samples, nil
}

// DeleteSeries removes all samples of a series
func (s *PostgresStore) DeleteSeries(ctx context.Context, key SeriesKey) error {
	query := `
        DELETE FROM samples
        WHERE measurement = $1 AND user_id = $2 AND room_id IS NOT DISTINCT FROM $3
    `

	if _, err := s.db.ExecContext(ctx, query, key.Measurement, key.UserID, key.RoomID); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
