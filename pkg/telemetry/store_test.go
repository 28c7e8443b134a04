package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/database"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/models"
)

// setupTestStore connects to TEST_DATABASE_URL and ensures the schema exists.
// Tests isolate themselves through fresh user IDs, not table truncation.
func setupTestStore(t *testing.T) *PostgresStore {
	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		return nil
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	runner, err := database.NewMigrationsRunner(db)
	if err != nil {
		t.Fatalf("Failed to create migrations runner: %v", err)
	}
	runner.DisableLogging()
	if err := runner.Run(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return NewPostgresStore(db)
}

func TestAppendAndRange_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	if store == nil {
		t.Skip("Skipping test that requires real database connection")
	}

	ctx := context.Background()
	key := RoomSeries(uuid.New(), uuid.New())

	ts := time.Date(2026, 1, 10, 8, 30, 0, 0, time.UTC)
	if err := store.Append(ctx, key, 19.75, ts); err != nil {
		t.Fatalf("Failed to append sample: %v", err)
	}

	bounds := RangeBounds{Start: ts.Add(-time.Minute), End: ts.Add(time.Minute)}
	samples, err := store.Range(ctx, key, bounds)
	if err != nil {
		t.Fatalf("Failed to query range: %v", err)
	}

	if len(samples) != 1 {
		t.Fatalf("Expected 1 sample, got %d", len(samples))
	}
	if samples[0].Value != 19.75 {
		t.Errorf("Expected value 19.75, got %f", samples[0].Value)
	}
	if !samples[0].DateUTC.Equal(ts) {
		t.Errorf("Expected timestamp %s, got %s", ts, samples[0].DateUTC)
	}
}

func TestRange_HalfOpenAscending(t *testing.T) {
	store := setupTestStore(t)
	if store == nil {
		t.Skip("Skipping test that requires real database connection")
	}

	ctx := context.Background()
	key := RoomSeries(uuid.New(), uuid.New())

	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	for i, v := range []float64{18.0, 19.0, 20.0, 21.0} {
		if err := store.Append(ctx, key, v, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("Failed to append: %v", err)
		}
	}

	// Window [base+1h, base+3h): the sample at exactly base+3h is excluded
	bounds := RangeBounds{Start: base.Add(time.Hour), End: base.Add(3 * time.Hour)}
	samples, err := store.Range(ctx, key, bounds)
	if err != nil {
		t.Fatalf("Failed to query range: %v", err)
	}

	if len(samples) != 2 {
		t.Fatalf("Expected 2 samples, got %d", len(samples))
	}
	if samples[0].Value != 19.0 || samples[1].Value != 20.0 {
		t.Errorf("Expected ascending [19.0, 20.0], got [%f, %f]", samples[0].Value, samples[1].Value)
	}
}

func TestRange_SeriesIsolation(t *testing.T) {
	store := setupTestStore(t)
	if store == nil {
		t.Skip("Skipping test that requires real database connection")
	}

	ctx := context.Background()
	userID := uuid.New()
	roomKey := RoomSeries(userID, uuid.New())
	weatherKey := WeatherSeries(userID)

	ts := time.Now().UTC()
	if err := store.Append(ctx, roomKey, 20.0, ts); err != nil {
		t.Fatalf("Failed to append room sample: %v", err)
	}
	if err := store.Append(ctx, weatherKey, 5.0, ts); err != nil {
		t.Fatalf("Failed to append weather sample: %v", err)
	}

	bounds := RangeBounds{Start: ts.Add(-time.Minute), End: ts.Add(time.Minute)}

	roomSamples, err := store.Range(ctx, roomKey, bounds)
	if err != nil {
		t.Fatalf("Failed to query room range: %v", err)
	}
	if len(roomSamples) != 1 || roomSamples[0].Value != 20.0 {
		t.Errorf("Expected only the room sample, got %+v", roomSamples)
	}

	weatherSamples, err := store.Range(ctx, weatherKey, bounds)
	if err != nil {
		t.Fatalf("Failed to query weather range: %v", err)
	}
	if len(weatherSamples) != 1 || weatherSamples[0].Value != 5.0 {
		t.Errorf("Expected only the weather sample, got %+v", weatherSamples)
	}
}

func TestLatest(t *testing.T) {
	store := setupTestStore(t)
	if store == nil {
		t.Skip("Skipping test that requires real database connection")
	}

	ctx := context.Background()
	key := RoomSeries(uuid.New(), uuid.New())

	// Empty series
	if _, err := store.Latest(ctx, key, 7*24*time.Hour); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for empty series, got %v", err)
	}

	now := time.Now().UTC()
	if err := store.Append(ctx, key, 17.0, now.Add(-2*time.Hour)); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	if err := store.Append(ctx, key, 18.5, now.Add(-time.Hour)); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	sample, err := store.Latest(ctx, key, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("Failed to query latest: %v", err)
	}
	if sample.Value != 18.5 {
		t.Errorf("Expected latest value 18.5, got %f", sample.Value)
	}

	// Sample outside the lookback window is not found
	if _, err := store.Latest(ctx, key, 30*time.Minute); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound outside lookback, got %v", err)
	}
}

func TestAppendBatch_OrderPreserved(t *testing.T) {
	store := setupTestStore(t)
	if store == nil {
		t.Skip("Skipping test that requires real database connection")
	}

	ctx := context.Background()
	key := RoomSeries(uuid.New(), uuid.New())

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	entries := []models.BatchEntry{
		{Value: 18.1, DateUTC: base},
		{Value: 18.2, DateUTC: base.Add(time.Minute)},
		{Value: 18.3, DateUTC: base.Add(2 * time.Minute)},
	}

	if err := store.AppendBatch(ctx, key, entries); err != nil {
		t.Fatalf("Failed to append batch: %v", err)
	}

	bounds := RangeBounds{Start: base, End: base.Add(time.Hour)}
	samples, err := store.Range(ctx, key, bounds)
	if err != nil {
		t.Fatalf("Failed to query range: %v", err)
	}

	if len(samples) != 3 {
		t.Fatalf("Expected 3 samples, got %d", len(samples))
	}
	for i, want := range []float64{18.1, 18.2, 18.3} {
		if samples[i].Value != want {
			t.Errorf("Sample %d: expected %f, got %f", i, want, samples[i].Value)
		}
	}
}

func TestDeleteSeries(t *testing.T) {
	store := setupTestStore(t)
	if store == nil {
		t.Skip("Skipping test that requires real database connection")
	}

	ctx := context.Background()
	userID := uuid.New()
	roomKey := RoomSeries(userID, uuid.New())
	weatherKey := WeatherSeries(userID)

	ts := time.Now().UTC()
	if err := store.Append(ctx, roomKey, 20.0, ts); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	if err := store.Append(ctx, weatherKey, 4.0, ts); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	if err := store.DeleteSeries(ctx, roomKey); err != nil {
		t.Fatalf("Failed to delete series: %v", err)
	}

	bounds := RangeBounds{Start: ts.Add(-time.Minute), End: ts.Add(time.Minute)}
	roomSamples, err := store.Range(ctx, roomKey, bounds)
	if err != nil {
		t.Fatalf("Failed to query range: %v", err)
	}
	if len(roomSamples) != 0 {
		t.Errorf("Expected room series to be empty after delete, got %d samples", len(roomSamples))
	}

	// Deleting the room series must not touch the weather series
	weatherSamples, err := store.Range(ctx, weatherKey, bounds)
	if err != nil {
		t.Fatalf("Failed to query weather range: %v", err)
	}
	if len(weatherSamples) != 1 {
		t.Errorf("Expected weather series untouched, got %d samples", len(weatherSamples))
	}
}
