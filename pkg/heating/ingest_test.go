package heating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/telemetry"
)

func TestIngestBatch(t *testing.T) {
	userID, roomID := uuid.New(), uuid.New()
	samples := &mockSampleStore{}
	stamp := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	engine := newTestEngine(&mockScheduleStore{}, samples, stamp)

	key := telemetry.RoomSeries(userID, roomID)
	values := []float64{20.1, 20.2, 20.3}
	timestamps := []string{"2024-03-15T10:00:00Z", "", "2024-03-15T10:02:00Z"}

	count, err := engine.IngestBatch(context.Background(), key, values, timestamps)
	if err != nil {
		t.Fatalf("IngestBatch failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 values written, got %d", count)
	}
	if len(samples.appended) != 3 {
		t.Fatalf("Expected 3 entries in store, got %d", len(samples.appended))
	}
	if samples.batchKey != key {
		t.Errorf("Expected batch written to series %s, got %s", key, samples.batchKey)
	}

	for i, value := range values {
		if samples.appended[i].Value != value {
			t.Errorf("Entry %d: expected value %.1f, got %.1f", i, value, samples.appended[i].Value)
		}
	}

	if !samples.appended[0].DateUTC.Equal(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Entry 0: expected provided timestamp, got %v", samples.appended[0].DateUTC)
	}
	if !samples.appended[1].DateUTC.Equal(stamp) {
		t.Errorf("Entry 1: expected now-fallback %v, got %v", stamp, samples.appended[1].DateUTC)
	}
}

func TestIngestBatchUnparseableTimestampFallsBack(t *testing.T) {
	samples := &mockSampleStore{}
	stamp := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	engine := newTestEngine(&mockScheduleStore{}, samples, stamp)

	count, err := engine.IngestBatch(context.Background(),
		telemetry.RoomSeries(uuid.New(), uuid.New()),
		[]float64{19.0}, []string{"not a timestamp"})
	if err != nil {
		t.Fatalf("IngestBatch failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 value written, got %d", count)
	}
	if !samples.appended[0].DateUTC.Equal(stamp) {
		t.Errorf("Expected now-fallback for unparseable timestamp, got %v", samples.appended[0].DateUTC)
	}
}

func TestIngestBatchMissingTimestamps(t *testing.T) {
	samples := &mockSampleStore{}
	stamp := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	engine := newTestEngine(&mockScheduleStore{}, samples, stamp)

	// Shorter timestamp slice than values is allowed
	count, err := engine.IngestBatch(context.Background(),
		telemetry.RoomSeries(uuid.New(), uuid.New()),
		[]float64{19.0, 19.5}, nil)
	if err != nil {
		t.Fatalf("IngestBatch failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 values written, got %d", count)
	}
	for i, entry := range samples.appended {
		if !entry.DateUTC.Equal(stamp) {
			t.Errorf("Entry %d: expected now-fallback, got %v", i, entry.DateUTC)
		}
	}
}

func TestIngestBatchTooLarge(t *testing.T) {
	samples := &mockSampleStore{}
	engine := NewEngine(&mockScheduleStore{}, samples)

	values := make([]float64, MaxBatchSize+1)
	_, err := engine.IngestBatch(context.Background(),
		telemetry.RoomSeries(uuid.New(), uuid.New()), values, nil)
	if !errors.Is(err, ErrBatchTooLarge) {
		t.Fatalf("Expected ErrBatchTooLarge, got %v", err)
	}
	if len(samples.appended) != 0 {
		t.Errorf("Expected nothing written for oversized batch, got %d entries", len(samples.appended))
	}
}

func TestIngestBatchAtCap(t *testing.T) {
	samples := &mockSampleStore{}
	engine := NewEngine(&mockScheduleStore{}, samples)

	values := make([]float64, MaxBatchSize)
	count, err := engine.IngestBatch(context.Background(),
		telemetry.RoomSeries(uuid.New(), uuid.New()), values, nil)
	if err != nil {
		t.Fatalf("IngestBatch failed at cap: %v", err)
	}
	if count != MaxBatchSize {
		t.Errorf("Expected %d values written, got %d", MaxBatchSize, count)
	}
}

func TestIngestBatchEmpty(t *testing.T) {
	samples := &mockSampleStore{}
	engine := NewEngine(&mockScheduleStore{}, samples)

	count, err := engine.IngestBatch(context.Background(),
		telemetry.RoomSeries(uuid.New(), uuid.New()), nil, nil)
	if err != nil {
		t.Fatalf("IngestBatch failed for empty batch: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 values written, got %d", count)
	}
}

func TestIngestBatchStoreError(t *testing.T) {
	samples := &mockSampleStore{batchErr: telemetry.ErrUnavailable}
	engine := NewEngine(&mockScheduleStore{}, samples)

	_, err := engine.IngestBatch(context.Background(),
		telemetry.RoomSeries(uuid.New(), uuid.New()), []float64{20.0}, nil)
	if !errors.Is(err, telemetry.ErrUnavailable) {
		t.Errorf("Expected store error to pass through, got %v", err)
	}
}
