package heating

import (
	"context"
	"errors"
	"fmt"

	"github.com/araddon/dateparse"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/models"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/telemetry"
)

// MaxBatchSize caps the number of values accepted by a single batch ingest
const MaxBatchSize = 100

// ErrBatchTooLarge is returned when a batch exceeds MaxBatchSize; nothing is written
var ErrBatchTooLarge = errors.New("too many values in batch")

// IngestBatch writes an ordered list of values to a series. An entry with a
// parseable timestamp at the same index keeps it; entries with a missing or
// unparseable timestamp are stamped individually at processing time, so a
// fast batch is order-preserving but not guaranteed strictly increasing.
// Returns the number of values written.
func (e *Engine) IngestBatch(ctx context.Context, key telemetry.SeriesKey, values []float64, timestamps []string) (int, error) {
	if len(values) > MaxBatchSize {
		return 0, fmt.Errorf("%w: %d values, maximum is %d", ErrBatchTooLarge, len(values), MaxBatchSize)
	}
	if len(values) == 0 {
		return 0, nil
	}

	entries := make([]models.BatchEntry, 0, len(values))
	for i, value := range values {
		entry := models.BatchEntry{Value: value, DateUTC: e.now()}
		if i < len(timestamps) && timestamps[i] != "" {
			if ts, err := dateparse.ParseAny(timestamps[i]); err == nil {
				entry.DateUTC = ts
			}
		}
		entries = append(entries, entry)
	}

	if err := e.samples.AppendBatch(ctx, key, entries); err != nil {
		return 0, err
	}

	return len(entries), nil
}
