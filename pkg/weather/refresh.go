package weather

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/models"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/telemetry"
)

// LocationDirectory lists the coordinates to refresh weather for
type LocationDirectory interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
}

// Fetcher retrieves current conditions for a coordinate
type Fetcher interface {
	Current(ctx context.Context, latitude, longitude float64) (*models.CurrentWeather, error)
}

// listTimeout bounds the location listing at the start of a cycle
const listTimeout = 10 * time.Second

// locationTimeout bounds the fetch and store for one location
const locationTimeout = 10 * time.Second

// RefreshService periodically fetches outdoor conditions for every
// user location and records the temperature as a sample.
type RefreshService struct {
	directory LocationDirectory
	fetcher   Fetcher
	samples   telemetry.Writer
	interval  time.Duration
	timeout   time.Duration
	stopChan  chan struct{}
	mu        sync.Mutex
	ticker    *time.Ticker
	now       func() time.Time
}

// NewRefreshService creates a new RefreshService
func NewRefreshService(directory LocationDirectory, fetcher Fetcher, samples telemetry.Writer, interval time.Duration) *RefreshService {
	return &RefreshService{
		directory: directory,
		fetcher:   fetcher,
		samples:   samples,
		interval:  interval,
		timeout:   locationTimeout,
		stopChan:  make(chan struct{}),
		now:       time.Now,
	}
}

// Start begins the periodic refresh loop
func (rs *RefreshService) Start() {
	go rs.run()
	log.Println("✓ Weather refresh service started")
}

// Stop halts the refresh loop
func (rs *RefreshService) Stop() {
	close(rs.stopChan)
	rs.mu.Lock()
	if rs.ticker != nil {
		rs.ticker.Stop()
	}
	rs.mu.Unlock()
	log.Println("✓ Weather refresh service stopped")
}

// run executes the refresh loop
func (rs *RefreshService) run() {
	rs.mu.Lock()
	rs.ticker = time.NewTicker(rs.interval)
	rs.mu.Unlock()
	defer rs.ticker.Stop()

	// Refresh immediately on start
	rs.RefreshAll()

	for {
		select {
		case <-rs.stopChan:
			return
		case <-rs.ticker.C:
			rs.RefreshAll()
		}
	}
}

// RefreshAll runs one refresh cycle over every known location. A failure
// for one location is logged and skipped; the cycle continues with the
// rest. Only a failed location listing aborts the cycle.
func (rs *RefreshService) RefreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
	locations, err := rs.directory.ListLocations(ctx)
	cancel()
	if err != nil {
		log.Printf("❌ Failed to list locations for weather refresh: %v", err)
		return
	}

	for _, loc := range locations {
		rs.refreshLocation(loc)
	}
}

// refreshLocation fetches and stores conditions for a single location.
// Each location gets its own deadline, so a provider hanging on one
// coordinate cannot eat into the budget of the locations after it.
func (rs *RefreshService) refreshLocation(loc models.Location) {
	ctx, cancel := context.WithTimeout(context.Background(), rs.timeout)
	defer cancel()

	current, err := rs.fetcher.Current(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		log.Printf("❌ Error fetching weather for user %s (%.4f, %.4f): %v", loc.UserID, loc.Latitude, loc.Longitude, err)
		return
	}

	key := telemetry.WeatherSeries(loc.UserID)
	if err := rs.samples.Append(ctx, key, current.Temperature, rs.now()); err != nil {
		log.Printf("❌ Error storing weather sample for user %s: %v", loc.UserID, err)
	}
}
