package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/config"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/database"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/geocode"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/heating"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/telemetry"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/weather"
)

// RouteManager handles all API routes
type RouteManager struct {
	dbManager     *database.DatabaseManager
	samples       telemetry.Store
	engine        *heating.Engine
	weatherClient *weather.Client
	geocoder      *geocode.Client
	cfg           *config.Config
	Router        *mux.Router
}

// NewRouteManager creates a new RouteManager instance
func NewRouteManager(dbManager *database.DatabaseManager, samples telemetry.Store, engine *heating.Engine,
	weatherClient *weather.Client, geocoder *geocode.Client, cfg *config.Config) *RouteManager {
	return &RouteManager{
		dbManager:     dbManager,
		samples:       samples,
		engine:        engine,
		weatherClient: weatherClient,
		geocoder:      geocoder,
		cfg:           cfg,
		Router:        mux.NewRouter(),
	}
}

// Setup configures all API routes
func (rm *RouteManager) Setup() {
	r := rm.Router
	r.Use(rm.corsMiddleware)

	// Global OPTIONS handler - catches all preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health check
	r.HandleFunc("/health", rm.healthHandler).Methods("GET")

	// API v1 routes
	api := r.PathPrefix("/api/v1").Subrouter()
	rm.setupAPIRoutes(api)
}

// setupAPIRoutes configures all API v1 routes
func (rm *RouteManager) setupAPIRoutes(api *mux.Router) {
	// Public auth endpoints (no auth required)
	api.HandleFunc("/auth/register", rm.handleRegister).Methods("POST")
	api.HandleFunc("/auth/login", rm.handleLogin).Methods("POST")

	// Geocoding is public; it touches no user data
	api.HandleFunc("/geocode/search", rm.geocodeSearchHandler).Methods("GET")

	// Protected endpoints (auth required)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(rm.JWTAuthMiddleware)

	// User info
	protected.HandleFunc("/auth/me", rm.handleMe).Methods("GET")
	protected.HandleFunc("/auth/refresh", rm.handleRefreshToken).Methods("POST")
	protected.HandleFunc("/auth/location", rm.handleUpdateLocation).Methods("PUT")
	protected.HandleFunc("/auth/password", rm.handleChangePassword).Methods("PUT")

	// Rooms
	protected.HandleFunc("/rooms", rm.createRoomHandler).Methods("POST")
	protected.HandleFunc("/rooms", rm.getRoomsHandler).Methods("GET")
	protected.HandleFunc("/rooms/{id}", rm.deleteRoomHandler).Methods("DELETE")
	protected.HandleFunc("/rooms/{id}/settings", rm.getRoomSettingsHandler).Methods("GET")
	protected.HandleFunc("/rooms/{id}/settings", rm.updateRoomSettingsHandler).Methods("PUT")

	// Temperatures
	protected.HandleFunc("/rooms/{id}/temperatures", rm.postTemperatureHandler).Methods("POST")
	protected.HandleFunc("/rooms/{id}/temperatures/batch", rm.postTemperatureBatchHandler).Methods("POST")
	protected.HandleFunc("/rooms/{id}/temperatures", rm.getTemperaturesHandler).Methods("GET")
	protected.HandleFunc("/rooms/{id}/temperatures/latest", rm.getLatestTemperatureHandler).Methods("GET")
	protected.HandleFunc("/temperatures/latest", rm.getAllLatestTemperaturesHandler).Methods("GET")

	// Heating decisions
	protected.HandleFunc("/rooms/{id}/heating", rm.getHeatingDecisionHandler).Methods("GET")

	// Weather
	protected.HandleFunc("/weather/current", rm.getCurrentWeatherHandler).Methods("GET")
	protected.HandleFunc("/weather/history", rm.getWeatherHistoryHandler).Methods("GET")
}
