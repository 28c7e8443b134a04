package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/telemetry"
)

// getCurrentWeatherHandler fetches live conditions for the user's location
func (rm *RouteManager) getCurrentWeatherHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := rm.dbManager.GetUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("❌ Failed to load user %s: %v", user.ID, err)
		http.Error(w, "Failed to load user", http.StatusInternalServerError)
		return
	}

	current, err := rm.weatherClient.Current(r.Context(), profile.Latitude, profile.Longitude)
	if err != nil {
		log.Printf("❌ Failed to fetch current weather: %v", err)
		http.Error(w, "Failed to fetch current weather", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, current)
}

// getWeatherHistoryHandler returns recorded outdoor temperatures
func (rm *RouteManager) getWeatherHistoryHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	params := parseRangeQueryParams(r)
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	samples, err := rm.querySamples(r, telemetry.WeatherSeries(user.ID), params)
	if errors.Is(err, telemetry.ErrUnavailable) {
		log.Printf("❌ Failed to query weather history: %v", err)
		http.Error(w, "Failed to query weather history", http.StatusInternalServerError)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, samples)
}

// geocodeSearchHandler resolves a free-form city query to coordinates
func (rm *RouteManager) geocodeSearchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "Query parameter 'q' is required", http.StatusBadRequest)
		return
	}

	results, err := rm.geocoder.Search(r.Context(), query)
	if err != nil {
		log.Printf("❌ Failed to search city %q: %v", query, err)
		http.Error(w, "Failed to search city", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, results)
}
