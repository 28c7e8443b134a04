package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/heating"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/models"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/telemetry"
)

type PostTemperatureRequest struct {
	Value float64 `json:"value"`
}

type PostTemperatureBatchRequest struct {
	Values     []float64 `json:"values"`
	Timestamps []string  `json:"timestamps"`
}

type BatchResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// requireRoom checks ownership of the {id} room and returns its ID
func (rm *RouteManager) requireRoom(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (uuid.UUID, bool) {
	roomID, err := roomIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid room ID", http.StatusBadRequest)
		return uuid.Nil, false
	}

	owned, err := rm.dbManager.RoomBelongsTo(r.Context(), userID, roomID)
	if err != nil {
		log.Printf("❌ Failed to check room %s: %v", roomID, err)
		http.Error(w, "Failed to check room", http.StatusInternalServerError)
		return uuid.Nil, false
	}
	if !owned {
		http.Error(w, "Room not found", http.StatusNotFound)
		return uuid.Nil, false
	}

	return roomID, true
}

func (rm *RouteManager) postTemperatureHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	roomID, ok := rm.requireRoom(w, r, user.ID)
	if !ok {
		return
	}

	var req PostTemperatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	key := telemetry.RoomSeries(user.ID, roomID)
	if err := rm.samples.Append(r.Context(), key, req.Value, time.Now()); err != nil {
		log.Printf("❌ Failed to store temperature for room %s: %v", roomID, err)
		http.Error(w, "Failed to store temperature", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (rm *RouteManager) postTemperatureBatchHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	roomID, ok := rm.requireRoom(w, r, user.ID)
	if !ok {
		return
	}

	var req PostTemperatureBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	key := telemetry.RoomSeries(user.ID, roomID)
	count, err := rm.engine.IngestBatch(r.Context(), key, req.Values, req.Timestamps)
	if errors.Is(err, heating.ErrBatchTooLarge) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("❌ Failed to store temperature batch for room %s: %v", roomID, err)
		http.Error(w, "Failed to store temperatures", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, BatchResponse{Success: true, Count: count})
}

// parseRangeQueryParams extracts range query parameters from the request
func parseRangeQueryParams(r *http.Request) models.RangeQueryParams {
	params := models.RangeQueryParams{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
		Limit: 10000, // default
		Order: "asc", // default
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			params.Limit = l
		}
	}
	if orderStr := r.URL.Query().Get("order"); orderStr != "" {
		params.Order = orderStr
	}

	return params
}

// querySamples runs a validated range query against a series
func (rm *RouteManager) querySamples(r *http.Request, key telemetry.SeriesKey, params models.RangeQueryParams) ([]models.Sample, error) {
	bounds, err := telemetry.ParseRangeBounds(params.Start, params.End, time.Now())
	if err != nil {
		return nil, err
	}

	samples, err := rm.samples.Range(r.Context(), key, bounds)
	if err != nil {
		return nil, err
	}

	// Store order is ascending; flip and trim per query
	if params.Order == "desc" {
		for i, j := 0, len(samples)-1; i < j; i, j = i+1, j-1 {
			samples[i], samples[j] = samples[j], samples[i]
		}
	}
	if len(samples) > params.Limit {
		samples = samples[:params.Limit]
	}

	return samples, nil
}

func (rm *RouteManager) getTemperaturesHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	roomID, ok := rm.requireRoom(w, r, user.ID)
	if !ok {
		return
	}

	params := parseRangeQueryParams(r)
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	samples, err := rm.querySamples(r, telemetry.RoomSeries(user.ID, roomID), params)
	if errors.Is(err, telemetry.ErrUnavailable) {
		log.Printf("❌ Failed to query temperatures for room %s: %v", roomID, err)
		http.Error(w, "Failed to query temperatures", http.StatusInternalServerError)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, samples)
}

const latestLookback = 7 * 24 * time.Hour

func (rm *RouteManager) getLatestTemperatureHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	roomID, ok := rm.requireRoom(w, r, user.ID)
	if !ok {
		return
	}

	sample, err := rm.samples.Latest(r.Context(), telemetry.RoomSeries(user.ID, roomID), latestLookback)
	if errors.Is(err, telemetry.ErrNotFound) {
		http.Error(w, "No temperature data found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("❌ Failed to query latest temperature for room %s: %v", roomID, err)
		http.Error(w, "Failed to query temperature", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sample)
}

type RoomTemperature struct {
	Room   models.Room    `json:"room"`
	Latest *models.Sample `json:"latest"`
}

func (rm *RouteManager) getAllLatestTemperaturesHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rooms, err := rm.dbManager.ListRooms(r.Context(), user.ID)
	if err != nil {
		log.Printf("❌ Failed to list rooms: %v", err)
		http.Error(w, "Failed to list rooms", http.StatusInternalServerError)
		return
	}

	result := make([]RoomTemperature, 0, len(rooms))
	for _, room := range rooms {
		entry := RoomTemperature{Room: room}

		sample, err := rm.samples.Latest(r.Context(), telemetry.RoomSeries(user.ID, room.ID), latestLookback)
		switch {
		case err == nil:
			entry.Latest = &sample
		case errors.Is(err, telemetry.ErrNotFound):
			// Room without recent data still appears, with a null reading
		default:
			log.Printf("❌ Failed to query latest temperature for room %s: %v", room.ID, err)
			http.Error(w, "Failed to query temperatures", http.StatusInternalServerError)
			return
		}

		result = append(result, entry)
	}

	writeJSON(w, http.StatusOK, result)
}
