package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/database"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/models"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/telemetry"
)

type CreateRoomRequest struct {
	Name string `json:"name"`
}

// roomIDFromRequest parses the {id} path variable
func roomIDFromRequest(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

func (rm *RouteManager) createRoomHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Room name is required", http.StatusBadRequest)
		return
	}

	room, err := rm.dbManager.CreateRoom(r.Context(), user.ID, req.Name)
	if errors.Is(err, database.ErrRoomExists) {
		http.Error(w, "A room with this name already exists", http.StatusConflict)
		return
	} else if err != nil {
		log.Printf("❌ Failed to create room: %v", err)
		http.Error(w, "Failed to create room", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, room)
}

func (rm *RouteManager) getRoomsHandler(w http.ResponseWriter, r *http.Request) {
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
	if rooms == nil {
		rooms = []models.Room{}
	}

	writeJSON(w, http.StatusOK, rooms)
}

func (rm *RouteManager) deleteRoomHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	roomID, err := roomIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid room ID", http.StatusBadRequest)
		return
	}

	err = rm.dbManager.DeleteRoom(r.Context(), user.ID, roomID)
	if errors.Is(err, database.ErrRoomNotFound) {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("❌ Failed to delete room %s: %v", roomID, err)
		http.Error(w, "Failed to delete room", http.StatusInternalServerError)
		return
	}

	// Drop the room's recorded temperatures along with the room
	if err := rm.samples.DeleteSeries(r.Context(), telemetry.RoomSeries(user.ID, roomID)); err != nil {
		log.Printf("⚠ Failed to delete samples for room %s: %v", roomID, err)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (rm *RouteManager) getRoomSettingsHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	roomID, err := roomIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid room ID", http.StatusBadRequest)
		return
	}

	schedule, err := rm.dbManager.GetSchedule(r.Context(), user.ID, roomID)
	if errors.Is(err, database.ErrRoomNotFound) {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("❌ Failed to load schedule for room %s: %v", roomID, err)
		http.Error(w, "Failed to load room settings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}

type UpdateRoomSettingsRequest struct {
	Timezone    string  `json:"timezone"`
	TargetDay   float64 `json:"target_day"`
	TargetNight float64 `json:"target_night"`
	NightStart  string  `json:"night_start"`
	NightEnd    string  `json:"night_end"`
}

func (rm *RouteManager) updateRoomSettingsHandler(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	roomID, err := roomIDFromRequest(r)
	if err != nil {
		http.Error(w, "Invalid room ID", http.StatusBadRequest)
		return
	}

	var req UpdateRoomSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	schedule := &models.RoomSchedule{
		RoomID:      roomID,
		UserID:      user.ID,
		Timezone:    req.Timezone,
		TargetDay:   req.TargetDay,
		TargetNight: req.TargetNight,
		NightStart:  req.NightStart,
		NightEnd:    req.NightEnd,
	}

	if err := schedule.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = rm.dbManager.UpdateSchedule(r.Context(), schedule)
	if errors.Is(err, database.ErrRoomNotFound) {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("❌ Failed to update schedule for room %s: %v", roomID, err)
		http.Error(w, "Failed to update room settings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}
