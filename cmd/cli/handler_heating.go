package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/database"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/heating"
)

// getHeatingDecisionHandler recomputes the heating verdict for a room
func (rm *RouteManager) getHeatingDecisionHandler(w http.ResponseWriter, r *http.Request) {
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

	decision, err := rm.engine.Decide(r.Context(), user.ID, roomID)
	if errors.Is(err, database.ErrRoomNotFound) {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, heating.ErrNoData) {
		http.Error(w, "No temperature data found for room", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("❌ Failed to compute heating decision for room %s: %v", roomID, err)
		http.Error(w, "Failed to compute heating decision", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, decision)
}
