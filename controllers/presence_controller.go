package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"midway_server/models"
	"midway_server/services"

	"github.com/gorilla/mux"
)

// PresenceController handles HTTP requests for the presence registry.
// Inbound real-time events and these handlers go through the same
// registry API; HTTP is just another caller.
type PresenceController struct {
	PresenceService *services.PresenceService
}

// NewPresenceController creates a new PresenceController instance
func NewPresenceController(presenceService *services.PresenceService) *PresenceController {
	return &PresenceController{PresenceService: presenceService}
}

// HandleUpdate upserts a user's presence entry
func (pc *PresenceController) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID      string  `json:"userId"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		IsOnline    bool    `json:"isOnline"`
		DisplayName string  `json:"displayName"`
		AvatarRef   string  `json:"avatarRef"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	coord := models.Coordinate{Latitude: request.Latitude, Longitude: request.Longitude}
	if !coord.IsValid() {
		http.Error(w, models.ErrInvalidCoordinate.Error(), http.StatusBadRequest)
		return
	}

	pc.PresenceService.Upsert(r.Context(), models.UserPresence{
		UserID:      request.UserID,
		Coordinate:  coord,
		IsOnline:    request.IsOnline,
		LastSeen:    time.Now().UTC(),
		DisplayName: request.DisplayName,
		AvatarRef:   request.AvatarRef,
	})

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Presence updated"})
}

// HandleOffline marks a user offline
func (pc *PresenceController) HandleOffline(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	pc.PresenceService.MarkOffline(r.Context(), request.UserID, time.Now().UTC())

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "User marked offline"})
}

// HandleSnapshot returns a point-in-time copy of the registry
func (pc *PresenceController) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot := pc.PresenceService.Snapshot()
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"presences": snapshot,
	})
}

// HandleGet returns one user's presence entry
func (pc *PresenceController) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	presence, ok := pc.PresenceService.Get(userID)
	if !ok {
		http.Error(w, "presence not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(presence)
}
