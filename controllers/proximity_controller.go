package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"midway_server/services"
)

// ProximityController handles HTTP requests for marker disambiguation
type ProximityController struct {
	PresenceService  *services.PresenceService
	ProximityService *services.ProximityService
}

// NewProximityController creates a new ProximityController instance
func NewProximityController(presenceService *services.PresenceService, proximityService *services.ProximityService) *ProximityController {
	return &ProximityController{PresenceService: presenceService, ProximityService: proximityService}
}

// HandlePairs returns the current set of close user pairs. The client owns
// the alternation timer; this endpoint only supplies the pair set.
func (pc *ProximityController) HandlePairs(w http.ResponseWriter, r *http.Request) {
	active := pc.PresenceService.ActiveSnapshot(time.Now().UTC())
	pairs := pc.ProximityService.DetectPairs(active)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"pairs": pairs,
	})
}
