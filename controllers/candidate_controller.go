package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"midway_server/models"
	"midway_server/services"
)

// CandidateController handles HTTP requests for meeting-point candidates
type CandidateController struct {
	CandidateService *services.CandidateService
}

// NewCandidateController creates a new CandidateController instance
func NewCandidateController(candidateService *services.CandidateService) *CandidateController {
	return &CandidateController{CandidateService: candidateService}
}

// HandleGetCandidates returns ranked meeting points between two coordinates
func (cc *CandidateController) HandleGetCandidates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	latA, errLatA := strconv.ParseFloat(query.Get("latA"), 64)
	lngA, errLngA := strconv.ParseFloat(query.Get("lngA"), 64)
	latB, errLatB := strconv.ParseFloat(query.Get("latB"), 64)
	lngB, errLngB := strconv.ParseFloat(query.Get("lngB"), 64)
	if errLatA != nil || errLngA != nil || errLatB != nil || errLngB != nil {
		http.Error(w, "latA, lngA, latB, and lngB are required numeric parameters", http.StatusBadRequest)
		return
	}

	activity := query.Get("activity")
	if activity == "" {
		http.Error(w, "activity is required", http.StatusBadRequest)
		return
	}

	locationA := models.Coordinate{Latitude: latA, Longitude: lngA}
	locationB := models.Coordinate{Latitude: latB, Longitude: lngB}

	candidates, degraded, err := cc.CandidateService.GetCandidates(r.Context(), locationA, locationB, activity)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCoordinate) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"candidates": candidates,
		"degraded":   degraded,
	})
}
