package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"midway_server/models"
	"midway_server/services"

	"github.com/gorilla/mux"
)

// MatchController handles HTTP requests for the match lifecycle
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// HandleCreate opens a new match request
func (mc *MatchController) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var request struct {
		RequesterID string `json:"requesterId"`
		TargetID    string `json:"targetId"`
		Activity    string `json:"activity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.RequesterID == "" || request.TargetID == "" || request.Activity == "" {
		http.Error(w, "requesterId, targetId, and activity are required", http.StatusBadRequest)
		return
	}

	match, err := mc.MatchService.Create(r.Context(), request.RequesterID, request.TargetID, request.Activity)
	if err != nil {
		writeMatchError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(match)
}

// HandleAttachCandidate stores the selected meeting point on a match
func (mc *MatchController) HandleAttachCandidate(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID   string                  `json:"matchId"`
		Candidate models.MeetingCandidate `json:"candidate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.MatchID == "" || request.Candidate.ID == "" {
		http.Error(w, "matchId and candidate are required", http.StatusBadRequest)
		return
	}

	match, err := mc.MatchService.AttachCandidate(r.Context(), request.MatchID, request.Candidate)
	if err != nil {
		writeMatchError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(match)
}

// HandleRespond processes the target's accept/reject decision
func (mc *MatchController) HandleRespond(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID  string `json:"matchId"`
		UserID   string `json:"userId"`
		Decision string `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.MatchID == "" || request.UserID == "" || request.Decision == "" {
		http.Error(w, "matchId, userId, and decision are required", http.StatusBadRequest)
		return
	}

	match, err := mc.MatchService.Respond(r.Context(), request.MatchID, request.UserID, request.Decision)
	if err != nil {
		writeMatchError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(match)
}

// HandleConfirmArrival records one party arriving at the meeting point
func (mc *MatchController) HandleConfirmArrival(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.MatchID == "" || request.UserID == "" {
		http.Error(w, "matchId and userId are required", http.StatusBadRequest)
		return
	}

	match, err := mc.MatchService.ConfirmArrival(r.Context(), request.MatchID, request.UserID)
	if err != nil {
		writeMatchError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(match)
}

// HandleCancel withdraws a pending match
func (mc *MatchController) HandleCancel(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.MatchID == "" || request.UserID == "" {
		http.Error(w, "matchId and userId are required", http.StatusBadRequest)
		return
	}

	match, err := mc.MatchService.Cancel(r.Context(), request.MatchID, request.UserID)
	if err != nil {
		writeMatchError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(match)
}

// HandleGet fetches one match by ID
func (mc *MatchController) HandleGet(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]
	if matchID == "" {
		http.Error(w, "matchId is required", http.StatusBadRequest)
		return
	}

	match, err := mc.MatchService.Get(r.Context(), matchID)
	if err != nil {
		writeMatchError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(match)
}

// HandleActive lists the caller's pending and accepted matches
func (mc *MatchController) HandleActive(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	matches := mc.MatchService.ActiveForUser(r.Context(), userID)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"matches": matches,
	})
}

// writeMatchError maps the error taxonomy onto HTTP statuses
func writeMatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrMatchNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, models.ErrMatchExpired):
		http.Error(w, err.Error(), http.StatusGone)
	case errors.Is(err, models.ErrInvalidStateTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrInvalidCoordinate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Println("Error handling match request:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
