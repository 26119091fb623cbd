package routes

import (
	"midway_server/controllers"
	"midway_server/services"

	"github.com/gorilla/mux"
)

// RegisterCandidateRoutes sets up routes for meeting-point candidates
func RegisterCandidateRoutes(r *mux.Router, candidateService *services.CandidateService) {
	controller := controllers.NewCandidateController(candidateService)

	r.HandleFunc("/api/candidates", controller.HandleGetCandidates).Methods("GET")
}
