package routes

import (
	"midway_server/controllers"
	"midway_server/services"

	"github.com/gorilla/mux"
)

// RegisterProximityRoutes sets up routes for marker disambiguation
func RegisterProximityRoutes(r *mux.Router, presenceService *services.PresenceService, proximityService *services.ProximityService) {
	controller := controllers.NewProximityController(presenceService, proximityService)

	r.HandleFunc("/api/proximity/pairs", controller.HandlePairs).Methods("GET")
}
