package routes

import (
	"midway_server/controllers"
	"midway_server/services"

	"github.com/gorilla/mux"
)

// RegisterPresenceRoutes sets up routes for the presence registry under /api/presence
func RegisterPresenceRoutes(r *mux.Router, presenceService *services.PresenceService) {
	controller := controllers.NewPresenceController(presenceService)

	presenceRouter := r.PathPrefix("/api/presence").Subrouter()

	presenceRouter.HandleFunc("/update", controller.HandleUpdate).Methods("POST")
	presenceRouter.HandleFunc("/offline", controller.HandleOffline).Methods("POST")
	presenceRouter.HandleFunc("/snapshot", controller.HandleSnapshot).Methods("GET")
	presenceRouter.HandleFunc("/{userId}", controller.HandleGet).Methods("GET")
}
