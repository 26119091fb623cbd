package routes

import (
	"midway_server/controllers"
	"midway_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for the match lifecycle under /api/match
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/match").Subrouter()

	matchRouter.HandleFunc("/create", controller.HandleCreate).Methods("POST")
	matchRouter.HandleFunc("/attachCandidate", controller.HandleAttachCandidate).Methods("POST")
	matchRouter.HandleFunc("/respond", controller.HandleRespond).Methods("POST")
	matchRouter.HandleFunc("/confirmArrival", controller.HandleConfirmArrival).Methods("POST")
	matchRouter.HandleFunc("/cancel", controller.HandleCancel).Methods("POST")
	matchRouter.HandleFunc("/active", controller.HandleActive).Methods("GET")
	matchRouter.HandleFunc("/{matchId}", controller.HandleGet).Methods("GET")
}
