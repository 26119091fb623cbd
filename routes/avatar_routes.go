package routes

import (
	"midway_server/controllers"
	"midway_server/services"

	"github.com/gorilla/mux"
)

// RegisterAvatarRoutes sets up routes for avatar uploads under /api/avatar
func RegisterAvatarRoutes(r *mux.Router, avatarService *services.AvatarService) {
	controller := controllers.NewAvatarController(avatarService)

	avatarRouter := r.PathPrefix("/api/avatar").Subrouter()

	avatarRouter.HandleFunc("/uploadURL", controller.HandleUploadURL).Methods("POST")
	avatarRouter.HandleFunc("/readURL", controller.HandleReadURL).Methods("GET")
}
