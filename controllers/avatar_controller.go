package controllers

import (
	"encoding/json"
	"net/http"

	"midway_server/services"
)

// AvatarController handles presigned URL requests for avatar images
type AvatarController struct {
	AvatarService *services.AvatarService
}

// NewAvatarController creates a new AvatarController instance
func NewAvatarController(avatarService *services.AvatarService) *AvatarController {
	return &AvatarController{AvatarService: avatarService}
}

// HandleUploadURL returns a presigned PUT URL for a new avatar
func (ac *AvatarController) HandleUploadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.FileName == "" || request.FileType == "" {
		http.Error(w, "fileName and fileType are required", http.StatusBadRequest)
		return
	}

	url, key, err := ac.AvatarService.GenerateUploadURL(r.Context(), request.FileName, request.FileType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"uploadURL": url,
		"avatarRef": key,
	})
}

// HandleReadURL returns a presigned GET URL for an avatar key
func (ac *AvatarController) HandleReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "key is required", http.StatusBadRequest)
		return
	}

	url, err := ac.AvatarService.GenerateReadURL(r.Context(), key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"readURL": url,
	})
}
