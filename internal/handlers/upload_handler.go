package handlers

import (
	"encoding/json"
	"net/http"

	"wellen-backend/internal/services"
)

// UploadHandler accepts base64 photo payloads and stores them in the R2
// bucket, returning the public URL.
type UploadHandler struct {
	Service *services.UploadService
}

func NewUploadHandler(s *services.UploadService) *UploadHandler {
	return &UploadHandler{Service: s}
}

type uploadRequest struct {
	Image  string `json:"image"` // base64, optionally a data URL
	Folder string `json:"folder,omitempty"`
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		http.Error(w, "Uploads not configured", http.StatusServiceUnavailable)
		return
	}

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Image == "" {
		http.Error(w, "Missing image", http.StatusBadRequest)
		return
	}
	if req.Folder == "" {
		req.Folder = "photos"
	}

	url, err := h.Service.Upload(r.Context(), req.Image, req.Folder)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}
