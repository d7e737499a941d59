package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"wellen-backend/internal/models"
	"wellen-backend/internal/repositories"
	"wellen-backend/internal/services"

	"github.com/gorilla/mux"
)

type SubmissionHandler struct {
	Service *services.SubmissionService
}

func NewSubmissionHandler(s *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{Service: s}
}

func (h *SubmissionHandler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	waveID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.BatchSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	count, err := h.Service.SubmitBatch(r.Context(), waveID, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrWaveNotFound) {
			http.Error(w, "Wave not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int{"count": count})
}

func (h *SubmissionHandler) UpdateSubmission(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.UpdateQuantity(r.Context(), id, req.Quantity); err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			http.Error(w, "Submission not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SubmissionHandler) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			http.Error(w, "Submission not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
