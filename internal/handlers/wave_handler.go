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

type WaveHandler struct {
	Service *services.WaveService
}

func NewWaveHandler(s *services.WaveService) *WaveHandler {
	return &WaveHandler{Service: s}
}

func (h *WaveHandler) ListWaves(w http.ResponseWriter, r *http.Request) {
	waves, err := h.Service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if waves == nil {
		waves = []models.WaveListItem{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(waves)
}

func (h *WaveHandler) GetWave(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	wave, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrWaveNotFound) {
			http.Error(w, "Wave not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(wave)
}

func (h *WaveHandler) CreateWave(w http.ResponseWriter, r *http.Request) {
	var wave models.Wave
	if err := json.NewDecoder(r.Body).Decode(&wave); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Service.Create(r.Context(), &wave); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(wave)
}

func (h *WaveHandler) UpdateWave(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var wave models.Wave
	if err := json.NewDecoder(r.Body).Decode(&wave); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	wave.ID = id
	if err := h.Service.Update(r.Context(), &wave); err != nil {
		if errors.Is(err, repositories.ErrWaveNotFound) {
			http.Error(w, "Wave not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(wave)
}

func (h *WaveHandler) DeleteWave(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrWaveNotFound) {
			http.Error(w, "Wave not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
