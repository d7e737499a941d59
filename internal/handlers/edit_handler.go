package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"wellen-backend/internal/services"

	"github.com/gorilla/mux"
)

// EditHandler exposes the inline-edit session of the submission list. A single
// session exists at a time; starting a new one silently replaces the old.
type EditHandler struct {
	Service *services.ReconcileService
}

func NewEditHandler(s *services.ReconcileService) *EditHandler {
	return &EditHandler{Service: s}
}

type adjustRequest struct {
	Delta int `json:"delta"`
}

func (h *EditHandler) StartEdit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	waveID, _ := strconv.Atoi(vars["id"])
	rowID := vars["rowId"]

	session, err := h.Service.StartEdit(r.Context(), waveID, rowID)
	if err != nil {
		if errors.Is(err, services.ErrRowNotFound) {
			http.Error(w, "Row not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

func (h *EditHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.Service.Adjust(token, req.Delta)
	if err != nil {
		h.sessionError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

func (h *EditHandler) Save(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	row, err := h.Service.Save(r.Context(), token)
	if err != nil {
		h.sessionError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(row)
}

func (h *EditHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	if err := h.Service.Cancel(token); err != nil {
		h.sessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RequestDelete arms deletion; nothing is removed until ConfirmDelete.
func (h *EditHandler) RequestDelete(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	session, err := h.Service.RequestDelete(token)
	if err != nil {
		h.sessionError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

func (h *EditHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	if err := h.Service.ConfirmDelete(r.Context(), token); err != nil {
		h.sessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EditHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	session, ok := h.Service.Current()
	if !ok {
		http.Error(w, "No active edit session", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

func (h *EditHandler) sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNoEditSession):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrStaleEditSession):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
