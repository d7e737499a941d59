package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"wellen-backend/internal/models"
	"wellen-backend/internal/services"
	"wellen-backend/internal/timeutil"
	"wellen-backend/internal/wizard"

	"github.com/gorilla/mux"
)

type OnBehalfWizardHandler struct {
	Service *services.OnBehalfWizardService
}

func NewOnBehalfWizardHandler(s *services.OnBehalfWizardService) *OnBehalfWizardHandler {
	return &OnBehalfWizardHandler{Service: s}
}

type onBehalfEventRequest struct {
	Event      string               `json:"event"`
	ActorID    int                  `json:"actor_id,omitempty"`
	LocationID int                  `json:"location_id,omitempty"`
	LineIndex  int                  `json:"line_index,omitempty"`
	Quantity   int                  `json:"quantity,omitempty"`
	Photo      *models.PhotoCapture `json:"photo,omitempty"`
	Index      int                  `json:"index,omitempty"`
	Timestamp  string               `json:"timestamp,omitempty"`
}

func (req *onBehalfEventRequest) toEvent() (wizard.OnBehalfEvent, error) {
	switch req.Event {
	case "select_actor":
		return wizard.SelectActor{ActorID: req.ActorID}, nil
	case "select_location":
		return wizard.SelectLocation{LocationID: req.LocationID}, nil
	case "set_quantity":
		return wizard.SetQuantity{LineIndex: req.LineIndex, Quantity: req.Quantity}, nil
	case "add_photo":
		if req.Photo == nil {
			return nil, errors.New("missing photo")
		}
		return wizard.AddPhoto{Photo: *req.Photo}, nil
	case "remove_photo":
		return wizard.RemovePhoto{Index: req.Index}, nil
	case "set_timestamp":
		at, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			at, err = timeutil.ParseInBerlin(timeutil.DateTimeLayout, req.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("invalid timestamp: %s", req.Timestamp)
			}
		}
		return wizard.SetTimestamp{At: at}, nil
	case "next":
		return wizard.NextOB{}, nil
	case "back":
		return wizard.BackOB{}, nil
	case "cancel":
		return wizard.CancelOB{}, nil
	}
	return nil, fmt.Errorf("unknown event: %s", req.Event)
}

func (h *OnBehalfWizardHandler) StartWizard(w http.ResponseWriter, r *http.Request) {
	waveID, _ := strconv.Atoi(mux.Vars(r)["id"])

	session, err := h.Service.Start(r.Context(), waveID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(session)
}

func (h *OnBehalfWizardHandler) GetWizard(w http.ResponseWriter, r *http.Request) {
	session, err := h.Service.Get(mux.Vars(r)["sessionId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

func (h *OnBehalfWizardHandler) ListActors(w http.ResponseWriter, r *http.Request) {
	actors, err := h.Service.ListActors(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if actors == nil {
		actors = []models.Actor{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(actors)
}

// ListLocations returns the wave's stores split into the selected actor's own
// stores and the rest, optionally filtered by ?q= substring search.
func (h *OnBehalfWizardHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Service.ListLocations(r.Context(), mux.Vars(r)["sessionId"], r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, services.ErrWizardSessionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(locations)
}

func (h *OnBehalfWizardHandler) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	var req onBehalfEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	ev, err := req.toEvent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.Service.Apply(mux.Vars(r)["sessionId"], ev)
	if err != nil {
		if errors.Is(err, services.ErrWizardSessionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

// Submit persists the batched entries of the confirm step and closes the
// session.
func (h *OnBehalfWizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.Submit(r.Context(), mux.Vars(r)["sessionId"])
	if err != nil {
		if errors.Is(err, services.ErrWizardSessionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}
