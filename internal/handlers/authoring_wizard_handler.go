package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"wellen-backend/internal/models"
	"wellen-backend/internal/services"
	"wellen-backend/internal/wizard"

	"github.com/gorilla/mux"
)

type AuthoringWizardHandler struct {
	Service *services.AuthoringWizardService
}

func NewAuthoringWizardHandler(s *services.AuthoringWizardService) *AuthoringWizardHandler {
	return &AuthoringWizardHandler{Service: s}
}

// authoringEventRequest is the wire envelope for wizard events; the event
// field selects which of the remaining fields are read.
type authoringEventRequest struct {
	Event       string                `json:"event"`
	Types       []models.ItemType     `json:"types,omitempty"`
	Metadata    *waveMetadata         `json:"metadata,omitempty"`
	ItemType    models.ItemType       `json:"item_type,omitempty"`
	Item        *models.Item          `json:"item,omitempty"`
	ItemID      int                   `json:"item_id,omitempty"`
	Container   *models.ContainerItem `json:"container,omitempty"`
	ContainerID int                   `json:"container_id,omitempty"`
	Entry       *models.ScheduleEntry `json:"entry,omitempty"`
	Index       int                   `json:"index,omitempty"`
}

type waveMetadata struct {
	Name           string          `json:"name"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	GoalType       models.GoalType `json:"goal_type"`
	GoalPercentage float64         `json:"goal_percentage"`
	GoalValue      float64         `json:"goal_value"`
	PhotoOnly      bool            `json:"photo_only"`
	LocationIDs    []int           `json:"location_ids"`
}

func (req *authoringEventRequest) toEvent() (wizard.AuthoringEvent, error) {
	switch req.Event {
	case "select_types":
		return wizard.SelectTypes{Types: req.Types}, nil
	case "set_metadata":
		if req.Metadata == nil {
			return nil, errors.New("missing metadata")
		}
		m := req.Metadata
		return wizard.SetMetadata{
			Name:           m.Name,
			StartDate:      m.StartDate,
			EndDate:        m.EndDate,
			GoalType:       m.GoalType,
			GoalPercentage: m.GoalPercentage,
			GoalValue:      m.GoalValue,
			PhotoOnly:      m.PhotoOnly,
			LocationIDs:    m.LocationIDs,
		}, nil
	case "add_item":
		if req.Item == nil {
			return nil, errors.New("missing item")
		}
		return wizard.AddItem{Type: req.ItemType, Item: *req.Item}, nil
	case "remove_item":
		return wizard.RemoveItem{Type: req.ItemType, ItemID: req.ItemID}, nil
	case "add_container":
		if req.Container == nil {
			return nil, errors.New("missing container")
		}
		return wizard.AddContainer{Type: req.ItemType, Container: *req.Container}, nil
	case "remove_container":
		return wizard.RemoveContainer{Type: req.ItemType, ContainerID: req.ContainerID}, nil
	case "add_schedule":
		if req.Entry == nil {
			return nil, errors.New("missing entry")
		}
		return wizard.AddSchedule{Entry: *req.Entry}, nil
	case "remove_schedule":
		return wizard.RemoveSchedule{Index: req.Index}, nil
	case "next":
		return wizard.Next{}, nil
	case "back":
		return wizard.Back{}, nil
	case "cancel":
		return wizard.Cancel{}, nil
	}
	return nil, fmt.Errorf("unknown event: %s", req.Event)
}

// StartWizard opens a create flow, or an edit flow when wave_id is given.
func (h *AuthoringWizardHandler) StartWizard(w http.ResponseWriter, r *http.Request) {
	var session services.AuthoringSession
	if waveIDStr := r.URL.Query().Get("wave_id"); waveIDStr != "" {
		waveID, _ := strconv.Atoi(waveIDStr)
		var err error
		session, err = h.Service.StartEdit(r.Context(), waveID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	} else {
		session = h.Service.Start()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(session)
}

func (h *AuthoringWizardHandler) GetWizard(w http.ResponseWriter, r *http.Request) {
	session, err := h.Service.Get(mux.Vars(r)["sessionId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(session)
}

func (h *AuthoringWizardHandler) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	var req authoringEventRequest
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

// FinishWizard persists the authored wave and closes the session.
func (h *AuthoringWizardHandler) FinishWizard(w http.ResponseWriter, r *http.Request) {
	wave, err := h.Service.Finish(r.Context(), mux.Vars(r)["sessionId"])
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
	json.NewEncoder(w).Encode(wave)
}
