package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"wellen-backend/internal/models"
	"wellen-backend/internal/services"

	"github.com/gorilla/mux"
)

// ProgressHandler serves the evaluated progress views of a wave: the
// normalized report, the raw progress list and the grouped/row breakdowns.
type ProgressHandler struct {
	Progress    *services.ProgressService
	Submissions services.SubmissionStore
}

func NewProgressHandler(p *services.ProgressService, subs services.SubmissionStore) *ProgressHandler {
	return &ProgressHandler{Progress: p, Submissions: subs}
}

func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	progress, err := h.Progress.Progress(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(progress)
}

func (h *ProgressHandler) GetAllProgress(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	all, err := h.Progress.AllProgress(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(all)
}

func (h *ProgressHandler) GetByActor(w http.ResponseWriter, r *http.Request) {
	h.grouped(w, r, services.GroupByActor)
}

func (h *ProgressHandler) GetByDay(w http.ResponseWriter, r *http.Request) {
	h.grouped(w, r, services.GroupByDay)
}

func (h *ProgressHandler) grouped(w http.ResponseWriter, r *http.Request, group func([]models.Submission) []models.GroupSummary) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	subs, err := h.Submissions.ListByWave(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	summaries := group(subs)
	if summaries == nil {
		summaries = []models.GroupSummary{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}

// GetRows returns the display rows of the submission list: flat submissions
// one row each, container batches folded into composite rows.
func (h *ProgressHandler) GetRows(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	subs, err := h.Submissions.ListByWave(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rows := services.BuildRows(subs)
	if rows == nil {
		rows = []models.SubmissionRow{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}
