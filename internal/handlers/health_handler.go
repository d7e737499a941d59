package handlers

import (
	"encoding/json"
	"net/http"

	"wellen-backend/internal/health"
)

type HealthHandler struct {
	Checker *health.Checker
}

func NewHealthHandler(c *health.Checker) *HealthHandler {
	return &HealthHandler{Checker: c}
}

func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.Check()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}
