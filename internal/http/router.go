package http

import (
	"wellen-backend/internal/handlers"
	"wellen-backend/internal/live"
	"wellen-backend/internal/middleware"

	"github.com/gorilla/mux"
)

func NewRouter(
	waveHandler *handlers.WaveHandler,
	progressHandler *handlers.ProgressHandler,
	submissionHandler *handlers.SubmissionHandler,
	editHandler *handlers.EditHandler,
	authoringHandler *handlers.AuthoringWizardHandler,
	onBehalfHandler *handlers.OnBehalfWizardHandler,
	uploadHandler *handlers.UploadHandler,
	healthHandler *handlers.HealthHandler,
	hub *live.Hub,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	r.HandleFunc("/health", healthHandler.GetHealth).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Wave catalog
	api.HandleFunc("/wellen", waveHandler.ListWaves).Methods("GET")
	api.HandleFunc("/wellen", waveHandler.CreateWave).Methods("POST")
	api.HandleFunc("/wellen/{id:[0-9]+}", waveHandler.GetWave).Methods("GET")
	api.HandleFunc("/wellen/{id:[0-9]+}", waveHandler.UpdateWave).Methods("PUT")
	api.HandleFunc("/wellen/{id:[0-9]+}", waveHandler.DeleteWave).Methods("DELETE")

	// Progress views
	api.HandleFunc("/wellen/{id:[0-9]+}/progress", progressHandler.GetProgress).Methods("GET")
	api.HandleFunc("/wellen/{id:[0-9]+}/all-progress", progressHandler.GetAllProgress).Methods("GET")
	api.HandleFunc("/wellen/{id:[0-9]+}/progress/by-actor", progressHandler.GetByActor).Methods("GET")
	api.HandleFunc("/wellen/{id:[0-9]+}/progress/by-day", progressHandler.GetByDay).Methods("GET")
	api.HandleFunc("/wellen/{id:[0-9]+}/progress/rows", progressHandler.GetRows).Methods("GET")

	// Submissions
	api.HandleFunc("/wellen/{id:[0-9]+}/progress/batch", submissionHandler.SubmitBatch).Methods("POST")
	api.HandleFunc("/wellen/submissions/{id:[0-9]+}", submissionHandler.UpdateSubmission).Methods("PUT")
	api.HandleFunc("/wellen/submissions/{id:[0-9]+}", submissionHandler.DeleteSubmission).Methods("DELETE")

	// Inline edit of the submission list
	api.HandleFunc("/wellen/{id:[0-9]+}/edit/{rowId}", editHandler.StartEdit).Methods("POST")
	api.HandleFunc("/wellen/edit", editHandler.GetCurrent).Methods("GET")
	api.HandleFunc("/wellen/edit/{token}/adjust", editHandler.Adjust).Methods("POST")
	api.HandleFunc("/wellen/edit/{token}/save", editHandler.Save).Methods("POST")
	api.HandleFunc("/wellen/edit/{token}/cancel", editHandler.Cancel).Methods("POST")
	api.HandleFunc("/wellen/edit/{token}/delete", editHandler.RequestDelete).Methods("POST")
	api.HandleFunc("/wellen/edit/{token}/confirm-delete", editHandler.ConfirmDelete).Methods("POST")

	// Wave authoring wizard
	api.HandleFunc("/wizard/authoring", authoringHandler.StartWizard).Methods("POST")
	api.HandleFunc("/wizard/authoring/{sessionId}", authoringHandler.GetWizard).Methods("GET")
	api.HandleFunc("/wizard/authoring/{sessionId}/events", authoringHandler.ApplyEvent).Methods("POST")
	api.HandleFunc("/wizard/authoring/{sessionId}/finish", authoringHandler.FinishWizard).Methods("POST")

	// On-behalf submission wizard
	api.HandleFunc("/wellen/{id:[0-9]+}/wizard/onbehalf", onBehalfHandler.StartWizard).Methods("POST")
	api.HandleFunc("/wizard/onbehalf/{sessionId}", onBehalfHandler.GetWizard).Methods("GET")
	api.HandleFunc("/wizard/onbehalf/{sessionId}/actors", onBehalfHandler.ListActors).Methods("GET")
	api.HandleFunc("/wizard/onbehalf/{sessionId}/locations", onBehalfHandler.ListLocations).Methods("GET")
	api.HandleFunc("/wizard/onbehalf/{sessionId}/events", onBehalfHandler.ApplyEvent).Methods("POST")
	api.HandleFunc("/wizard/onbehalf/{sessionId}/submit", onBehalfHandler.Submit).Methods("POST")

	// Photo uploads
	api.HandleFunc("/wellen/upload-image", uploadHandler.Upload).Methods("POST")

	// Live submission feed
	r.HandleFunc("/ws/live", hub.HandleWS)

	return r
}
