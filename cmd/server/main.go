package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"wellen-backend/internal/cache"
	"wellen-backend/internal/config"
	"wellen-backend/internal/database"
	"wellen-backend/internal/db"
	"wellen-backend/internal/handlers"
	"wellen-backend/internal/health"
	h "wellen-backend/internal/http"
	"wellen-backend/internal/live"
	"wellen-backend/internal/middleware"
	"wellen-backend/internal/monitoring"
	"wellen-backend/internal/repositories"
	"wellen-backend/internal/services"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer pool.Close()

	if err := database.NewMigrator(pool).RunMigrations(ctx); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	if err := cache.Init(cfg); err != nil {
		log.Printf("[Cache] Redis unavailable, caching disabled: %v", err)
	}

	// Monitoring dashboard on a side port
	if cfg.Monitoring.Port > 0 {
		go monitoring.NewServer(pool, cfg.Monitoring.Port).Start()
	}

	// Repositories
	waveRepo := repositories.NewWaveRepository(pool)
	submissionRepo := repositories.NewSubmissionRepository(pool)
	photoRepo := repositories.NewPhotoRepository(pool)
	actorRepo := repositories.NewActorRepository(pool)
	locationRepo := repositories.NewLocationRepository(pool)

	// Services
	waveService := services.NewWaveService(waveRepo)
	progressService := services.NewProgressService(waveRepo, submissionRepo, photoRepo)
	submissionService := services.NewSubmissionService(waveRepo, submissionRepo, photoRepo, actorRepo, locationRepo)
	reconcileService := services.NewReconcileService(submissionRepo)
	authoringService := services.NewAuthoringWizardService(waveService)
	onBehalfService := services.NewOnBehalfWizardService(waveRepo, actorRepo, locationRepo, submissionService)

	uploadService, err := services.NewUploadService(ctx, cfg)
	if err != nil {
		log.Printf("[Upload] R2 not configured, uploads disabled: %v", err)
	}

	// Live feed
	hub := live.NewHub()
	go hub.Run()
	submissionService.SetPublisher(hub)

	// Handlers
	waveHandler := handlers.NewWaveHandler(waveService)
	progressHandler := handlers.NewProgressHandler(progressService, submissionRepo)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	editHandler := handlers.NewEditHandler(reconcileService)
	authoringHandler := handlers.NewAuthoringWizardHandler(authoringService)
	onBehalfHandler := handlers.NewOnBehalfWizardHandler(onBehalfService)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	healthHandler := handlers.NewHealthHandler(health.NewChecker(pool, cache.Client()))

	router := h.NewRouter(
		waveHandler,
		progressHandler,
		submissionHandler,
		editHandler,
		authoringHandler,
		onBehalfHandler,
		uploadHandler,
		healthHandler,
		hub,
	)

	handler := middleware.PanicRecovery(middleware.NewCORS(cfg)(router))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Server] listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
