package main

import (
	"net/http"

	"feedback-backend/internal/config"
	"feedback-backend/internal/database"
	"feedback-backend/internal/handlers"
	"feedback-backend/internal/logging"
	"feedback-backend/internal/metrics"
	customMiddleware "feedback-backend/internal/middleware"
	"feedback-backend/internal/notify"
	"feedback-backend/internal/repository"
	"feedback-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load .env (ignore error in production — env vars set directly)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	instanceID := uuid.NewString()
	logger := logging.Setup(cfg.LogLevel, cfg.LogFile).With().
		Str("service", "feedback-backend").
		Str("instance_id", instanceID).
		Logger()

	// Open the single-file store; the handle is owned here and injected
	// downward, released on shutdown.
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("failed to open database")
	}
	defer db.Close()
	logger.Info().Str("path", cfg.DatabasePath).Msg("database initialized")

	// Metrics registry, exposed at /metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Wiring: repo → service → handlers
	feedbackRepo := repository.NewFeedbackRepo(db)
	notifier := notify.NewLogNotifier(logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, m, notifier, logger, cfg.MaxMessageLength)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, logger)
	healthHandler := handlers.NewHealthHandler(feedbackService, instanceID, logger)

	// Setup chi router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(customMiddleware.RequestLogger(logger))
	r.Use(customMiddleware.Instrument(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", healthHandler.Check)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Post("/feedback", feedbackHandler.CreateFeedback)
	r.Get("/feedback", feedbackHandler.ListFeedback)
	r.Get("/feedback/{id}", feedbackHandler.GetFeedback)
	r.Put("/feedback/{id}", feedbackHandler.UpdateFeedback)
	r.Delete("/feedback/{id}", feedbackHandler.DeleteFeedback)

	logger.Info().Str("addr", cfg.Addr()).Msg("feedback backend starting")
	if err := http.ListenAndServe(cfg.Addr(), r); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
