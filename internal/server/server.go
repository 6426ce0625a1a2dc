package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"signalscout/internal/adapter/storage"
	"signalscout/internal/config"
	"signalscout/internal/server/handlers"
	"signalscout/internal/service/analysis"
	"signalscout/internal/service/generation"
	"signalscout/internal/service/ingest"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// Deps bundles the services the API surfaces.
type Deps struct {
	TrendStore   *storage.TrendStore
	PatternStore *storage.PatternStore
	Query        *analysis.QueryService
	Reporter     *analysis.Reporter
	Analyzer     *analysis.PatternAnalyzer
	Ingest       *ingest.Service
	Generator    *generation.Generator
	VoiceTrainer *generation.VoiceTrainer
	EventBus     *nats.Conn
	Log          *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg config.ServerConfig, deps Deps) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies. The nil checks keep an unconfigured
	// generator from becoming a non-nil interface holding a nil pointer.
	var contentGen handlers.ContentGenerator
	if deps.Generator != nil {
		contentGen = deps.Generator
	}
	var voiceTrainer handlers.VoiceTrainer
	if deps.VoiceTrainer != nil {
		voiceTrainer = deps.VoiceTrainer
	}

	trendHandler := handlers.NewTrendHandler(deps.Query, deps.TrendStore, deps.Ingest)
	analyticsHandler := handlers.NewAnalyticsHandler(deps.Reporter, deps.Analyzer, deps.PatternStore)
	contentHandler := handlers.NewContentHandler(contentGen, voiceTrainer)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Trends API
			r.Route("/trends", func(r chi.Router) {
				r.Get("/", trendHandler.GetTrending)
				r.Get("/recommendations", trendHandler.GetRecommendations)
				r.Get("/{id}", trendHandler.GetTrend)
				r.Post("/reddit", trendHandler.IngestReddit)
				r.Post("/youtube", trendHandler.IngestYouTube)
				r.Post("/twitter", trendHandler.IngestTwitter)
			})

			// Analytics API
			r.Route("/analytics", func(r chi.Router) {
				r.Get("/virality", analyticsHandler.GetViralityAnalytics)
				r.Get("/patterns", analyticsHandler.ListPatterns)
				r.Post("/patterns", analyticsHandler.AnalyzePatterns)
			})

			// Content API
			r.Route("/content", func(r chi.Router) {
				r.Post("/generate", contentHandler.Generate)
				r.Get("/vault", contentHandler.Vault)
				r.Post("/{id}/used", contentHandler.MarkUsed)
			})

			// Brand voice API
			r.Post("/brand-voice/train", contentHandler.TrainVoice)
		})
	})

	// WebSocket endpoint for the live trend feed
	router.Get("/ws/trends", handlers.TrendWebSocketHandler(deps.EventBus, deps.Log))

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
