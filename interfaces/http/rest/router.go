// Package rest assembles the HTTP API.
package rest

import (
	"net/http"

	"wordaday-backend/infrastructure/di"
	"wordaday-backend/interfaces/http/rest/handlers"
	"wordaday-backend/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router.
type Router struct {
	container *di.Container
	logger    *zap.Logger
}

// NewRouter creates a router over the wired container.
func NewRouter(container *di.Container) *Router {
	return &Router{container: container, logger: container.Logger}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.container.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.onewordaday.app"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.container.JWTValidator, rt.logger))

		wordHandler := handlers.NewWordHandler(rt.container.Orchestrator, rt.logger)
		historyHandler := handlers.NewHistoryHandler(rt.container.HistoryService, rt.logger)
		feedbackHandler := handlers.NewFeedbackHandler(rt.container.FeedbackProcessor, rt.logger)
		profileHandler := handlers.NewProfileHandler(rt.container.Profiles, rt.logger)

		r.Route("/words", func(r chi.Router) {
			r.Get("/today", wordHandler.GetTodaysWord)
			r.Get("/history", historyHandler.GetHistory)
		})
		r.Post("/feedback", feedbackHandler.SubmitFeedback)
		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profileHandler.GetProfile)
			r.Put("/", profileHandler.UpdateProfile)
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
