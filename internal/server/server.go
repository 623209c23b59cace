package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/liftarena/internal/catalog"
	"github.com/claude/liftarena/internal/narrative"
	"github.com/claude/liftarena/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	catalog  *catalog.Provider
	narrator *narrative.Client
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, provider *catalog.Provider, narrator *narrative.Client, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		catalog:  provider,
		narrator: narrator,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Write endpoints (API key required). Ingest accepts the voice/LLM
	// extractor's structured output.
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/ingest", s.handleIngest)
		r.Delete("/api/v1/workouts/{id}", s.handleDeleteWorkout)
		r.Put("/api/v1/users/{login}/weight", s.handleSetWeight)
		r.Post("/api/v1/catalog/refresh", s.handleCatalogRefresh)
	})

	// Read endpoints
	s.router.Get("/api/v1/users/{login}", s.handleGetUser)
	s.router.Get("/api/v1/workouts", s.handleQueryWorkouts)
	s.router.Get("/api/v1/records", s.handleRecords)
	s.router.Post("/api/v1/arena", s.handleArena)
	s.router.Get("/api/v1/catalog", s.handleCatalog)
	s.router.Get("/api/v1/catalog/resolve", s.handleResolve)
	s.router.Get("/api/v1/volume/summary", s.handleVolumeSummary)
	s.router.Get("/api/v1/stats", s.handleStats)
}
