package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/liftline/liftline/internal/ingest/backup"
	"github.com/liftline/liftline/internal/ingest/setlog"
	"github.com/liftline/liftline/internal/storage"
	"tailscale.com/client/local"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	backup *backup.Provider
	setlog *setlog.Provider
	log    *slog.Logger
	apiKey string
	router chi.Router

	lc *local.Client // nil outside tsnet mode
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, backupProvider *backup.Provider, setlogProvider *setlog.Provider, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		backup: backupProvider,
		setlog: setlogProvider,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetTailscale switches identity resolution from the dev fallback to
// Tailscale WhoIs lookups. Must be called before the server starts serving.
func (s *Server) SetTailscale(lc *local.Client) {
	s.lc = lc
}

// SetMCP mounts the MCP streamable HTTP handler at /mcp. Must be called
// before the server starts serving.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	// Ingest endpoints (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handleBackupIngest)
		r.Post("/csv", s.handleSetLogIngest)
	})

	// Dashboard API endpoints (no extra auth — tsnet handles access)
	s.router.Get("/api/v1/me", s.handleMe)
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/exercises/series", s.handleExerciseSeries)
	s.router.Get("/api/v1/exercises/repmax", s.handleRepMaxCurve)
	s.router.Get("/api/v1/sets", s.handleQuerySets)
	s.router.Get("/api/v1/workouts", s.handleQueryWorkouts)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
	s.router.Get("/api/v1/summary", s.handleTrainingSummary)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/imports", s.handleImportLogs)
	s.router.Get("/api/v1/settings", s.handleGetSettings)
	s.router.Put("/api/v1/settings", s.handlePutSettings)
}
