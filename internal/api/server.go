package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/proposaltoc/internal/catalog"
	"github.com/dgallion1/proposaltoc/internal/config"
	"github.com/dgallion1/proposaltoc/internal/generation"
	"github.com/dgallion1/proposaltoc/internal/session"
	"github.com/dgallion1/proposaltoc/internal/suggest"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for proposal outline curation.
type Server struct {
	router    chi.Router
	sessions  *session.Manager
	catalog   *catalog.Catalog
	suggester *suggest.Suggester // nil when suggestions are disabled
	generator *generation.Client
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server. suggester may be nil.
func NewServer(sessions *session.Manager, cat *catalog.Catalog, suggester *suggest.Suggester, gen *generation.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		sessions:  sessions,
		catalog:   cat,
		suggester: suggester,
		generator: gen,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Get("/api/templates", s.handleListTemplates)
		r.Post("/api/templates/learn", s.handleLearnTemplate)
		r.Get("/api/templates/{templateID}/preview", s.handlePreviewTemplate)
		r.Delete("/api/templates/{templateID}", s.handleDeleteTemplate)

		r.Post("/api/sessions", s.handleCreateSession)
		r.Post("/api/sessions/upload", s.handleUploadSession)
		r.Post("/api/sessions/suggest", s.handleSuggestSession)

		r.Route("/api/sessions/{sessionID}", func(r chi.Router) {
			r.Use(s.sessionCtx)

			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)

			r.Post("/sections", s.handleAddSection)
			r.Patch("/sections/{sectionID}", s.handleUpdateSection)
			r.Delete("/sections/{sectionID}", s.handleRemoveSection)
			r.Post("/sections/{sectionID}/accept", s.handleAccept)
			r.Post("/sections/{sectionID}/reject", s.handleReject)

			r.Post("/reorder", s.handleReorder)
			r.Post("/nest", s.handleNest)
			r.Post("/promote", s.handlePromote)

			r.Post("/drag/start", s.handleDragStart)
			r.Post("/drag/hover", s.handleDragHover)
			r.Post("/drag/drop", s.handleDragDrop)
			r.Post("/drag/cancel", s.handleDragCancel)

			r.Post("/undo", s.handleUndo)
			r.Post("/shortcut", s.handleShortcut)

			r.Get("/outline", s.handleOutline)
			r.Post("/generate", s.handleGenerate)
			r.Post("/generation/{control}", s.handleGenerationControl)

			r.Get("/events", s.handleEvents)
		})

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
