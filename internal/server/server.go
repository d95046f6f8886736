// Package server exposes the timeline over HTTP: CRUD for chapters and
// events, the combined timeline-data endpoint, the derived layout, and the
// rendered SVG.
package server

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mpetrov/lifeline/internal/config"
	"github.com/mpetrov/lifeline/internal/presentation/layout"
	"github.com/mpetrov/lifeline/internal/store"
	"github.com/mpetrov/lifeline/internal/util"
)

// Server is the main HTTP server.
type Server struct {
	store  *store.Store
	router chi.Router

	mu             sync.RWMutex
	layoutCfg      layout.Config
	viewportHeight float64
	viewportWidth  float64
}

// New creates a server over the given store and configuration.
func New(st *store.Store, cfg config.Config) *Server {
	s := &Server{
		store:          st,
		layoutCfg:      cfg.Layout,
		viewportHeight: cfg.Viewport.Height,
		viewportWidth:  cfg.Viewport.Width,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Route("/api", func(r chi.Router) {
		r.Get("/chapters", s.handleListChapters)
		r.Post("/chapters", s.handleCreateChapter)
		r.Get("/chapters/{id}", s.handleGetChapter)
		r.Patch("/chapters/{id}", s.handleUpdateChapter)
		r.Delete("/chapters/{id}", s.handleDeleteChapter)

		r.Get("/events", s.handleListEvents)
		r.Post("/events", s.handleCreateEvent)
		r.Get("/events/{id}", s.handleGetEvent)
		r.Patch("/events/{id}", s.handleUpdateEvent)
		r.Delete("/events/{id}", s.handleDeleteEvent)

		r.Get("/timeline-data", s.handleTimelineData)
		r.Get("/layout", s.handleLayout)
	})

	r.Get("/render.svg", s.handleRenderSVG)

	s.router = r
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	util.LogInfof("server listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// SetLayoutConfig swaps the layout spacing, used by config live-reload.
// Positions are derived per request, so the next render picks it up.
func (s *Server) SetLayoutConfig(cfg layout.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layoutCfg = cfg
}

func (s *Server) engine() *layout.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return layout.NewEngine(s.layoutCfg)
}

func (s *Server) viewport() (height, width float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewportHeight, s.viewportWidth
}
