package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gaurav-prasanna/wikiplain/config"
	"github.com/gaurav-prasanna/wikiplain/core"
	"github.com/gaurav-prasanna/wikiplain/core/wikitext"
)

// Server is the HTTP conversion service.
type Server struct {
	router   chi.Router
	articles core.ArticleFetcher
	log      *slog.Logger
	cfg      config.Config

	stripping *wikitext.Converter
	keeping   *wikitext.Converter
}

// NewServer creates and configures the HTTP server.
func NewServer(articles core.ArticleFetcher, log *slog.Logger, cfg config.Config) *Server {
	strip, keep := cfg.Conversion(), cfg.Conversion()
	strip.StripReferencesSection = true
	s := &Server{
		articles:  articles,
		log:       log,
		cfg:       cfg,
		stripping: wikitext.NewConverter(strip),
		keeping:   wikitext.NewConverter(keep),
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

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Get("/article", s.handleArticle)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) converter(stripReferences bool) *wikitext.Converter {
	if stripReferences {
		return s.stripping
	}
	return s.keeping
}
