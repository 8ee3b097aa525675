package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"bskyreport/pkg/bluesky"
	"bskyreport/pkg/config"
	"bskyreport/pkg/logger"
	"bskyreport/pkg/report"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server is the web front end for the Bluesky reporter. It serves a
// search form, rendered HTML reports, a JSON API, and an engagement chart.
type Server struct {
	cfg    *config.Config
	client *bluesky.Client
	logger logger.Logger
	tmpl   *template.Template
	mux    *http.ServeMux
}

// UserReport is the web-facing report shape: identity, full summaries
// (including text and relative dates), and a success flag.
type UserReport struct {
	Success   bool             `json:"success"`
	User      *bluesky.Profile `json:"user"`
	Posts     []report.Summary `json:"posts"`
	PostCount int              `json:"post_count"`
}

// NewServer creates the web server and registers its routes
func NewServer(cfg *config.Config, client *bluesky.Client, log logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	funcMap := template.FuncMap{
		"comma": func(n int) string { return humanize.Comma(int64(n)) },
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		client: client,
		logger: log,
		tmpl:   tmpl,
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /report", s.handleReport)
	s.mux.HandleFunc("GET /api/report/{handle}", s.handleAPIReport)
	s.mux.HandleFunc("GET /chart", s.handleChart)

	return s, nil
}

// Handler returns the server's HTTP handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start runs the HTTP server on the configured address, blocking until
// the server stops.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	s.logger.WithField("addr", s.cfg.Server.Addr).Info("starting web server")
	return srv.ListenAndServe()
}

// buildUserReport resolves the handle and assembles the full web report.
// Resolution failure is the only hard error; fetch failures mid-pagination
// still produce a report with whatever was accumulated.
func (s *Server) buildUserReport(handle string, limit int) (*UserReport, error) {
	actor := bluesky.NormalizeActor(handle)

	profile, err := s.client.FetchProfile(actor)
	if err != nil {
		return nil, err
	}

	entries := s.client.FetchAuthorPosts(profile.DID, limit)

	rep := report.Build(profile.DID, profile.Handle, entries, time.Now())

	return &UserReport{
		Success:   true,
		User:      profile,
		Posts:     rep.Posts,
		PostCount: rep.PostCount,
	}, nil
}

// clampLimit normalizes a user-supplied limit against the configured bounds
func (s *Server) clampLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.Server.DefaultLimit
	}
	if limit > s.cfg.Server.MaxLimit {
		return s.cfg.Server.MaxLimit
	}
	return limit
}
