// Package api exposes the scoring and matching engine over HTTP.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hbracken/fedlease/pkg/config"
	"github.com/hbracken/fedlease/pkg/gql"
	"github.com/hbracken/fedlease/pkg/inventory"
	"github.com/hbracken/fedlease/pkg/logging"
	"github.com/hbracken/fedlease/pkg/matching"
	"github.com/hbracken/fedlease/pkg/metrics"
)

// Server is the HTTP API server over the property index, scorer and
// matcher.
type Server struct {
	mgr     *inventory.Manager
	matcher *matching.Matcher
	gqlh    *gql.Handler

	cfg       config.ServerConfig
	scoreCfg  config.ScoreConfig
	logger    logging.Logger
	reg       *metrics.Registry
	startTime time.Time
	version   string
}

// NewServer creates the API server. The manager may still be empty; the
// handlers report 503 until the first index build completes.
func NewServer(cfg *config.Config, mgr *inventory.Manager, logger logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	schema, err := gql.GenerateSchema(mgr)
	if err != nil {
		return nil, fmt.Errorf("graphql schema: %w", err)
	}

	return &Server{
		mgr:       mgr,
		matcher:   matching.NewMatcher(),
		gqlh:      gql.NewHandler(schema),
		cfg:       cfg.Server,
		scoreCfg:  cfg.Score,
		logger:    logger.With(logging.Component("api")),
		reg:       metrics.DefaultRegistry(),
		startTime: time.Now(),
		version:   "1.0.0",
	}, nil
}

// Handler builds the full route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", s.metricsHandler())

	mux.HandleFunc("/score", s.handleScore)
	mux.HandleFunc("/match", s.handleMatch)
	mux.HandleFunc("/extract", s.handleExtract)

	mux.HandleFunc("/properties/search", s.handleSearch)
	mux.HandleFunc("/properties/nearest", s.handleNearest)
	mux.HandleFunc("/properties/", s.handleProperty) // /properties/{id}

	mux.Handle("/graphql", s.gqlh)

	var h http.Handler = mux
	h = s.metricsMiddleware(h)
	h = s.corsMiddleware(h)
	h = s.loggingMiddleware(h)
	return h
}

// HTTPServer returns an http.Server with production timeouts applied.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:           fmt.Sprintf(":%d", s.cfg.Port),
		Handler:        s.Handler(),
		ReadTimeout:    s.cfg.ReadTimeout.Std(),
		WriteTimeout:   s.cfg.WriteTimeout.Std(),
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
}
