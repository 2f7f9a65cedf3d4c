package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hbracken/fedlease/pkg/extraction"
	"github.com/hbracken/fedlease/pkg/logging"
	"github.com/hbracken/fedlease/pkg/matching"
	"github.com/hbracken/fedlease/pkg/scoring"
)

// HealthResponse is the body of the /health endpoint.
type HealthResponse struct {
	Status        string    `json:"status"`
	Version       string    `json:"version"`
	UptimeSeconds float64   `json:"uptimeSeconds"`
	Properties    int       `json:"properties"`
	IndexReady    bool      `json:"indexReady"`
	LastRefresh   time.Time `json:"lastRefresh,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	s.reg.UpdateSystemMetrics(s.startTime)

	ready := s.mgr.Index() != nil
	status := "ok"
	if !ready {
		status = "starting"
	}
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:        status,
		Version:       s.version,
		UptimeSeconds: time.Since(s.startTime).Seconds(),
		Properties:    s.mgr.Size(),
		IndexReady:    ready,
		LastRefresh:   s.mgr.LastRefresh(),
	})
}

func (s *Server) metricsHandler() http.Handler {
	return promhttp.HandlerFor(s.reg.GetPrometheusRegistry(), promhttp.HandlerOpts{})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	lat, lng, ok := s.coordParams(w, r)
	if !ok {
		return
	}
	radius := s.scoreCfg.DefaultRadiusMiles
	if v := r.URL.Query().Get("radius"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			s.respondError(w, http.StatusBadRequest, "radius must be a positive number")
			return
		}
		radius = parsed
	}

	index := s.mgr.Index()
	if index == nil {
		s.respondError(w, http.StatusServiceUnavailable, "property index not ready")
		return
	}

	start := time.Now()
	score, err := scoring.CalculateNeighborhoodScore(index, lat, lng, radius)
	if err != nil {
		s.reg.RecordScore(0, "", time.Since(start), err)
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.reg.RecordScore(score.Score, score.Grade, time.Since(start), nil)

	s.logger.Debug("score computed",
		logging.Coordinates(lat, lng),
		logging.RadiusMiles(radius),
		logging.Score(score.Score),
		logging.Grade(score.Grade),
	)
	s.respondJSON(w, http.StatusOK, score)
}

// MatchRequest is a property-opportunity pairing to evaluate. Experience
// is optional.
type MatchRequest struct {
	Property    *matching.PropertyData            `json:"property"`
	Opportunity *matching.OpportunityRequirements `json:"opportunity"`
	Experience  *matching.BrokerExperience        `json:"experience,omitempty"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	result, err := s.matcher.CalculatePropertyOpportunityMatch(req.Property, req.Opportunity, req.Experience)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.reg.RecordMatch(result.Qualified, result.Score, result.Competitive, result.FailedConstraint, time.Since(start))

	s.respondJSON(w, http.StatusOK, result)
}

// ExtractRequest carries raw solicitation text to parse.
type ExtractRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	s.respondJSON(w, http.StatusOK, extraction.Extract(req.Text))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	lat, lng, ok := s.coordParams(w, r)
	if !ok {
		return
	}
	radius := s.scoreCfg.DefaultRadiusMiles
	if v := r.URL.Query().Get("radius"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			s.respondError(w, http.StatusBadRequest, "radius must be a positive number")
			return
		}
		radius = parsed
	}

	index := s.mgr.Index()
	if index == nil {
		s.respondError(w, http.StatusServiceUnavailable, "property index not ready")
		return
	}

	start := time.Now()
	results := index.SearchRadius(lat, lng, radius)
	s.reg.RecordIndexQuery("radius", time.Since(start), len(results))

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":      len(results),
		"properties": results,
	})
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	lat, lng, ok := s.coordParams(w, r)
	if !ok {
		return
	}
	k := 10
	if v := r.URL.Query().Get("k"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			s.respondError(w, http.StatusBadRequest, "k must be a positive integer")
			return
		}
		k = parsed
	}

	index := s.mgr.Index()
	if index == nil {
		s.respondError(w, http.StatusServiceUnavailable, "property index not ready")
		return
	}

	start := time.Now()
	neighbors := index.KNearest(lat, lng, k)
	s.reg.RecordIndexQuery("nearest", time.Since(start), len(neighbors))

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(neighbors),
		"neighbors": neighbors,
	})
}

func (s *Server) handleProperty(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/properties/")
	if id == "" || strings.Contains(id, "/") {
		s.respondError(w, http.StatusBadRequest, "property id is required")
		return
	}

	p := s.mgr.Get(id)
	if p == nil {
		s.respondError(w, http.StatusNotFound, "property not found: "+id)
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

// coordParams parses the required lat/lng query parameters.
func (s *Server) coordParams(w http.ResponseWriter, r *http.Request) (lat, lng float64, ok bool) {
	q := r.URL.Query()
	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if latStr == "" || lngStr == "" {
		s.respondError(w, http.StatusBadRequest, "lat and lng query parameters are required")
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		s.respondError(w, http.StatusBadRequest, "lat must be a number between -90 and 90")
		return 0, 0, false
	}
	lng, err = strconv.ParseFloat(lngStr, 64)
	if err != nil || lng < -180 || lng > 180 {
		s.respondError(w, http.StatusBadRequest, "lng must be a number between -180 and 180")
		return 0, 0, false
	}
	return lat, lng, true
}
