package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbracken/fedlease/pkg/config"
	"github.com/hbracken/fedlease/pkg/inventory"
	"github.com/hbracken/fedlease/pkg/matching"
	"github.com/hbracken/fedlease/pkg/property"
	"github.com/hbracken/fedlease/pkg/rtree"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	loader := inventory.LoaderFunc(func(ctx context.Context) ([]*property.FederalProperty, error) {
		exp := time.Now().AddDate(1, 0, 0)
		props := make([]*property.FederalProperty, 30)
		for i := range props {
			props[i] = &property.FederalProperty{
				ID:              fmt.Sprintf("dc-%02d", i),
				Latitude:        38.9 + float64(i)*0.002,
				Longitude:       -77.0 - float64(i)*0.002,
				RSF:             40000 + float64(i)*1000,
				Ownership:       property.OwnershipLeased,
				Vacant:          i%5 == 0,
				VacantRSF:       float64(i%5) * 2000,
				LeaseExpiration: &exp,
				Agency:          "GSA",
				City:            "Washington",
				State:           "DC",
			}
		}
		return props, nil
	})
	mgr := inventory.NewManager(rtree.DefaultConfig(), loader, nil)
	require.NoError(t, mgr.Build(context.Background()))

	srv, err := NewServer(config.Default(), mgr, nil)
	require.NoError(t, err)
	return srv
}

func emptyServer(t *testing.T) *Server {
	t.Helper()
	loader := inventory.LoaderFunc(func(ctx context.Context) ([]*property.FederalProperty, error) {
		return nil, nil
	})
	mgr := inventory.NewManager(rtree.DefaultConfig(), loader, nil)
	srv, err := NewServer(config.Default(), mgr, nil)
	require.NoError(t, err)
	return srv
}

func doRequest(t *testing.T, h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(into))
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv.Handler(), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.IndexReady)
	assert.Equal(t, 30, resp.Properties)
	assert.False(t, resp.LastRefresh.IsZero())
}

func TestHealthBeforeFirstBuild(t *testing.T) {
	srv := emptyServer(t)
	rec := doRequest(t, srv.Handler(), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "starting", resp.Status)
	assert.False(t, resp.IndexReady)
}

func TestScoreEndpoint(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv.Handler(), http.MethodGet, "/score?lat=38.92&lng=-77.02&radius=5", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Score   float64 `json:"score"`
		Grade   string  `json:"grade"`
		Factors []struct {
			Name string `json:"name"`
		} `json:"factors"`
	}
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.Grade)
	assert.Len(t, resp.Factors, 6)
}

func TestScoreValidation(t *testing.T) {
	srv := testServer(t)
	h := srv.Handler()

	tests := []struct {
		name   string
		target string
	}{
		{"missing params", "/score"},
		{"bad latitude", "/score?lat=95&lng=-77"},
		{"bad longitude", "/score?lat=38&lng=-200"},
		{"non-numeric", "/score?lat=abc&lng=-77"},
		{"negative radius", "/score?lat=38.9&lng=-77&radius=-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodGet, tt.target, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			decodeBody(t, rec, &resp)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestScoreIndexNotReady(t *testing.T) {
	srv := emptyServer(t)
	rec := doRequest(t, srv.Handler(), http.MethodGet, "/score?lat=38.9&lng=-77.0", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMatchEndpoint(t *testing.T) {
	srv := testServer(t)

	req := MatchRequest{
		Property: &matching.PropertyData{
			ID:            "p1",
			City:          "Arlington",
			State:         "VA",
			AvailableSF:   50000,
			BuildingClass: "A",
			ADACompliant:  true,
			AvailableDate: time.Now(),
		},
		Opportunity: &matching.OpportunityRequirements{
			OpportunityID: "o1",
			State:         "VA",
			City:          "Arlington",
			MinSquareFeet: 45000,
			MaxSquareFeet: 60000,
			ADARequired:   true,
		},
	}
	rec := doRequest(t, srv.Handler(), http.MethodPost, "/match", req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result matching.MatchingResult
	decodeBody(t, rec, &result)
	assert.True(t, result.Qualified)
	assert.Equal(t, -1, result.FailedStage)
	assert.Len(t, result.Factors, 5)
}

func TestMatchDisqualified(t *testing.T) {
	srv := testServer(t)

	req := MatchRequest{
		Property: &matching.PropertyData{
			ID: "p1", State: "MD", AvailableSF: 50000,
		},
		Opportunity: &matching.OpportunityRequirements{
			OpportunityID: "o1", State: "VA", MinSquareFeet: 45000,
		},
	}
	rec := doRequest(t, srv.Handler(), http.MethodPost, "/match", req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result matching.MatchingResult
	decodeBody(t, rec, &result)
	assert.False(t, result.Qualified)
	assert.Equal(t, matching.ConstraintStateMatch, result.FailedConstraint)
}

func TestMatchMissingInputs(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv.Handler(), http.MethodPost, "/match", MatchRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchRejectsGet(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv.Handler(), http.MethodGet, "/match", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestExtractEndpoint(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/extract", ExtractRequest{
		Text: "Seeking 40,000 to 55,000 ABOA SF of Class A space. ADA compliant. Secret clearance required.",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		MinSquareFeet     *float64 `json:"minSquareFeet"`
		MaxSquareFeet     *float64 `json:"maxSquareFeet"`
		BuildingClasses   []string `json:"buildingClasses"`
		ADARequired       *bool    `json:"adaRequired"`
		ClearanceRequired *string  `json:"clearanceRequired"`
	}
	decodeBody(t, rec, &resp)
	require.NotNil(t, resp.MinSquareFeet)
	assert.Equal(t, 40000.0, *resp.MinSquareFeet)
	require.NotNil(t, resp.MaxSquareFeet)
	assert.Equal(t, 55000.0, *resp.MaxSquareFeet)
	assert.Equal(t, []string{"A+", "A"}, resp.BuildingClasses)
	require.NotNil(t, resp.ADARequired)
	assert.True(t, *resp.ADARequired)
	require.NotNil(t, resp.ClearanceRequired)
	assert.Equal(t, "secret", *resp.ClearanceRequired)
}

func TestExtractEmptyText(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv.Handler(), http.MethodPost, "/extract", ExtractRequest{Text: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv.Handler(), http.MethodGet, "/properties/search?lat=38.92&lng=-77.02&radius=10", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count      int                         `json:"count"`
		Properties []*property.FederalProperty `json:"properties"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, 30, resp.Count)
	assert.Len(t, resp.Properties, 30)
}

func TestNearestEndpoint(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv.Handler(), http.MethodGet, "/properties/nearest?lat=38.9&lng=-77.0&k=3", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count     int `json:"count"`
		Neighbors []struct {
			Property      *property.FederalProperty `json:"property"`
			DistanceMiles float64                   `json:"distanceMiles"`
		} `json:"neighbors"`
	}
	decodeBody(t, rec, &resp)
	require.Equal(t, 3, resp.Count)
	assert.Equal(t, "dc-00", resp.Neighbors[0].Property.ID)
}

func TestPropertyByID(t *testing.T) {
	srv := testServer(t)
	h := srv.Handler()

	rec := doRequest(t, h, http.MethodGet, "/properties/dc-05", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var p property.FederalProperty
	decodeBody(t, rec, &p)
	assert.Equal(t, "dc-05", p.ID)
	assert.Equal(t, "DC", p.State)

	rec = doRequest(t, h, http.MethodGet, "/properties/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGraphQLEndpoint(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv.Handler(), http.MethodPost, "/graphql", map[string]string{
		"query": "{ health }",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "ok"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)
	h := srv.Handler()

	// Generate some traffic first so counters exist.
	doRequest(t, h, http.MethodGet, "/health", nil)

	rec := doRequest(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fedlease_")
}
