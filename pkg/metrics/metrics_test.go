package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if r.IndexPropertiesTotal == nil {
		t.Error("IndexPropertiesTotal not initialized")
	}
	if r.ScoresComputedTotal == nil {
		t.Error("ScoresComputedTotal not initialized")
	}
	if r.MatchesComputedTotal == nil {
		t.Error("MatchesComputedTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()
	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.Counter.GetValue()
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("GET", "/score", "200", 100*time.Millisecond)
	r.RecordHTTPRequest("POST", "/match", "200", 200*time.Millisecond)
	r.RecordHTTPRequest("GET", "/score", "400", 50*time.Millisecond)

	counter, err := r.HTTPRequestsTotal.GetMetricWithLabelValues("GET", "/score", "200")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	if got := counterValue(t, counter); got != 1 {
		t.Errorf("counter value = %v, want 1", got)
	}
}

func TestRecordIndexBuild(t *testing.T) {
	r := NewRegistry()

	r.RecordIndexBuild("bulk", "success", 50*time.Millisecond, 12000)

	var m dto.Metric
	if err := r.IndexPropertiesTotal.Write(&m); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if m.Gauge.GetValue() != 12000 {
		t.Errorf("IndexPropertiesTotal = %v, want 12000", m.Gauge.GetValue())
	}

	// Failed builds must not touch the property gauge.
	r.RecordIndexBuild("bulk", "error", time.Millisecond, 0)
	if err := r.IndexPropertiesTotal.Write(&m); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if m.Gauge.GetValue() != 12000 {
		t.Errorf("IndexPropertiesTotal = %v after failed build, want 12000", m.Gauge.GetValue())
	}
}

func TestRecordScore(t *testing.T) {
	r := NewRegistry()

	r.RecordScore(70.3, "C", time.Millisecond, nil)
	r.RecordScore(0, "", 0, errors.New("no index"))

	success, err := r.ScoresComputedTotal.GetMetricWithLabelValues("success")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	if got := counterValue(t, success); got != 1 {
		t.Errorf("success count = %v, want 1", got)
	}

	failed, err := r.ScoresComputedTotal.GetMetricWithLabelValues("error")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	if got := counterValue(t, failed); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}

	grade, err := r.ScoreGradesTotal.GetMetricWithLabelValues("C")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	if got := counterValue(t, grade); got != 1 {
		t.Errorf("grade C count = %v, want 1", got)
	}
}

func TestRecordMatch(t *testing.T) {
	r := NewRegistry()

	r.RecordMatch(true, 85, true, "", 10*time.Microsecond)
	r.RecordMatch(true, 55, false, "", 10*time.Microsecond)
	r.RecordMatch(false, 0, false, "STATE_MATCH", 2*time.Microsecond)

	qualified, err := r.MatchesComputedTotal.GetMetricWithLabelValues("qualified")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	if got := counterValue(t, qualified); got != 2 {
		t.Errorf("qualified count = %v, want 2", got)
	}

	disq, err := r.MatchDisqualifiedTotal.GetMetricWithLabelValues("STATE_MATCH")
	if err != nil {
		t.Fatalf("failed to get metric: %v", err)
	}
	if got := counterValue(t, disq); got != 1 {
		t.Errorf("STATE_MATCH disqualifications = %v, want 1", got)
	}

	if got := counterValue(t, r.MatchCompetitiveTotal); got != 1 {
		t.Errorf("competitive count = %v, want 1", got)
	}
}

func TestGatheredFamiliesCarryPrefix(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest("GET", "/health", "200", time.Millisecond)
	r.UpdateSystemMetrics(time.Now().Add(-time.Minute))

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("no metric families gathered")
	}
	for _, f := range families {
		if !strings.HasPrefix(f.GetName(), "fedlease_") {
			t.Errorf("metric %q missing fedlease_ prefix", f.GetName())
		}
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics(time.Now().Add(-2 * time.Second))

	var m dto.Metric
	if err := r.UptimeSeconds.Write(&m); err != nil {
		t.Fatalf("failed to write gauge: %v", err)
	}
	if m.Gauge.GetValue() < 2 {
		t.Errorf("uptime = %v, want >= 2", m.Gauge.GetValue())
	}
}
