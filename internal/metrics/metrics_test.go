package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveReview(t *testing.T) {
	m := New()

	m.ObserveReview("succeeded", 2*time.Second)
	m.ObserveReview("succeeded", time.Second)
	m.ObserveReview("rejected", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Reviews.WithLabelValues("succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reviews.WithLabelValues("rejected")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ReviewDuration), "no duration for rejected submissions")
}

func TestSessionsGauge(t *testing.T) {
	m := New()

	m.IncSessions()
	m.IncSessions()
	m.DecSessions()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveSessions))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveReview("failed", time.Second)
		m.IncSessions()
		m.DecSessions()
		m.SetBackend("gemini", "gemini-2.5-flash")
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.SetBackend("gemini", "gemini-2.5-flash")
	m.ObserveReview("failed", time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `codelens_reviews_total{outcome="failed"} 1`)
	assert.Contains(t, string(body), `codelens_backend_info{model="gemini-2.5-flash",provider="gemini"} 1`)
}
