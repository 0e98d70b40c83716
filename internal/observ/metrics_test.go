package observ

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.LikeToggles.Inc()
	m.LikeToggles.Inc()
	m.AccessDecisions.WithLabelValues("owner").Inc()
	m.RealtimeConnections.Set(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LikeToggles))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccessDecisions.WithLabelValues("owner")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RealtimeConnections))
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.SearchQueries.WithLabelValues("hit").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "inventra_search_queries_total")
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("production", "not-a-level")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(0), "invalid level falls back to info")

	logger, err = NewLogger("development", "debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))
}
