package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"contactpsi/internal/metrics"
)

func TestHandlerExposesCollectors(t *testing.T) {
	metrics.Bind()
	metrics.Bind()

	before := testutil.ToFloat64(metrics.JobsSubmitted.WithLabelValues("reveal_initiator"))
	metrics.JobsSubmitted.WithLabelValues("reveal_initiator").Inc()
	require.Equal(t, before+1, testutil.ToFloat64(metrics.JobsSubmitted.WithLabelValues("reveal_initiator")))

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "contactpsi_jobs_submitted_total"))
}
