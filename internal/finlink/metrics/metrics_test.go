package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/finlink/internal/finlink/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *metrics.Metrics
	require.NotPanics(t, func() {
		m.GatewayCall("exchange_token", "real", "ok")
		m.GatewayFallback("exchange_token")
		m.LinkOutcome("ready")
		m.BackendUp(true)
		m.SessionOpened()
		m.SessionClosed()
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.GatewayFallback("create_link_token")
	m.GatewayFallback("create_link_token")
	m.LinkOutcome("ready")
	m.BackendUp(true)

	count, err := testutil.GatherAndCount(m.Registry(), "finlink_gateway_fallbacks_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	srv := httptest.NewServer(m.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `finlink_gateway_fallbacks_total{operation="create_link_token"} 2`)
	require.Contains(t, string(body), `finlink_link_attempts_total{outcome="ready"} 1`)
	require.Contains(t, string(body), "finlink_backend_up 1")
}
