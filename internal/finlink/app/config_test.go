package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_DRIVER", "GATEWAY_MODE", "WIDGET_MODE", "SESSION_TTL", "PLAID_USE_REAL_API"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "sqlite", cfg.StoreDriver)
	require.Equal(t, "fallback", cfg.GatewayMode)
	require.Equal(t, "simulated", cfg.WidgetMode)
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
	require.False(t, cfg.UseRealAPI)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("PLAID_USE_REAL_API", "true")
	t.Setenv("PLAID_API_URL", "http://backend:5000")
	t.Setenv("GATEWAY_TIMEOUT", "3")
	t.Setenv("SIMULATED_LATENCY", "250ms")
	t.Setenv("SESSION_TTL", "not-a-duration")

	cfg := LoadConfig()
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "postgres", cfg.StoreDriver)
	require.True(t, cfg.UseRealAPI)
	require.Equal(t, "http://backend:5000", cfg.APIURL)
	require.Equal(t, 3*time.Second, cfg.GatewayTimeout)
	require.Equal(t, 250*time.Millisecond, cfg.SimulatedLatency)
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FINLINK_DOTENV_PROBE=from-file\nPORT=7000\n"), 0o600))

	t.Setenv("FINLINK_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("FINLINK_DOTENV_PROBE"))
	t.Setenv("PORT", "6000")

	require.NoError(t, LoadDotEnv(path))
	require.Equal(t, "from-file", os.Getenv("FINLINK_DOTENV_PROBE"))
	require.Equal(t, "6000", os.Getenv("PORT"), "existing variables win")
}
