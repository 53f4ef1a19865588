package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/finlink/internal/finlink/service"
	"github.com/aussiebroadwan/finlink/internal/finlink/store"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()

	return Config{
		Env:                 "test",
		LogLevel:            "error",
		Port:                0,
		ShutdownGracePeriod: time.Second,
		StoreDriver:         "sqlite",
		DatabaseFile:        filepath.Join(t.TempDir(), "finlink.db"),
		GatewayMode:         "fallback",
		WidgetMode:          "simulated",
		SessionTTL:          time.Hour,
		SessionIssuer:       "finlink-test",
		CredentialSecret:    "test-secret",
	}
}

func TestNewRejectsUnknownModes(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreDriver = "mongo"
	_, err := New(cfg)
	require.ErrorIs(t, err, ErrUnknownStoreDriver)

	cfg = testConfig(t)
	cfg.WidgetMode = "popup"
	_, err = New(cfg)
	require.ErrorIs(t, err, ErrUnknownWidgetMode)

	cfg = testConfig(t)
	cfg.GatewayMode = "sometimes"
	_, err = New(cfg)
	require.ErrorIs(t, err, service.ErrUnknownMode)
}

func TestApplicationServesLinkFlow(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Shutdown() })

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/session/login",
		strings.NewReader(`{"email":"ana@example.com","password":"pw"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var login service.LoginResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	req := httptest.NewRequest(http.MethodPost, "/v1/link/connect", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"state":"ready"`)

	// The credential is sealed at rest.
	raw, err := app.db.Settings().Get(t.Context(), store.KeyAccessToken)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(raw, "sealed:v1:"))
}

func TestSavedGatewaySettingsWinOverEnv(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, first.credentials.SetGatewayConfig(t.Context(), gatewaySettings("http://saved:5000")))
	require.NoError(t, first.Shutdown())

	cfg.APIURL = "http://from-env:5000"
	second, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Shutdown() })

	got := second.dataService.GatewayConfig()
	require.True(t, got.UseRealAPI)
	require.Equal(t, "http://saved:5000", got.APIURL)
}

func gatewaySettings(url string) linkapi.Config {
	return linkapi.Config{UseRealAPI: true, APIURL: url}
}
