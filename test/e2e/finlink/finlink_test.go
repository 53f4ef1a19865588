package finlink_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupFinlinkContainer(t, nil)
	defer cleanup()

	client := newAPIClient(baseURL)

	status, _ := client.do(t, http.MethodGet, "/livez", nil, nil)
	require.Equal(t, http.StatusOK, status)

	var ready struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
			Backend  string `json:"backend"`
		} `json:"checks"`
	}
	status, raw := client.do(t, http.MethodGet, "/readyz", nil, &ready)
	require.Equal(t, http.StatusOK, status, string(raw))
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "simulated", ready.Checks.Backend)

	status, raw = client.do(t, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(raw), "finlink_")

	t.Logf("readyz: %+v", ready)
}

func TestSessionLifecycle(t *testing.T) {
	baseURL, cleanup := setupFinlinkContainer(t, nil)
	defer cleanup()

	client := newAPIClient(baseURL)

	status, _ := client.do(t, http.MethodPost, "/v1/session/login", map[string]string{"email": "", "password": ""}, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	client.login(t, "demo@example.com")

	var sess struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	status, raw := client.do(t, http.MethodGet, "/v1/session", nil, &sess)
	require.Equal(t, http.StatusOK, status, string(raw))
	require.Equal(t, "demo@example.com", sess.Email)

	status, raw = client.do(t, http.MethodPatch, "/v1/session", map[string]string{"name": "Demo Tester"}, &sess)
	require.Equal(t, http.StatusOK, status, string(raw))
	require.Equal(t, "Demo Tester", sess.Name)

	status, _ = client.do(t, http.MethodPost, "/v1/session/logout", nil, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = client.do(t, http.MethodGet, "/v1/session", nil, nil)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestSimulatedLinkFlow(t *testing.T) {
	baseURL, cleanup := setupFinlinkContainer(t, nil)
	defer cleanup()

	client := newAPIClient(baseURL)
	client.login(t, "demo@example.com")

	status, raw := client.do(t, http.MethodGet, "/v1/transactions", nil, nil)
	require.Equal(t, http.StatusConflict, status, string(raw))

	var linked linkStatus
	status, raw = client.do(t, http.MethodPost, "/v1/link/connect", nil, &linked)
	require.Equal(t, http.StatusOK, status, string(raw))
	require.Equal(t, "ready", linked.State)
	require.True(t, linked.Linked)
	require.NotNil(t, linked.Institution)
	require.Len(t, linked.Accounts, 3)

	var txs struct {
		Transactions []struct {
			ID string `json:"id"`
		} `json:"transactions"`
	}
	status, raw = client.do(t, http.MethodGet, "/v1/transactions?start=2024-01-01&end=2024-01-31", nil, &txs)
	require.Equal(t, http.StatusOK, status, string(raw))
	require.NotEmpty(t, txs.Transactions)

	var notes notifications
	status, _ = client.do(t, http.MethodGet, "/v1/notifications", nil, &notes)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, notes.Notifications)
	require.Equal(t, "success", notes.Notifications[len(notes.Notifications)-1].Kind)

	status, raw = client.do(t, http.MethodPost, "/v1/link/disconnect", nil, &linked)
	require.Equal(t, http.StatusOK, status, string(raw))
	require.False(t, linked.Linked)

	t.Logf("link flow finished with %d transactions", len(txs.Transactions))
}

func TestDashboardWithManualTransaction(t *testing.T) {
	baseURL, cleanup := setupFinlinkContainer(t, nil)
	defer cleanup()

	client := newAPIClient(baseURL)
	client.login(t, "dash@example.com")

	status, raw := client.do(t, http.MethodPost, "/v1/transactions/manual", map[string]string{
		"date":     time.Now().UTC().Format(time.RFC3339),
		"amount":   "12.50",
		"type":     "expense",
		"category": "Coffee",
		"merchant": "Harbour Espresso",
		"account":  "Checking Account",
	}, nil)
	require.Equal(t, http.StatusCreated, status, string(raw))

	status, raw = client.do(t, http.MethodGet, "/v1/dashboard", nil, nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, strings.Contains(string(raw), "Harbour Espresso"))

	// Manual entries belong to the owner's email and survive a new sign-in.
	client.login(t, "dash@example.com")
	status, raw = client.do(t, http.MethodGet, "/v1/dashboard/transactions?period=week&q=harbour", nil, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	require.Contains(t, string(raw), "Harbour Espresso")
}

func TestPostgresStore(t *testing.T) {
	networkName, databaseURL, cleanupDB := setupPostgres(t)
	defer cleanupDB()

	baseURL, cleanup := setupFinlinkContainer(t, map[string]string{
		"STORE_DRIVER": "postgres",
		"DATABASE_URL": databaseURL,
	}, networkName)
	defer cleanup()

	client := newAPIClient(baseURL)
	client.login(t, "pg@example.com")

	var linked linkStatus
	status, raw := client.do(t, http.MethodPost, "/v1/link/connect", nil, &linked)
	require.Equal(t, http.StatusOK, status, string(raw))
	require.True(t, linked.Linked)

	status, raw = client.do(t, http.MethodPost, "/v1/transactions/manual", map[string]string{
		"date":     time.Now().UTC().Format(time.RFC3339),
		"amount":   "1000",
		"type":     "income",
		"category": "Salary",
		"merchant": "Employer",
		"account":  "Checking Account",
	}, nil)
	require.Equal(t, http.StatusCreated, status, string(raw))

	status, raw = client.do(t, http.MethodGet, "/v1/dashboard", nil, nil)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(raw), "Employer")
}
