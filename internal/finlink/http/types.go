package http

import (
	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
	"github.com/aussiebroadwan/finlink/internal/finlink/link"
	"github.com/aussiebroadwan/finlink/internal/finlink/service"
	"github.com/aussiebroadwan/finlink/internal/finlink/widget"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
)

// HealthResponse is the body of /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	// Backend is informational; the simulation covers an unreachable backend.
	Backend string `json:"backend"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LinkStatusResponse is the link state of the caller's session.
type LinkStatusResponse struct {
	link.Snapshot
	Widget  string               `json:"widget"`
	Backend service.HealthStatus `json:"backend"`
}

// CallbackRequest is posted by the browser-side widget.
type CallbackRequest struct {
	LinkToken string `json:"link_token"`
	widget.Outcome
}

type AccountsResponse struct {
	Linked      bool                 `json:"linked"`
	Institution *linkapi.Institution `json:"institution,omitempty"`
	Accounts    []linkapi.Account    `json:"accounts"`
}

type TransactionsResponse struct {
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	Transactions []linkapi.Transaction `json:"transactions"`
}

type ConfigResponse struct {
	UseRealAPI bool         `json:"use_real_api"`
	APIURL     string       `json:"api_url"`
	Mode       service.Mode `json:"mode"`
	Widget     string       `json:"widget"`
}

// ConfigRequest replaces the gateway settings. An empty Mode keeps the
// current one.
type ConfigRequest struct {
	UseRealAPI bool   `json:"use_real_api"`
	APIURL     string `json:"api_url"`
	Mode       string `json:"mode,omitempty"`
}

type NotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}
