package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
	"github.com/aussiebroadwan/finlink/internal/finlink/link"
	"github.com/aussiebroadwan/finlink/internal/finlink/service"
	"github.com/aussiebroadwan/finlink/internal/finlink/widget"
	"github.com/aussiebroadwan/finlink/pkg/httpx"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/aussiebroadwan/finlink/pkg/slogx"
)

// writeServiceError maps service errors to stable API error codes. Anything
// unrecognised is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verr):
		httpx.WriteValidationError(w, verr.Fields)
	case errors.Is(err, domain.ErrInvalidLogin):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_login", "Email and password are required")
	case errors.Is(err, link.ErrSessionBusy):
		httpx.WriteError(w, http.StatusConflict, "session_busy", "A bank connection is already in progress")
	case errors.Is(err, link.ErrClosed), errors.Is(err, service.ErrSessionNotFound):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "session ended")
	case errors.Is(err, domain.ErrNotLinked):
		httpx.WriteError(w, http.StatusConflict, "not_linked", "No bank account is linked")
	case errors.Is(err, widget.ErrUnknownLinkToken):
		httpx.WriteError(w, http.StatusNotFound, "unknown_link_token", "Unknown or already used link token")
	case errors.Is(err, widget.ErrInvalidOutcome), errors.Is(err, service.ErrUnknownMode):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case linkapi.IsRemote(err), errors.Is(err, linkapi.ErrNotConfigured), errors.Is(err, linkapi.ErrEmptyResponse):
		slogx.FromContext(r.Context()).Warn("gateway failure", "error", err)
		httpx.WriteError(w, http.StatusBadGateway, "link_failed", "The bank data service is unavailable")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
	}
}

func writeBadJSON(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
}
