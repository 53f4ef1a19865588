package http

import (
	"net/http"

	"github.com/aussiebroadwan/finlink/internal/finlink/service"
	"github.com/aussiebroadwan/finlink/internal/finlink/widget"
	"github.com/aussiebroadwan/finlink/pkg/httpx"
)

// LinkHandler drives the link state machine of the caller's session.
type LinkHandler struct {
	Sessions *service.SessionService
	Widget   widget.Provider
	Hosted   *widget.Hosted // nil without a hosted widget
	Health   *service.HealthMonitor
}

// HandleConnect handles POST /v1/link/connect
//
//	@Summary		Start linking a bank account
//	@Description	With the simulated widget the whole handshake finishes before the response.
//	@Description	With the hosted widget the session waits in awaiting_widget; open the widget with link_token.
//	@Description	Failures are reported through notifications and leave the session idle.
//	@Tags			Link
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	LinkStatusResponse
//	@Failure		401	{object}	httpx.ErrorResponse	"code, message"
//	@Failure		409	{object}	httpx.ErrorResponse	"session_busy"
//	@Router			/v1/link/connect [post].
func (h *LinkHandler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r, h.Sessions)
	if !ok {
		return
	}

	if _, err := sess.Controller.Connect(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeStatus(w, sess)
}

// HandleRefresh handles POST /v1/link/refresh
//
//	@Summary		Refresh linked accounts
//	@Description	Re-fetches accounts with the stored credential. A no-op when nothing is linked.
//	@Tags			Link
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	LinkStatusResponse
//	@Failure		401	{object}	httpx.ErrorResponse	"code, message"
//	@Failure		409	{object}	httpx.ErrorResponse	"session_busy"
//	@Router			/v1/link/refresh [post].
func (h *LinkHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r, h.Sessions)
	if !ok {
		return
	}

	if err := sess.Controller.Refresh(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeStatus(w, sess)
}

// HandleDisconnect handles POST /v1/link/disconnect
//
//	@Summary		Disconnect the linked bank
//	@Description	Deletes the stored credential for every session.
//	@Tags			Link
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	LinkStatusResponse
//	@Failure		401	{object}	httpx.ErrorResponse	"code, message"
//	@Failure		409	{object}	httpx.ErrorResponse	"session_busy"
//	@Router			/v1/link/disconnect [post].
func (h *LinkHandler) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r, h.Sessions)
	if !ok {
		return
	}

	if err := sess.Controller.Disconnect(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeStatus(w, sess)
}

// HandleStatus handles GET /v1/link/status
//
//	@Summary		Link status
//	@Tags			Link
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	LinkStatusResponse
//	@Failure		401	{object}	httpx.ErrorResponse	"code, message"
//	@Router			/v1/link/status [get].
func (h *LinkHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r, h.Sessions)
	if !ok {
		return
	}
	h.writeStatus(w, sess)
}

// HandleCallback handles POST /v1/link/callback
//
//	@Summary		Hosted widget outcome
//	@Description	Reports the browser widget outcome for the session's pending link token.
//	@Description	success and exit are accepted once per token; event may repeat.
//	@Tags			Link
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CallbackRequest		true	"Widget outcome"
//	@Success		200		{object}	LinkStatusResponse
//	@Failure		400		{object}	httpx.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	httpx.ErrorResponse	"code, message"
//	@Failure		404		{object}	httpx.ErrorResponse	"unknown_link_token"
//	@Router			/v1/link/callback [post].
func (h *LinkHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r, h.Sessions)
	if !ok {
		return
	}

	var req CallbackRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	// A session may only complete its own attempt.
	if h.Hosted == nil || req.LinkToken == "" || req.LinkToken != sess.Controller.PendingLinkToken() {
		writeServiceError(w, r, widget.ErrUnknownLinkToken)
		return
	}

	if err := h.Hosted.Complete(req.LinkToken, req.Outcome); err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeStatus(w, sess)
}

func (h *LinkHandler) writeStatus(w http.ResponseWriter, sess *service.Session) {
	resp := LinkStatusResponse{
		Snapshot: sess.Controller.Snapshot(),
		Widget:   h.Widget.Name(),
	}
	if h.Health != nil {
		resp.Backend = h.Health.Last()
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
