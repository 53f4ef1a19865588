package http

import (
	"net/http"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
	"github.com/aussiebroadwan/finlink/internal/finlink/service"
	"github.com/aussiebroadwan/finlink/pkg/httpx"
)

// SessionHandler handles sign-in and sign-out.
type SessionHandler struct {
	Sessions *service.SessionService
}

// HandleLogin handles POST /v1/session/login
//
//	@Summary		Sign in
//	@Description	Any non-empty email and password are accepted. Returns a session bearer token.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest			true	"Credentials"
//	@Success		200		{object}	service.LoginResult		"token and session"
//	@Failure		400		{object}	httpx.ErrorResponse		"code, message"
//	@Failure		401		{object}	httpx.ErrorResponse		"code, message"
//	@Router			/v1/session/login [post].
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	res, err := h.Sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleLogout handles POST /v1/session/logout
//
//	@Summary		Sign out
//	@Description	Ends the session and abandons any link attempt in flight. The linked credential stays.
//	@Tags			Session
//	@Security		BearerAuth
//	@Success		204
//	@Failure		401	{object}	httpx.ErrorResponse	"code, message"
//	@Router			/v1/session/logout [post].
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sid, _ := httpx.SessionIDFromContext(r.Context())
	if err := h.Sessions.Logout(r.Context(), sid); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGet handles GET /v1/session
//
//	@Summary		Current session
//	@Tags			Session
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	domain.Session
//	@Failure		401	{object}	httpx.ErrorResponse	"code, message"
//	@Router			/v1/session [get].
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r, h.Sessions)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sess.Profile())
}

// HandleUpdateProfile handles PATCH /v1/session
//
//	@Summary		Edit profile
//	@Description	Changes the display name and contact email. Omitted fields are kept.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		domain.ProfileUpdate	true	"Profile fields"
//	@Success		200		{object}	domain.Session
//	@Failure		400		{object}	httpx.ErrorResponse	"code, message"
//	@Failure		401		{object}	httpx.ErrorResponse	"code, message"
//	@Failure		422		{object}	httpx.ErrorResponse	"validation_error"
//	@Router			/v1/session [patch].
func (h *SessionHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req domain.ProfileUpdate
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	sid, _ := httpx.SessionIDFromContext(r.Context())
	sess, err := h.Sessions.UpdateProfile(r.Context(), sid, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sess)
}

// HandleUpdatePreferences handles PATCH /v1/session/preferences
//
//	@Summary		Notification preferences
//	@Description	Switches email, push, budget and transaction alerts. Omitted channels are kept.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		domain.PreferencesUpdate	true	"Channels to change"
//	@Success		200		{object}	domain.Session
//	@Failure		400		{object}	httpx.ErrorResponse	"code, message"
//	@Failure		401		{object}	httpx.ErrorResponse	"code, message"
//	@Router			/v1/session/preferences [patch].
func (h *SessionHandler) HandleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req domain.PreferencesUpdate
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	sid, _ := httpx.SessionIDFromContext(r.Context())
	sess, err := h.Sessions.UpdatePreferences(r.Context(), sid, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sess)
}

// HandleChangePassword handles POST /v1/session/password
//
//	@Summary		Change password
//	@Description	Checks the form. The new password must match its confirmation.
//	@Tags			Session
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	domain.PasswordChange	true	"Password form"
//	@Success		204
//	@Failure		400	{object}	httpx.ErrorResponse	"code, message"
//	@Failure		401	{object}	httpx.ErrorResponse	"code, message"
//	@Failure		422	{object}	httpx.ErrorResponse	"validation_error"
//	@Router			/v1/session/password [post].
func (h *SessionHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req domain.PasswordChange
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	sid, _ := httpx.SessionIDFromContext(r.Context())
	if err := h.Sessions.ChangePassword(r.Context(), sid, req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// currentSession resolves the authenticated session, writing a 401 when it
// is gone.
func currentSession(w http.ResponseWriter, r *http.Request, sessions *service.SessionService) (*service.Session, bool) {
	sid, _ := httpx.SessionIDFromContext(r.Context())
	sess, err := sessions.Get(sid)
	if err != nil {
		writeServiceError(w, r, err)
		return nil, false
	}
	return sess, true
}
