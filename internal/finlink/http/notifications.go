package http

import (
	"net/http"

	"github.com/aussiebroadwan/finlink/internal/finlink/service"
	"github.com/aussiebroadwan/finlink/pkg/httpx"
	"github.com/aussiebroadwan/finlink/pkg/idx"
)

type NotificationsHandler struct {
	Sessions *service.SessionService
}

// ServeHTTP handles GET /v1/notifications
//
//	@Summary		Session notifications
//	@Description	Notifications of the caller's session, oldest first. Pass the last seen id as after to poll for new ones.
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			after	query		string	false	"Last notification id already seen"
//	@Success		200		{object}	NotificationsResponse
//	@Failure		401		{object}	httpx.ErrorResponse	"code, message"
//	@Failure		422		{object}	httpx.ErrorResponse	"after is not a notification id"
//	@Router			/v1/notifications [get].
func (h *NotificationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r, h.Sessions)
	if !ok {
		return
	}

	var after idx.ID
	if raw := r.URL.Query().Get("after"); raw != "" {
		id, err := idx.Parse(raw)
		if err != nil {
			httpx.WriteValidationError(w, map[string]string{"after": "must be a notification id"})
			return
		}
		after = id
	}

	httpx.WriteJSON(w, http.StatusOK, NotificationsResponse{
		Notifications: sess.Feed.Since(after),
	})
}
