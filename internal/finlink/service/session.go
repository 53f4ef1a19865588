package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
	"github.com/aussiebroadwan/finlink/internal/finlink/link"
	"github.com/aussiebroadwan/finlink/internal/finlink/metrics"
	"github.com/aussiebroadwan/finlink/internal/finlink/widget"
	"github.com/aussiebroadwan/finlink/pkg/idx"
	"github.com/aussiebroadwan/finlink/pkg/jwtx"
	"github.com/aussiebroadwan/finlink/pkg/slogx"
)

var ErrSessionNotFound = errors.New("service: session not found")

// DefaultDisplayName is shown for every demo login.
const DefaultDisplayName = "Demo User"

// LinkDeps are shared by the link controller of every session.
type LinkDeps struct {
	Data        link.DataSource
	Credentials link.CredentialStore
	Widget      widget.Provider
	FeedSize    int
}

// Session is one signed-in browser session and its link state machine.
type Session struct {
	ID string
	// Owner is the email signed in with. Manual transactions stay keyed to
	// it when the profile email is edited.
	Owner      string
	ExpiresAt  time.Time
	Controller *link.Controller
	Feed       *link.Feed

	mu      sync.RWMutex
	profile domain.Session
}

// Profile returns a copy of the session's editable profile.
func (s *Session) Profile() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	Token   string         `json:"token"`
	Session domain.Session `json:"session"`
}

// SessionService creates sessions at login and tears them down at logout.
// Any non-empty email and password are accepted.
type SessionService struct {
	Signer  jwtx.Signer
	Issuer  string
	TTL     time.Duration
	Link    LinkDeps
	Metrics *metrics.Metrics

	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionService(signer jwtx.Signer, issuer string, ttl time.Duration, deps LinkDeps, m *metrics.Metrics) *SessionService {
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	return &SessionService{
		Signer:   signer,
		Issuer:   issuer,
		TTL:      ttl,
		Link:     deps,
		Metrics:  m,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

func (s *SessionService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidLogin
	}

	now := s.now().UTC()
	sid := idx.NewAt(now).String()

	claims := jwtx.NewSessionClaims(sid, email, s.Issuer, s.TTL, now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return LoginResult{}, err
	}

	feed := link.NewFeed(s.Link.FeedSize)
	sess := &Session{
		ID:        sid,
		Owner:     email,
		ExpiresAt: now.Add(s.TTL),
		profile: domain.Session{
			ID:          sid,
			Email:       email,
			Name:        DefaultDisplayName,
			Preferences: domain.DefaultNotificationPreferences(),
			CreatedAt:   now,
			ExpiresAt:   now.Add(s.TTL),
		},
		Feed: feed,
		Controller: link.New(link.Config{
			SessionID:   sid,
			Data:        s.Link.Data,
			Credentials: s.Link.Credentials,
			Widget:      s.Link.Widget,
			Notifier:    feed,
			Metrics:     s.Metrics,
		}),
	}

	s.mu.Lock()
	s.sessions[sid] = sess
	s.mu.Unlock()

	s.Metrics.SessionOpened()
	slogx.FromContext(ctx).Info("session opened", "sid", sid)

	return LoginResult{Token: token, Session: sess.Profile()}, nil
}

// UpdateProfile changes the display name and contact email. The token and
// the manual-transaction owner keep the email signed in with.
func (s *SessionService) UpdateProfile(ctx context.Context, sid string, u domain.ProfileUpdate) (domain.Session, error) {
	sess, err := s.Get(sid)
	if err != nil {
		return domain.Session{}, err
	}

	sess.mu.Lock()
	updated, err := u.Apply(sess.profile)
	if err == nil {
		sess.profile = updated
	}
	sess.mu.Unlock()

	if err != nil {
		return domain.Session{}, err
	}
	slogx.FromContext(ctx).Info("profile updated", "sid", sid)
	return updated, nil
}

// UpdatePreferences switches notification channels on or off.
func (s *SessionService) UpdatePreferences(ctx context.Context, sid string, u domain.PreferencesUpdate) (domain.Session, error) {
	sess, err := s.Get(sid)
	if err != nil {
		return domain.Session{}, err
	}

	sess.mu.Lock()
	sess.profile.Preferences = u.Apply(sess.profile.Preferences)
	updated := sess.profile
	sess.mu.Unlock()

	slogx.FromContext(ctx).Info("notification preferences updated", "sid", sid)
	return updated, nil
}

// ChangePassword validates the change-password form. Demo logins accept any
// password, so nothing is stored once the form passes.
func (s *SessionService) ChangePassword(ctx context.Context, sid string, c domain.PasswordChange) error {
	if _, err := s.Get(sid); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("password change accepted", "sid", sid)
	return nil
}

// Logout ends the session and abandons its link attempt. The stored
// credential is shared and stays.
func (s *SessionService) Logout(ctx context.Context, sid string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sid]
	delete(s.sessions, sid)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	sess.Controller.Close()
	s.Metrics.SessionClosed()
	slogx.FromContext(ctx).Info("session closed", "sid", sid)
	return nil
}

func (s *SessionService) Get(sid string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sid]
	s.mu.RUnlock()

	if !ok || !s.now().Before(sess.ExpiresAt) {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// IsLive satisfies httpx.SessionChecker.
func (s *SessionService) IsLive(_ context.Context, sid string) bool {
	_, err := s.Get(sid)
	return err == nil
}

// Count returns the number of sessions held, expired ones included.
func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ExpireSessions closes every session whose token has expired and returns
// how many were removed.
func (s *SessionService) ExpireSessions(ctx context.Context) int {
	now := s.now()

	s.mu.Lock()
	var expired []*Session
	for sid, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			expired = append(expired, sess)
			delete(s.sessions, sid)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Controller.Close()
		s.Metrics.SessionClosed()
	}
	if len(expired) > 0 {
		slogx.FromContext(ctx).Info("expired sessions closed", "count", len(expired))
	}
	return len(expired)
}

// CloseAll ends every session, used on shutdown.
func (s *SessionService) CloseAll() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range all {
		sess.Controller.Close()
		s.Metrics.SessionClosed()
	}
}
