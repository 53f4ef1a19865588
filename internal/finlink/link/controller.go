// Package link runs the account-linking handshake for one signed-in session:
// link token, widget, public token exchange, credential persistence and
// account fetch.
package link

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
	"github.com/aussiebroadwan/finlink/internal/finlink/metrics"
	"github.com/aussiebroadwan/finlink/internal/finlink/store"
	"github.com/aussiebroadwan/finlink/internal/finlink/widget"
	"github.com/aussiebroadwan/finlink/pkg/idx"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/aussiebroadwan/finlink/pkg/slogx"
)

var (
	ErrSessionBusy = errors.New("link: a link attempt is already in progress")
	ErrClosed      = errors.New("link: session closed")
)

// User-facing messages. Raw errors are only logged.
const (
	msgTokenFailed    = "Failed to connect to bank. Please try again."
	msgLinkFailed     = "There was a problem linking your account. Please try again."
	msgFetchFailed    = "Failed to fetch account information. Your connection was saved, try refreshing."
	msgRefreshFailed  = "Failed to refresh account information"
	msgRefreshed      = "Financial data refreshed!"
	msgCancelled      = "Bank connection cancelled."
	msgWidgetProblem  = "There was a problem connecting to your bank. Please try again."
	msgDisconnected   = "Bank account disconnected."
	fmtConnectSuccess = "Connected to %s successfully!"
)

// DataSource supplies link tokens, credentials and accounts.
type DataSource interface {
	CreateLinkToken(ctx context.Context) (string, error)
	ExchangeToken(ctx context.Context, publicToken string) (string, error)
	FetchAccounts(ctx context.Context, accessToken string) ([]linkapi.Account, error)
}

// CredentialStore holds the access credential. AccessCredential returns
// store.ErrNotFound when nothing is linked.
type CredentialStore interface {
	AccessCredential(ctx context.Context) (string, error)
	SetAccessCredential(ctx context.Context, credential string) error
	DeleteAccessCredential(ctx context.Context) error
}

type Config struct {
	SessionID   string
	Data        DataSource
	Credentials CredentialStore
	Widget      widget.Provider
	Notifier    Notifier
	Metrics     *metrics.Metrics
	Observer    Observer
}

// Snapshot is the controller state as shown to the UI.
type Snapshot struct {
	State       State                `json:"state"`
	AttemptID   string               `json:"attempt_id,omitempty"`
	LinkToken   string               `json:"link_token,omitempty"` // set while awaiting the widget
	Linked      bool                 `json:"linked"`
	Institution *linkapi.Institution `json:"institution,omitempty"`
	Accounts    []linkapi.Account    `json:"accounts"`
}

type attempt struct {
	id        string
	linkToken string
	// consumed is set once the widget outcome for this attempt was accepted.
	consumed bool
}

// Controller is the link state machine of one session. Connect, Refresh and
// Disconnect are only accepted from Idle or Ready; everything else in between
// belongs to the attempt in flight.
type Controller struct {
	cfg Config

	// lifetime carries every attempt; Close cancels it.
	lifetime context.Context
	cancel   context.CancelFunc

	mu          sync.Mutex
	state       State
	current     *attempt
	accounts    []linkapi.Account
	institution *linkapi.Institution
	closed      bool
	// refreshing holds the controller while Refresh reads the credential,
	// before it has moved to FetchingAccounts.
	refreshing bool
}

func New(cfg Config) *Controller {
	if cfg.Notifier == nil {
		cfg.Notifier = NewFeed(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		cfg:      cfg,
		lifetime: ctx,
		cancel:   cancel,
		state:    StateIdle,
	}
}

// Connect starts a link attempt and returns its id. With a synchronous
// widget the whole handshake has finished when Connect returns; with the
// hosted widget it stops in AwaitingWidget. Failures are reported as
// notifications, not errors.
func (c *Controller) Connect(ctx context.Context) (string, error) {
	c.mu.Lock()
	if err := c.claimable(); err != nil {
		c.mu.Unlock()
		return "", err
	}

	att := &attempt{id: idx.New().String()}
	c.current = att
	c.transition(att, StateRequestingToken)
	c.mu.Unlock()

	actx := c.attemptContext(ctx, att)
	log := slogx.FromContext(actx)
	log.Info("link attempt started")

	token, err := c.cfg.Data.CreateLinkToken(actx)
	if err != nil {
		c.fail(actx, att, "create link token", err, msgTokenFailed)
		return att.id, nil
	}

	c.mu.Lock()
	if c.current != att {
		c.mu.Unlock()
		return att.id, nil
	}
	att.linkToken = token
	c.transition(att, StateAwaitingWidget)
	c.mu.Unlock()

	log.Debug("opening widget", "widget", c.cfg.Widget.Name())
	if err := c.cfg.Widget.Open(actx, token, c.callbacks(att)); err != nil {
		c.fail(actx, att, "open widget", err, msgTokenFailed)
	}

	return att.id, nil
}

func (c *Controller) callbacks(att *attempt) widget.Callbacks {
	return widget.Callbacks{
		OnSuccess: func(ctx context.Context, publicToken string, md linkapi.LinkMetadata) {
			c.onSuccess(ctx, att, publicToken, md)
		},
		OnExit: func(ctx context.Context, werr *widget.WidgetError, md linkapi.LinkMetadata) {
			c.onExit(ctx, att, werr, md)
		},
		OnEvent: func(ctx context.Context, name string, md linkapi.LinkMetadata) {
			slogx.FromContext(ctx).Debug("widget event", "event", name, "institution", md.Institution.InstitutionID)
		},
	}
}

// accept marks att's widget outcome as taken. It refuses anything but the
// first outcome of the current attempt while it awaits the widget.
func (c *Controller) accept(ctx context.Context, att *attempt, next State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != att || att.consumed || c.state != StateAwaitingWidget {
		slogx.FromContext(ctx).Warn("ignoring stale widget callback", "state", c.state)
		return false
	}

	att.consumed = true
	c.transition(att, next)
	return true
}

func (c *Controller) onSuccess(ctx context.Context, att *attempt, publicToken string, md linkapi.LinkMetadata) {
	ctx = c.rebind(ctx)
	if !c.accept(ctx, att, StateExchangingToken) {
		return
	}

	access, err := c.cfg.Data.ExchangeToken(ctx, publicToken)
	if err != nil {
		c.fail(ctx, att, "exchange public token", err, msgLinkFailed)
		return
	}

	// Persist before fetching so a failed fetch can be retried with Refresh.
	if err := c.cfg.Credentials.SetAccessCredential(ctx, access); err != nil {
		c.fail(ctx, att, "store access credential", err, msgLinkFailed)
		return
	}

	if !c.advance(att, StateFetchingAccounts) {
		return
	}

	accounts, err := c.cfg.Data.FetchAccounts(ctx, access)
	if err != nil {
		c.fail(ctx, att, "fetch accounts", err, msgFetchFailed)
		return
	}

	institution := md.Institution
	c.mu.Lock()
	if c.current != att {
		c.mu.Unlock()
		return
	}
	c.accounts = accounts
	c.institution = &institution
	c.transition(att, StateReady)
	c.current = nil
	c.mu.Unlock()

	c.cfg.Metrics.LinkOutcome("ready")
	c.notify(ctx, att, domain.NotifySuccess, fmt.Sprintf(fmtConnectSuccess, institution.Name))
}

func (c *Controller) onExit(ctx context.Context, att *attempt, werr *widget.WidgetError, md linkapi.LinkMetadata) {
	ctx = c.rebind(ctx)
	if !c.accept(ctx, att, StateIdle) {
		return
	}

	c.mu.Lock()
	if c.current == att {
		c.current = nil
	}
	c.mu.Unlock()

	if werr == nil {
		c.cfg.Metrics.LinkOutcome("cancelled")
		c.notify(ctx, att, domain.NotifyWarning, msgCancelled)
		return
	}

	slogx.FromContext(ctx).Warn("widget exited with error", "error", werr, "institution", md.Institution.InstitutionID)
	msg := werr.DisplayMessage
	if msg == "" {
		msg = msgWidgetProblem
	}
	c.cfg.Metrics.LinkOutcome("widget_error")
	c.notify(ctx, att, domain.NotifyWarning, msg)
}

// Refresh refetches accounts with the stored credential. Without one it does
// nothing at all. The controller is held from the credential read onwards so
// a concurrent Disconnect cannot slip in between.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if err := c.claimable(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.refreshing = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.refreshing = false
		c.mu.Unlock()
	}()

	access, err := c.cfg.Credentials.AccessCredential(ctx)
	if errors.Is(err, store.ErrNotFound) {
		slogx.FromContext(ctx).Warn("no access credential available to refresh accounts")
		return nil
	}
	if err != nil {
		return fmt.Errorf("link: load access credential: %w", err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	att := &attempt{id: idx.New().String(), consumed: true}
	c.current = att
	c.transition(att, StateFetchingAccounts)
	c.mu.Unlock()

	actx := c.attemptContext(ctx, att)
	accounts, err := c.cfg.Data.FetchAccounts(actx, access)
	if err != nil {
		c.fail(actx, att, "refresh accounts", err, msgRefreshFailed)
		return nil
	}

	c.mu.Lock()
	if c.current != att {
		c.mu.Unlock()
		return nil
	}
	c.accounts = accounts
	c.transition(att, StateReady)
	c.current = nil
	c.mu.Unlock()

	c.notify(actx, att, domain.NotifySuccess, msgRefreshed)
	return nil
}

// Disconnect forgets the credential and the accounts.
func (c *Controller) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.claimable(); err != nil {
		return err
	}

	if err := c.cfg.Credentials.DeleteAccessCredential(ctx); err != nil {
		return fmt.Errorf("link: delete access credential: %w", err)
	}

	c.accounts = nil
	c.institution = nil
	c.transition(nil, StateIdle)

	// notify takes no controller lock.
	c.notify(ctx, nil, domain.NotifyInfo, msgDisconnected)
	return nil
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:    c.state,
		Linked:   c.state == StateReady,
		Accounts: append([]linkapi.Account{}, c.accounts...),
	}
	if c.current != nil {
		snap.AttemptID = c.current.id
		if c.state == StateAwaitingWidget {
			snap.LinkToken = c.current.linkToken
		}
	}
	if c.institution != nil {
		inst := *c.institution
		snap.Institution = &inst
	}
	return snap
}

// PendingLinkToken is the token the browser must open the widget with, or
// empty when no attempt awaits the widget.
func (c *Controller) PendingLinkToken() string {
	return c.Snapshot().LinkToken
}

// Close abandons any attempt in flight. Later calls return ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	att := c.current
	c.closed = true
	c.current = nil
	c.mu.Unlock()

	if att != nil && att.linkToken != "" {
		if canceler, ok := c.cfg.Widget.(interface{ Cancel(string) }); ok {
			canceler.Cancel(att.linkToken)
		}
	}
	c.cancel()
}

// claimable reports whether a new operation may start. c.mu must be held.
func (c *Controller) claimable() error {
	switch {
	case c.closed:
		return ErrClosed
	case !c.state.settled() || c.refreshing:
		return ErrSessionBusy
	}
	return nil
}

// advance moves att to next if it is still the current attempt.
func (c *Controller) advance(att *attempt, next State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != att {
		return false
	}
	c.transition(att, next)
	return true
}

// fail ends att through Failed back to Idle with one error notification.
// Attempts that were already superseded only log.
func (c *Controller) fail(ctx context.Context, att *attempt, step string, err error, userMsg string) {
	log := slogx.FromContext(ctx)

	c.mu.Lock()
	if c.current != att {
		c.mu.Unlock()
		log.Debug("superseded attempt failed", "step", step, "error", err)
		return
	}
	c.transition(att, StateFailed)
	c.transition(att, StateIdle)
	c.current = nil
	c.mu.Unlock()

	log.Error("link attempt failed", "step", step, "error", err)
	c.cfg.Metrics.LinkOutcome("failed")
	c.notify(ctx, att, domain.NotifyError, userMsg)
}

// transition must be called with c.mu held.
func (c *Controller) transition(att *attempt, to State) {
	from := c.state
	if from == to {
		return
	}
	c.state = to

	id := ""
	if att != nil {
		id = att.id
	}
	if c.cfg.Observer != nil {
		c.cfg.Observer(id, from, to)
	}
}

func (c *Controller) notify(ctx context.Context, att *attempt, kind domain.NotificationKind, msg string) {
	n := domain.Notification{
		SessionID: c.cfg.SessionID,
		Kind:      kind,
		Message:   msg,
	}
	if att != nil {
		n.AttemptID = att.id
	}
	c.cfg.Notifier.Notify(ctx, n)
}

// attemptContext ties work for att to the session lifetime rather than the
// request that started it, keeping the request's logger.
func (c *Controller) attemptContext(ctx context.Context, att *attempt) context.Context {
	log := slogx.FromContext(ctx).With("session_id", c.cfg.SessionID, "attempt_id", att.id)
	return slogx.WithContext(c.lifetime, log)
}

// rebind moves a widget callback's context onto the session lifetime. The
// hosted widget calls back on a context detached from any request.
func (c *Controller) rebind(ctx context.Context) context.Context {
	return slogx.WithContext(c.lifetime, slogx.FromContext(ctx))
}
