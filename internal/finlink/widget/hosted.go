package widget

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/aussiebroadwan/finlink/pkg/slogx"
	gocache "github.com/patrickmn/go-cache"
)

var (
	ErrUnknownLinkToken = errors.New("widget: unknown or already used link token")
	ErrInvalidOutcome   = errors.New("widget: invalid outcome")
)

// DefaultPendingTTL is how long a hosted widget may stay open.
const DefaultPendingTTL = 30 * time.Minute

// Outcome statuses reported by the browser.
const (
	StatusSuccess = "success"
	StatusExit    = "exit"
	StatusEvent   = "event"
)

// Outcome is what the browser-side widget reports for a link token.
type Outcome struct {
	Status      string               `json:"status"`
	PublicToken string               `json:"public_token,omitempty"`
	EventName   string               `json:"event_name,omitempty"`
	Error       *WidgetError         `json:"error,omitempty"`
	Metadata    linkapi.LinkMetadata `json:"metadata"`
}

type pending struct {
	ctx      context.Context
	cb       Callbacks
	consumed bool
}

// Hosted drives the real widget running in the user's browser. Open only
// registers the link token; the browser reports back through Complete, at
// most once per token. Tokens left pending past their TTL are closed with a
// LINK_TOKEN_EXPIRED exit.
type Hosted struct {
	mu      sync.Mutex
	pending *gocache.Cache
}

func NewHosted(ttl time.Duration) *Hosted {
	if ttl <= 0 {
		ttl = DefaultPendingTTL
	}

	h := &Hosted{pending: gocache.New(ttl, ttl/2)}
	h.pending.OnEvicted(h.evicted)
	return h
}

func (h *Hosted) Name() string { return "hosted" }

func (h *Hosted) Open(ctx context.Context, linkToken string, cb Callbacks) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.pending.Get(linkToken); ok {
		return ErrUnknownLinkToken
	}

	h.pending.SetDefault(linkToken, &pending{ctx: context.WithoutCancel(ctx), cb: cb})
	slogx.FromContext(ctx).Debug("hosted widget awaiting browser", "pending", h.pending.ItemCount())
	return nil
}

// Complete dispatches the browser's outcome for linkToken. Events leave the
// token pending; success and exit consume it.
func (h *Hosted) Complete(linkToken string, out Outcome) error {
	switch out.Status {
	case StatusSuccess:
		if out.PublicToken == "" {
			return ErrInvalidOutcome
		}
	case StatusEvent:
		if out.EventName == "" {
			return ErrInvalidOutcome
		}
	case StatusExit:
	default:
		return ErrInvalidOutcome
	}

	p, err := h.take(linkToken, out.Status != StatusEvent)
	if err != nil {
		return err
	}

	switch out.Status {
	case StatusSuccess:
		p.cb.success(p.ctx, out.PublicToken, out.Metadata)
	case StatusExit:
		p.cb.exit(p.ctx, out.Error, out.Metadata)
	case StatusEvent:
		p.cb.event(p.ctx, out.EventName, out.Metadata)
	}
	return nil
}

// Cancel forgets linkToken without calling back.
func (h *Hosted) Cancel(linkToken string) {
	_, _ = h.take(linkToken, true)
}

// Pending reports whether linkToken is still awaiting an outcome.
func (h *Hosted) Pending(linkToken string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.pending.Get(linkToken)
	return ok
}

func (h *Hosted) take(linkToken string, consume bool) (*pending, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.pending.Get(linkToken)
	if !ok {
		return nil, ErrUnknownLinkToken
	}

	p := v.(*pending)
	if consume {
		p.consumed = true
		h.pending.Delete(linkToken)
	}
	return p, nil
}

// Purge expires overdue tokens now instead of waiting for the cache janitor.
// It returns how many were dropped.
func (h *Hosted) Purge(context.Context) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	before := h.pending.ItemCount()
	h.pending.DeleteExpired()
	return before - h.pending.ItemCount()
}

// evicted runs for deletions and expiries alike; only expiries call back.
func (h *Hosted) evicted(linkToken string, v any) {
	p := v.(*pending)
	if p.consumed {
		return
	}

	go p.cb.exit(p.ctx, &WidgetError{
		Code:           "LINK_TOKEN_EXPIRED",
		Message:        "link token expired before the widget finished",
		DisplayMessage: "The bank connection timed out. Please try again.",
	}, linkapi.LinkMetadata{})
}
