package widget_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/finlink/internal/finlink/simulate"
	"github.com/aussiebroadwan/finlink/internal/finlink/widget"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	events  []string
	public  string
	md      linkapi.LinkMetadata
	exited  bool
	exitErr *widget.WidgetError
	done    chan struct{}
}

func newRecorder() *recorder { return &recorder{done: make(chan struct{}, 4)} }

func (r *recorder) callbacks() widget.Callbacks {
	return widget.Callbacks{
		OnSuccess: func(_ context.Context, publicToken string, md linkapi.LinkMetadata) {
			r.mu.Lock()
			r.public, r.md = publicToken, md
			r.mu.Unlock()
			r.done <- struct{}{}
		},
		OnExit: func(_ context.Context, err *widget.WidgetError, _ linkapi.LinkMetadata) {
			r.mu.Lock()
			r.exited, r.exitErr = true, err
			r.mu.Unlock()
			r.done <- struct{}{}
		},
		OnEvent: func(_ context.Context, name string, _ linkapi.LinkMetadata) {
			r.mu.Lock()
			r.events = append(r.events, name)
			r.mu.Unlock()
		},
	}
}

func TestSimulatedSucceeds(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	w := widget.NewSimulated(simulate.New(), 0)

	require.NoError(t, w.Open(context.Background(), "link-sandbox-1", rec.callbacks()))
	require.Equal(t, []string{widget.EventOpen, widget.EventHandoff}, rec.events)
	require.True(t, strings.HasPrefix(rec.public, "public-sandbox-"))
	require.Equal(t, "Chase", rec.md.Institution.Name)
	require.False(t, rec.exited)
}

func TestSimulatedCancelIsExitWithoutError(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	w := widget.NewSimulated(simulate.New(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, w.Open(ctx, "link-sandbox-1", rec.callbacks()))
	require.True(t, rec.exited)
	require.Nil(t, rec.exitErr)
	require.Empty(t, rec.public)
}

func TestHostedDispatchesOnce(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	h := widget.NewHosted(time.Minute)

	require.NoError(t, h.Open(context.Background(), "link-1", rec.callbacks()))
	require.True(t, h.Pending("link-1"))

	require.NoError(t, h.Complete("link-1", widget.Outcome{Status: widget.StatusEvent, EventName: "SELECT_INSTITUTION"}))
	require.True(t, h.Pending("link-1"))

	md := linkapi.LinkMetadata{Institution: linkapi.Institution{Name: "Chase", InstitutionID: "ins_1"}}
	require.NoError(t, h.Complete("link-1", widget.Outcome{Status: widget.StatusSuccess, PublicToken: "public-1", Metadata: md}))
	require.Equal(t, "public-1", rec.public)
	require.Equal(t, []string{"SELECT_INSTITUTION"}, rec.events)

	err := h.Complete("link-1", widget.Outcome{Status: widget.StatusSuccess, PublicToken: "public-2"})
	require.ErrorIs(t, err, widget.ErrUnknownLinkToken)
	require.Equal(t, "public-1", rec.public)
	require.False(t, h.Pending("link-1"))
}

func TestHostedRejectsUnknownAndInvalid(t *testing.T) {
	t.Parallel()

	h := widget.NewHosted(time.Minute)
	require.ErrorIs(t, h.Complete("nope", widget.Outcome{Status: widget.StatusExit}), widget.ErrUnknownLinkToken)

	require.NoError(t, h.Open(context.Background(), "link-1", newRecorder().callbacks()))
	require.ErrorIs(t, h.Complete("link-1", widget.Outcome{Status: widget.StatusSuccess}), widget.ErrInvalidOutcome)
	require.ErrorIs(t, h.Complete("link-1", widget.Outcome{Status: "bogus"}), widget.ErrInvalidOutcome)
	require.True(t, h.Pending("link-1"))
}

func TestHostedCancelDoesNotCallBack(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	h := widget.NewHosted(time.Minute)
	require.NoError(t, h.Open(context.Background(), "link-1", rec.callbacks()))

	h.Cancel("link-1")
	require.False(t, h.Pending("link-1"))

	select {
	case <-rec.done:
		t.Fatal("cancel must not call back")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHostedExpiryExits(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	h := widget.NewHosted(40 * time.Millisecond)
	require.NoError(t, h.Open(context.Background(), "link-1", rec.callbacks()))

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("expired token never exited")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.True(t, rec.exited)
	require.NotNil(t, rec.exitErr)
	require.Equal(t, "LINK_TOKEN_EXPIRED", rec.exitErr.Code)
}

func TestHostedPurgeDropsExpiredTokens(t *testing.T) {
	t.Parallel()

	h := widget.NewHosted(200 * time.Millisecond)
	require.NoError(t, h.Open(context.Background(), "link-1", newRecorder().callbacks()))
	require.Zero(t, h.Purge(t.Context()))
	require.True(t, h.Pending("link-1"))

	require.Eventually(t, func() bool {
		h.Purge(t.Context())
		return !h.Pending("link-1")
	}, time.Second, 10*time.Millisecond)
}

func TestSelector(t *testing.T) {
	t.Parallel()

	realMode := false
	sel := &widget.Selector{
		Simulated: widget.NewSimulated(simulate.New(), 0),
		Hosted:    widget.NewHosted(time.Minute),
		RealMode:  func() bool { return realMode },
	}
	require.Equal(t, "simulated", sel.Name())

	realMode = true
	require.Equal(t, "hosted", sel.Name())

	sel.Hosted = nil
	require.Equal(t, "simulated", sel.Name())
}
