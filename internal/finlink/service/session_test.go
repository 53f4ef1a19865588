package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
	"github.com/aussiebroadwan/finlink/internal/finlink/link"
	"github.com/aussiebroadwan/finlink/internal/finlink/metrics"
	"github.com/aussiebroadwan/finlink/internal/finlink/simulate"
	"github.com/aussiebroadwan/finlink/internal/finlink/store"
	"github.com/aussiebroadwan/finlink/internal/finlink/store/drivers/sqlite"
	"github.com/aussiebroadwan/finlink/internal/finlink/widget"
	"github.com/aussiebroadwan/finlink/pkg/cryptox"
	"github.com/aussiebroadwan/finlink/pkg/jwtx"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/aussiebroadwan/finlink/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const testIssuer = "finlink-test"

func newSessionService(t *testing.T) (*SessionService, *jwtx.EdDSASigner, *metrics.Metrics) {
	t.Helper()

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("session-test", pemKey)
	require.NoError(t, err)

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	sim := simulate.New(simulate.WithSeed(7))
	m := metrics.New()
	deps := LinkDeps{
		Data:        NewLinkDataService(linkapi.Config{}, ModeFallback, sim, m),
		Credentials: store.NewCredentials(st, nil),
		Widget:      widget.NewSimulated(sim, 0),
	}
	return NewSessionService(signer, testIssuer, time.Hour, deps, m), signer, m
}

func requireActiveSessions(t *testing.T, m *metrics.Metrics, n int) {
	t.Helper()

	expected := fmt.Sprintf(`
# HELP finlink_active_sessions Signed-in dashboard sessions.
# TYPE finlink_active_sessions gauge
finlink_active_sessions %d
`, n)
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "finlink_active_sessions"))
}

func TestLoginRequiresEmailAndPassword(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSessionService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "  ", "secret")
	require.ErrorIs(t, err, domain.ErrInvalidLogin)

	_, err = svc.Login(ctx, "ana@example.com", "")
	require.ErrorIs(t, err, domain.ErrInvalidLogin)
	require.Zero(t, svc.Count())
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	t.Parallel()

	svc, signer, m := newSessionService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "ana@example.com", "anything")
	require.NoError(t, err)
	require.Equal(t, DefaultDisplayName, res.Session.Name)

	claims, err := jwtx.NewVerifierEdDSA(testIssuer, signer).Verify(res.Token)
	require.NoError(t, err)
	require.Equal(t, res.Session.ID, claims.SID)
	require.Equal(t, "ana@example.com", claims.Email)

	require.True(t, svc.IsLive(ctx, res.Session.ID))
	requireActiveSessions(t, m, 1)

	sess, err := svc.Get(res.Session.ID)
	require.NoError(t, err)
	require.Equal(t, link.StateIdle, sess.Controller.Snapshot().State)
}

func TestSessionsHaveIndependentControllers(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSessionService(t)
	ctx := context.Background()

	a, err := svc.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	b, err := svc.Login(ctx, "b@example.com", "pw")
	require.NoError(t, err)
	require.NotEqual(t, a.Session.ID, b.Session.ID)

	sa, err := svc.Get(a.Session.ID)
	require.NoError(t, err)
	_, err = sa.Controller.Connect(ctx)
	require.NoError(t, err)
	require.Equal(t, link.StateReady, sa.Controller.Snapshot().State)

	sb, err := svc.Get(b.Session.ID)
	require.NoError(t, err)
	require.Equal(t, link.StateIdle, sb.Controller.Snapshot().State)
	require.Empty(t, sb.Feed.Since(""))
}

func TestLogoutClosesController(t *testing.T) {
	t.Parallel()

	svc, _, m := newSessionService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "ana@example.com", "pw")
	require.NoError(t, err)
	sess, err := svc.Get(res.Session.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, res.Session.ID))
	require.False(t, svc.IsLive(ctx, res.Session.ID))
	require.ErrorIs(t, svc.Logout(ctx, res.Session.ID), ErrSessionNotFound)
	requireActiveSessions(t, m, 0)

	_, err = sess.Controller.Connect(ctx)
	require.ErrorIs(t, err, link.ErrClosed)
}

func TestExpiredSessionsAreSwept(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSessionService(t)
	ctx := context.Background()

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	res, err := svc.Login(ctx, "ana@example.com", "pw")
	require.NoError(t, err)
	require.Zero(t, svc.ExpireSessions(ctx))

	svc.now = func() time.Time { return now.Add(2 * time.Hour) }
	require.False(t, svc.IsLive(ctx, res.Session.ID))
	require.Equal(t, 1, svc.Count())

	require.Equal(t, 1, svc.ExpireSessions(ctx))
	require.Zero(t, svc.Count())
}

func TestHousekeepingStopsCleanly(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSessionService(t)
	h := NewHousekeepingService(slogx.Discard(), 10*time.Millisecond, SessionSweep(svc))
	h.Start()
	time.Sleep(30 * time.Millisecond)
	h.Stop()
}

func TestHousekeepingRunsSweepsInOrder(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string) Sweep {
		return Sweep{Name: name, Run: func(context.Context) int {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return 1
		}}
	}

	h := NewHousekeepingService(slogx.Discard(), time.Hour, record("first"), record("second"))
	h.sweep(t.Context())

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"first", "second"}, order)
}

func TestProfileUpdates(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSessionService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "ana@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, domain.DefaultNotificationPreferences(), res.Session.Preferences)

	name, email := "  Ana Lima ", "ana@work.example"
	updated, err := svc.UpdateProfile(ctx, res.Session.ID, domain.ProfileUpdate{Name: &name, Email: &email})
	require.NoError(t, err)
	require.Equal(t, "Ana Lima", updated.Name)
	require.Equal(t, email, updated.Email)

	sess, err := svc.Get(res.Session.ID)
	require.NoError(t, err)
	require.Equal(t, updated, sess.Profile())
	require.Equal(t, "ana@example.com", sess.Owner)

	blank := " "
	_, err = svc.UpdateProfile(ctx, res.Session.ID, domain.ProfileUpdate{Name: &blank})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "required", verr.Fields["name"])
	require.Equal(t, "Ana Lima", sess.Profile().Name)

	_, err = svc.UpdateProfile(ctx, "missing", domain.ProfileUpdate{Name: &name})
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPreferencesArePerSession(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSessionService(t)
	ctx := context.Background()

	a, err := svc.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	b, err := svc.Login(ctx, "b@example.com", "pw")
	require.NoError(t, err)

	off := false
	updated, err := svc.UpdatePreferences(ctx, a.Session.ID, domain.PreferencesUpdate{Email: &off})
	require.NoError(t, err)
	require.False(t, updated.Preferences.Email)
	require.True(t, updated.Preferences.TransactionAlerts)

	sb, err := svc.Get(b.Session.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultNotificationPreferences(), sb.Profile().Preferences)
}

func TestChangePasswordValidates(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSessionService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "ana@example.com", "pw")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, res.Session.ID, domain.PasswordChange{
		CurrentPassword: "pw", NewPassword: "a", ConfirmPassword: "b",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "confirm_password")

	require.NoError(t, svc.ChangePassword(ctx, res.Session.ID, domain.PasswordChange{
		CurrentPassword: "pw", NewPassword: "a", ConfirmPassword: "a",
	}))
	require.ErrorIs(t, svc.ChangePassword(ctx, "missing", domain.PasswordChange{}), ErrSessionNotFound)
}

func TestConcurrentProfileReadsAndWrites(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSessionService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "ana@example.com", "pw")
	require.NoError(t, err)
	sess, err := svc.Get(res.Session.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	names := make(chan string, 8)
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("User %d", i)
			_, err := svc.UpdateProfile(ctx, res.Session.ID, domain.ProfileUpdate{Name: &name})
			errs <- err
		}()
		go func() {
			defer wg.Done()
			names <- sess.Profile().Name
		}()
	}
	wg.Wait()
	close(errs)
	close(names)

	for err := range errs {
		require.NoError(t, err)
	}
	for name := range names {
		require.NotEmpty(t, name)
	}
}
