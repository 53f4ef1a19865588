package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
	"github.com/aussiebroadwan/finlink/internal/finlink/store"
	"github.com/aussiebroadwan/finlink/internal/finlink/store/drivers/sqlite"
	"github.com/aussiebroadwan/finlink/pkg/cryptox"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
}

func TestSettings(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.Settings().Get(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.Settings().Set(ctx, "k", "v1"))
	require.NoError(t, st.Settings().Set(ctx, "k", "v2"))

	v, err := st.Settings().Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v2", v)

	require.NoError(t, st.Settings().Delete(ctx, "k"))
	require.NoError(t, st.Settings().Delete(ctx, "k"))

	_, err = st.Settings().Get(ctx, "k")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBack(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(tx store.Store) error {
		require.NoError(t, tx.Settings().Set(ctx, "k", "v"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Settings().Get(ctx, "k")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestManualTransactions(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	older := domain.Transaction{
		ID: "m1", Date: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), Merchant: "Rent",
		Amount: decimal.RequireFromString("-1200"), Category: "Housing", Type: domain.TransactionExpense, Account: "Checking Account",
	}
	newer := domain.Transaction{
		ID: "m2", Date: time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), Merchant: "Employer",
		Amount: decimal.RequireFromString("3000.50"), Category: "Other", Type: domain.TransactionIncome, Account: "Checking Account",
	}

	require.NoError(t, st.ManualTransactions().Create(ctx, "ana@example.com", older))
	require.NoError(t, st.ManualTransactions().Create(ctx, "ana@example.com", newer))
	bos := older
	bos.ID = "m3"
	require.NoError(t, st.ManualTransactions().Create(ctx, "bo@example.com", bos))

	// Ids are global, not per owner.
	require.Error(t, st.ManualTransactions().Create(ctx, "bo@example.com", older))

	got, err := st.ManualTransactions().List(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "m2", got[0].ID)
	require.Equal(t, "m1", got[1].ID)
	require.Equal(t, "3000.5", got[0].Amount.String())
	require.True(t, got[0].Manual)
	require.True(t, newer.Date.Equal(got[0].Date))

	got, err = st.ManualTransactions().List(ctx, "bo@example.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "m3", got[0].ID)
}

func TestCredentials(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("access credential sealed at rest", func(t *testing.T) {
		st := newTestStore(t)
		sealer, err := cryptox.NewSealer("secret")
		require.NoError(t, err)
		creds := store.NewCredentials(st, sealer)

		_, err = creds.AccessCredential(ctx)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, creds.SetAccessCredential(ctx, "access-sandbox-1"))

		raw, err := st.Settings().Get(ctx, store.KeyAccessToken)
		require.NoError(t, err)
		require.NotContains(t, raw, "access-sandbox-1")

		got, err := creds.AccessCredential(ctx)
		require.NoError(t, err)
		require.Equal(t, "access-sandbox-1", got)

		require.NoError(t, creds.DeleteAccessCredential(ctx))
		_, err = creds.AccessCredential(ctx)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("plaintext credential still readable", func(t *testing.T) {
		st := newTestStore(t)
		require.NoError(t, st.Settings().Set(ctx, store.KeyAccessToken, "access-sandbox-legacy"))

		sealer, err := cryptox.NewSealer("secret")
		require.NoError(t, err)

		got, err := store.NewCredentials(st, sealer).AccessCredential(ctx)
		require.NoError(t, err)
		require.Equal(t, "access-sandbox-legacy", got)
	})

	t.Run("gateway config", func(t *testing.T) {
		st := newTestStore(t)
		creds := store.NewCredentials(st, nil)

		_, ok, err := creds.GatewayConfig(ctx)
		require.NoError(t, err)
		require.False(t, ok)

		require.NoError(t, creds.SetGatewayConfig(ctx, linkapi.Config{UseRealAPI: true, APIURL: "http://localhost:8000"}))

		raw, err := st.Settings().Get(ctx, store.KeyUseRealAPI)
		require.NoError(t, err)
		require.Equal(t, "true", raw)

		cfg, ok, err := creds.GatewayConfig(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, cfg.UseRealAPI)
		require.Equal(t, "http://localhost:8000", cfg.APIURL)
	})
}
