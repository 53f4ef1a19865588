package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
	"github.com/aussiebroadwan/finlink/internal/finlink/service"
	"github.com/aussiebroadwan/finlink/internal/finlink/simulate"
	"github.com/aussiebroadwan/finlink/internal/finlink/store"
	"github.com/aussiebroadwan/finlink/internal/finlink/store/drivers/sqlite"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newDashboardService(t *testing.T) *service.DashboardService {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	sim := simulate.New(simulate.WithSeed(42), simulate.WithClock(func() time.Time { return fixedNow }))
	return service.NewDashboardService(sim, st)
}

func tx(typ domain.TransactionType, category, amount string) domain.Transaction {
	return domain.Transaction{Type: typ, Category: category, Amount: decimal.RequireFromString(amount)}
}

func TestStats(t *testing.T) {
	t.Parallel()

	stats := service.Stats([]domain.Transaction{
		tx(domain.TransactionIncome, "Income", "1500"),
		tx(domain.TransactionExpense, "Shopping", "-40.50"),
		tx(domain.TransactionExpense, "Coffee", "-4.50"),
		tx(domain.TransactionTransfer, "Other", "-300"),
	})

	require.True(t, decimal.RequireFromString("1500").Equal(stats.Income))
	require.True(t, decimal.RequireFromString("45").Equal(stats.Expenses))
	require.Equal(t, 4, stats.Count)
}

func TestSpendingByCategory(t *testing.T) {
	t.Parallel()

	spend := service.SpendingByCategory([]domain.Transaction{
		tx(domain.TransactionExpense, "Coffee", "-4.50"),
		tx(domain.TransactionExpense, "Shopping", "-40"),
		tx(domain.TransactionExpense, "Coffee", "-5.50"),
		tx(domain.TransactionIncome, "Shopping", "100"),
		tx(domain.TransactionTransfer, "Travel", "-500"),
	})

	require.Len(t, spend, 2)
	require.Equal(t, "Shopping", spend[0].Category)
	require.Equal(t, "Coffee", spend[1].Category)
	require.True(t, decimal.NewFromInt(10).Equal(spend[1].Amount))
}

func TestTotalBalance(t *testing.T) {
	t.Parallel()

	sim := simulate.New()
	require.Equal(t, "15784.78", service.TotalBalance(sim.DashboardAccounts()).StringFixed(2))
}

func TestDashboardIncludesManualEntries(t *testing.T) {
	t.Parallel()

	svc := newDashboardService(t)
	ctx := context.Background()

	added, err := svc.AddManual(ctx, "ana@example.com", domain.ManualTransactionInput{
		Date:     fixedNow.AddDate(0, 0, -2),
		Amount:   "12.34",
		Type:     domain.TransactionExpense,
		Category: "Coffee",
		Merchant: "Corner Cafe",
		Account:  "Checking Account",
	})
	require.NoError(t, err)
	require.True(t, added.Manual)
	require.Equal(t, "-12.34", added.Amount.StringFixed(2))

	d, err := svc.Dashboard(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Len(t, d.Transactions, service.DashboardTransactionCount+1)
	require.Len(t, d.BalanceHistory, service.DashboardWindowDays)
	require.Len(t, d.Summary.Accounts, 3)
	require.Equal(t, "15784.78", d.Summary.TotalBalance.StringFixed(2))

	for i := 1; i < len(d.Transactions); i++ {
		require.False(t, d.Transactions[i].Date.After(d.Transactions[i-1].Date))
	}

	other, err := svc.Dashboard(ctx, "bob@example.com")
	require.NoError(t, err)
	require.Len(t, other.Transactions, service.DashboardTransactionCount)
}

func TestAddManualRejectsInvalidForm(t *testing.T) {
	t.Parallel()

	svc := newDashboardService(t)

	_, err := svc.AddManual(context.Background(), "ana@example.com", domain.ManualTransactionInput{Amount: "abc"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "must be a number", verr.Fields["amount"])
	require.Equal(t, "required", verr.Fields["merchant"])
}

func TestTransactionsPageFilters(t *testing.T) {
	t.Parallel()

	svc := newDashboardService(t)
	ctx := context.Background()

	page, err := svc.Transactions(ctx, "ana@example.com", service.TransactionFilter{Period: domain.PeriodWeek})
	require.NoError(t, err)
	require.Equal(t, domain.PeriodWeek.SampleSize(), page.Stats.Count)

	start := domain.PeriodWeek.Start(fixedNow).AddDate(0, 0, -1)
	for _, tr := range page.Transactions {
		require.False(t, tr.Date.Before(start))
	}

	expenses, err := svc.Transactions(ctx, "ana@example.com", service.TransactionFilter{
		Period: domain.PeriodYear,
		Type:   domain.TransactionExpense,
	})
	require.NoError(t, err)
	require.True(t, expenses.Stats.Income.IsZero())
	for _, tr := range expenses.Transactions {
		require.Equal(t, domain.TransactionExpense, tr.Type)
	}

	search, err := svc.Transactions(ctx, "ana@example.com", service.TransactionFilter{Search: "zzz-no-match"})
	require.NoError(t, err)
	require.Equal(t, domain.PeriodMonth, search.Period)
	require.Empty(t, search.Transactions)
}

func TestInstitutionTransactionsRequireLink(t *testing.T) {
	t.Parallel()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	creds := store.NewCredentials(st, nil)
	data := service.NewLinkDataService(linkapi.Config{}, service.ModeFallback, simulate.New(), nil)
	svc := service.NewInstitutionService(data, creds)

	r := linkapi.DateRange{Start: fixedNow.AddDate(0, 0, -30), End: fixedNow}
	_, err = svc.Transactions(context.Background(), r)
	require.True(t, errors.Is(err, domain.ErrNotLinked))

	require.NoError(t, creds.SetAccessCredential(context.Background(), "access-sandbox-1"))
	txs, err := svc.Transactions(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, txs, service.DefaultTransactionCount)
}
