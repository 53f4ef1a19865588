package simulate_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
	"github.com/aussiebroadwan/finlink/internal/finlink/simulate"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 20, 15, 30, 0, 0, time.UTC)

func newGenerator() *simulate.Generator {
	return simulate.New(simulate.WithSeed(7), simulate.WithClock(func() time.Time { return fixedNow }))
}

func TestTokensArePrefixedAndUnique(t *testing.T) {
	t.Parallel()

	g := newGenerator()
	require.True(t, strings.HasPrefix(g.LinkToken(), "link-sandbox-"))
	require.True(t, strings.HasPrefix(g.PublicToken(), "public-sandbox-"))
	require.True(t, strings.HasPrefix(g.AccessToken(), "access-sandbox-"))
	require.NotEqual(t, g.LinkToken(), g.LinkToken())
}

func TestAccountsShape(t *testing.T) {
	t.Parallel()

	g := newGenerator()
	accounts := g.Accounts()
	require.Len(t, accounts, 3)

	ids := []string{}
	subtypes := []string{}
	for _, a := range accounts {
		ids = append(ids, a.ID)
		subtypes = append(subtypes, a.Subtype)
	}
	require.Equal(t, []string{"acc_1", "acc_2", "acc_3"}, ids)
	require.Equal(t, []string{"checking", "savings", "credit card"}, subtypes)

	require.NotNil(t, accounts[2].Balance.Limit)
	require.Equal(t, "3000", accounts[2].Balance.Limit.String())
	require.Equal(t, "-450.21", accounts[2].Balance.Current.String())

	// Stable across calls.
	require.Equal(t, accounts[0].Balance.Available.String(), g.Accounts()[0].Balance.Available.String())
}

func TestMetadata(t *testing.T) {
	t.Parallel()

	md := newGenerator().Metadata()
	require.Equal(t, "Chase", md.Institution.Name)
	require.Equal(t, "ins_1", md.Institution.InstitutionID)
	require.Len(t, md.Accounts, 3)
	require.Nil(t, md.Accounts[0].Balance)
}

func TestTransactionsWithinRangeNewestFirst(t *testing.T) {
	t.Parallel()

	r := linkapi.DateRange{Start: fixedNow.AddDate(0, 0, -30), End: fixedNow}
	txs := newGenerator().Transactions(25, r)
	require.Len(t, txs, 25)

	lo := r.Start.Format(linkapi.DateLayout)
	hi := r.End.Format(linkapi.DateLayout)
	for i, tx := range txs {
		require.GreaterOrEqual(t, tx.Date, lo)
		require.LessOrEqual(t, tx.Date, hi)
		require.True(t, tx.Amount.GreaterThanOrEqual(tx.Amount.Abs()), "amounts are non-negative")
		require.Contains(t, []string{"acc_1", "acc_2", "acc_3"}, tx.AccountID)
		if i > 0 {
			require.LessOrEqual(t, tx.Date, txs[i-1].Date)
		}
	}
}

func TestTransactionsSeedIsRepeatable(t *testing.T) {
	t.Parallel()

	r := linkapi.DateRange{Start: fixedNow.AddDate(0, 0, -30), End: fixedNow}
	a := newGenerator().Transactions(10, r)
	b := newGenerator().Transactions(10, r)
	require.Equal(t, a, b)
}

func TestDashboardTransactions(t *testing.T) {
	t.Parallel()

	r := linkapi.DateRange{Start: fixedNow.AddDate(0, 0, -30), End: fixedNow}
	txs := newGenerator().DashboardTransactions(200, r)
	require.Len(t, txs, 200)

	for i, tx := range txs {
		switch tx.Type {
		case domain.TransactionIncome:
			require.True(t, tx.Amount.IntPart() >= 500 && tx.Amount.IntPart() < 2500)
		case domain.TransactionExpense:
			require.True(t, tx.Amount.IntPart() <= -10 && tx.Amount.IntPart() > -210)
		case domain.TransactionTransfer:
			abs := tx.Amount.Abs().IntPart()
			require.True(t, abs >= 100 && abs < 600)
		default:
			t.Fatalf("unexpected type %q", tx.Type)
		}
		require.Contains(t, domain.AccountNames, tx.Account)
		if i > 0 {
			require.False(t, tx.Date.After(txs[i-1].Date))
		}
	}
}

func TestBalanceHistory(t *testing.T) {
	t.Parallel()

	points := newGenerator().BalanceHistory(30, fixedNow)
	require.Len(t, points, 30)
	require.Equal(t, "Apr 21", points[0].Label)
	require.Equal(t, "May 20", points[29].Label)

	for i, p := range points {
		base := 5000 + float64(i*100)
		f, _ := p.Balance.Float64()
		require.InDelta(t, base, f, 500.01)
		require.False(t, p.Balance.IsNegative())
	}
}

func TestDashboardAccounts(t *testing.T) {
	t.Parallel()

	accounts := newGenerator().DashboardAccounts()
	require.Len(t, accounts, 3)
	require.Equal(t, "-1243.45", accounts[2].Balance.String())
}
