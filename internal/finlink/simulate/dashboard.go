package simulate

import (
	"sort"
	"strconv"
	"time"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/shopspring/decimal"
)

var (
	dashboardCategories = []string{"Food & Dining", "Shopping", "Housing", "Transportation", "Travel", "Coffee", "Other"}
	dashboardMerchants  = []string{
		"Amazon", "Walmart", "Target", "Starbucks", "Uber", "Netflix",
		"Spotify", "Apple", "Rent", "Electric Company", "Gas Station",
		"Grocery Store", "Restaurant", "Gym",
	}
)

// DashboardTransactions generates count dashboard transactions with
// timestamps inside r, newest first. Roughly 30% are income, 56% expenses and
// the rest transfers in either direction.
func (g *Generator) DashboardTransactions(count int, r linkapi.DateRange) []domain.Transaction {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().UTC()
	txs := make([]domain.Transaction, 0, count)
	for i := 0; i < count; i++ {
		day := g.dayIn(r)
		at := time.Date(day.Year(), day.Month(), day.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.UTC)

		var typ domain.TransactionType
		switch {
		case g.rng.Float64() > 0.7:
			typ = domain.TransactionIncome
		case g.rng.Float64() > 0.2:
			typ = domain.TransactionExpense
		default:
			typ = domain.TransactionTransfer
		}

		var amount int64
		switch typ {
		case domain.TransactionIncome:
			amount = g.rng.Int64N(2000) + 500
		case domain.TransactionExpense:
			amount = -(g.rng.Int64N(200) + 10)
		default:
			amount = g.rng.Int64N(500) + 100
			if g.rng.Float64() <= 0.5 {
				amount = -amount
			}
		}

		txs = append(txs, domain.Transaction{
			ID:       "trans-" + strconv.Itoa(i),
			Date:     at,
			Merchant: pick(g.rng, dashboardMerchants),
			Amount:   decimal.NewFromInt(amount),
			Category: pick(g.rng, dashboardCategories),
			Type:     typ,
			Account:  pick(g.rng, domain.AccountNames),
		})
	}

	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })
	return txs
}

// BalanceHistory returns one point per day for the days ending at end,
// oldest first. The trend climbs by 100 a day with +/-500 of noise and never
// drops below zero.
func (g *Generator) BalanceHistory(days int, end time.Time) []domain.BalancePoint {
	g.mu.Lock()
	defer g.mu.Unlock()

	end = truncateDay(end)
	points := make([]domain.BalancePoint, 0, days)
	for i := 0; i < days; i++ {
		date := end.AddDate(0, 0, -(days - 1 - i))
		balance := decimal.NewFromFloat(5000 + float64(i*100) + g.rng.Float64()*1000 - 500).Round(2)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
		points = append(points, domain.BalancePoint{
			Date:    date,
			Label:   date.Format("Jan 2"),
			Balance: balance,
		})
	}
	return points
}

// DashboardAccounts are the fixed summary cards.
func (g *Generator) DashboardAccounts() []domain.DashboardAccount {
	return []domain.DashboardAccount{
		{ID: "acc1", Name: "Checking", Balance: decimal.RequireFromString("4578.23"), Type: "depository"},
		{ID: "acc2", Name: "Savings", Balance: decimal.RequireFromString("12450.00"), Type: "depository"},
		{ID: "acc3", Name: "Credit Card", Balance: decimal.RequireFromString("-1243.45"), Type: "credit"},
	}
}

// Now is the generator's clock.
func (g *Generator) Now() time.Time { return g.now() }
