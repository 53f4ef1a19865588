package service

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
	"github.com/aussiebroadwan/finlink/internal/finlink/simulate"
	"github.com/aussiebroadwan/finlink/internal/finlink/store"
	"github.com/aussiebroadwan/finlink/pkg/idx"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/aussiebroadwan/finlink/pkg/slogx"
	"github.com/shopspring/decimal"
)

const (
	// DashboardTransactionCount is how many simulated transactions the
	// dashboard shows.
	DashboardTransactionCount = 20
	// DashboardWindowDays is both the transaction window and the length of
	// the balance history.
	DashboardWindowDays = 30
)

// TransactionFilter narrows the transactions page.
type TransactionFilter struct {
	Period   domain.Period
	Type     domain.TransactionType
	Category string
	// Search matches merchant or category, case-insensitively.
	Search string
}

// TransactionPage is the transactions page payload.
type TransactionPage struct {
	Period       domain.Period           `json:"period"`
	Transactions []domain.Transaction    `json:"transactions"`
	Stats        domain.TransactionStats `json:"stats"`
}

// DashboardService serves the demo dashboard: simulated activity merged with
// the manual transactions the owner entered.
type DashboardService struct {
	Sim   *simulate.Generator
	Store store.Store
}

func NewDashboardService(sim *simulate.Generator, st store.Store) *DashboardService {
	return &DashboardService{Sim: sim, Store: st}
}

func (s *DashboardService) Dashboard(ctx context.Context, owner string) (domain.Dashboard, error) {
	now := s.Sim.Now().UTC()
	window := linkapi.DateRange{Start: now.AddDate(0, 0, -DashboardWindowDays), End: now}

	manual, err := s.manualIn(ctx, owner, window)
	if err != nil {
		return domain.Dashboard{}, err
	}
	txs := merge(s.Sim.DashboardTransactions(DashboardTransactionCount, window), manual)

	accounts := s.Sim.DashboardAccounts()
	stats := Stats(txs)

	return domain.Dashboard{
		Summary: domain.AccountSummary{
			TotalBalance: TotalBalance(accounts),
			Income:       stats.Income,
			Expenses:     stats.Expenses,
			Accounts:     accounts,
		},
		Transactions:   txs,
		Spending:       SpendingByCategory(txs),
		BalanceHistory: s.Sim.BalanceHistory(DashboardWindowDays, now),
	}, nil
}

// Transactions returns the transactions page for f.Period, newest first,
// with stats computed over the filtered list.
func (s *DashboardService) Transactions(ctx context.Context, owner string, f TransactionFilter) (TransactionPage, error) {
	if f.Period == "" {
		f.Period = domain.PeriodMonth
	}

	now := s.Sim.Now().UTC()
	window := linkapi.DateRange{Start: f.Period.Start(now), End: now}

	manual, err := s.manualIn(ctx, owner, window)
	if err != nil {
		return TransactionPage{}, err
	}
	txs := merge(s.Sim.DashboardTransactions(f.Period.SampleSize(), window), manual)
	txs = slices.DeleteFunc(txs, func(t domain.Transaction) bool { return !f.matches(t) })

	return TransactionPage{
		Period:       f.Period,
		Transactions: txs,
		Stats:        Stats(txs),
	}, nil
}

// AddManual validates in and stores it for owner. A rejected form returns a
// *domain.ValidationError.
func (s *DashboardService) AddManual(ctx context.Context, owner string, in domain.ManualTransactionInput) (domain.Transaction, error) {
	tx, err := domain.NewManualTransaction("manual-"+idx.New().String(), in)
	if err != nil {
		return domain.Transaction{}, err
	}

	if err := s.Store.ManualTransactions().Create(ctx, owner, tx); err != nil {
		return domain.Transaction{}, err
	}

	slogx.FromContext(ctx).Info("manual transaction added", "id", tx.ID, "type", tx.Type)
	return tx, nil
}

func (s *DashboardService) manualIn(ctx context.Context, owner string, r linkapi.DateRange) ([]domain.Transaction, error) {
	all, err := s.Store.ManualTransactions().List(ctx, owner)
	if err != nil {
		return nil, err
	}

	// Manual entries are dated by day, so the first day counts whole.
	start := r.Start.AddDate(0, 0, -1)
	return slices.DeleteFunc(all, func(t domain.Transaction) bool { return t.Date.Before(start) }), nil
}

func (f TransactionFilter) matches(t domain.Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return strings.Contains(strings.ToLower(t.Merchant), q) ||
			strings.Contains(strings.ToLower(t.Category), q)
	}
	return true
}

// merge puts manual entries ahead of simulated ones and sorts newest first.
func merge(simulated, manual []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(simulated)+len(manual))
	out = append(out, manual...)
	out = append(out, simulated...)
	slices.SortStableFunc(out, func(a, b domain.Transaction) int { return b.Date.Compare(a.Date) })
	return out
}

// Stats sums income and the magnitude of expenses. Transfers only count.
func Stats(txs []domain.Transaction) domain.TransactionStats {
	stats := domain.TransactionStats{Income: decimal.Zero, Expenses: decimal.Zero, Count: len(txs)}
	for _, t := range txs {
		switch t.Type {
		case domain.TransactionIncome:
			stats.Income = stats.Income.Add(t.Amount)
		case domain.TransactionExpense:
			stats.Expenses = stats.Expenses.Add(t.Amount)
		}
	}
	stats.Expenses = stats.Expenses.Abs()
	return stats
}

// SpendingByCategory totals expenses per category, largest first. Categories
// without spending are left out.
func SpendingByCategory(txs []domain.Transaction) []domain.CategorySpend {
	totals := map[string]decimal.Decimal{}
	for _, t := range txs {
		if t.Type != domain.TransactionExpense {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	out := make([]domain.CategorySpend, 0, len(totals))
	for cat, sum := range totals {
		if amount := sum.Abs(); amount.IsPositive() {
			out = append(out, domain.CategorySpend{Category: cat, Amount: amount})
		}
	}
	slices.SortFunc(out, func(a, b domain.CategorySpend) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return out
}

func TotalBalance(accounts []domain.DashboardAccount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}
