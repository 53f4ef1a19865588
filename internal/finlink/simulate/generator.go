// Package simulate produces the demo data used when no aggregation backend is
// configured, or when the configured one fails and fallback is enabled.
package simulate

import (
	"math/rand/v2"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Generator is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

type Option func(*Generator)

// WithSeed makes the randomized output repeatable.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func New(opts ...Option) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) LinkToken() string   { return "link-sandbox-" + uuid.NewString() }
func (g *Generator) PublicToken() string { return "public-sandbox-" + uuid.NewString() }
func (g *Generator) AccessToken() string { return "access-sandbox-" + uuid.NewString() }

// Institution is the single institution the simulated widget links.
func (g *Generator) Institution() linkapi.Institution {
	return linkapi.Institution{Name: "Chase", InstitutionID: "ins_1"}
}

// Metadata is what the simulated widget reports on success. The accounts
// carry no balances, as a real widget would.
func (g *Generator) Metadata() linkapi.LinkMetadata {
	accounts := g.Accounts()
	for i := range accounts {
		accounts[i].Balance = nil
	}
	return linkapi.LinkMetadata{Institution: g.Institution(), Accounts: accounts}
}

// Accounts returns the fixed checking, savings and credit card accounts. The
// values are identical on every call.
func (g *Generator) Accounts() []linkapi.Account {
	limit := decimal.NewFromInt(3000)
	return []linkapi.Account{
		{
			ID: "acc_1", Name: "Checking Account", Type: "depository", Subtype: "checking", Mask: "0123",
			Balance: &linkapi.Balance{
				Available: decimal.RequireFromString("1250.45"),
				Current:   decimal.RequireFromString("1274.93"),
			},
		},
		{
			ID: "acc_2", Name: "Savings Account", Type: "depository", Subtype: "savings", Mask: "4567",
			Balance: &linkapi.Balance{
				Available: decimal.RequireFromString("5340.23"),
				Current:   decimal.RequireFromString("5340.23"),
			},
		},
		{
			ID: "acc_3", Name: "Credit Card", Type: "credit", Subtype: "credit card", Mask: "8901",
			Balance: &linkapi.Balance{
				Available: decimal.NewFromInt(2500),
				Current:   decimal.RequireFromString("-450.21"),
				Limit:     &limit,
			},
		},
	}
}

var (
	institutionCategories = [][]string{
		{"Food and Drink", "Restaurants"},
		{"Shops", "Grocery"},
		{"Transportation", "Ride Share"},
		{"Payment", "Credit Card"},
		{"Recreation", "Entertainment"},
		{"Service", "Subscription"},
	}
	institutionMerchants = []string{
		"Amazon", "Walmart", "Target", "Uber", "Netflix",
		"Spotify", "Whole Foods", "Starbucks", "Home Depot", "CVS Pharmacy",
	}
	linkedAccountIDs = []string{"acc_1", "acc_2", "acc_3"}
)

// Transactions generates count institution transactions dated inside r,
// newest first.
func (g *Generator) Transactions(count int, r linkapi.DateRange) []linkapi.Transaction {
	g.mu.Lock()
	defer g.mu.Unlock()

	txs := make([]linkapi.Transaction, 0, count)
	for i := 0; i < count; i++ {
		merchant := pick(g.rng, institutionMerchants)
		category := pick(g.rng, institutionCategories)
		txs = append(txs, linkapi.Transaction{
			ID:           "trans-" + strconv.Itoa(i),
			Amount:       decimal.NewFromFloat(g.rng.Float64() * 200).Round(2),
			Date:         g.dayIn(r).Format(linkapi.DateLayout),
			Name:         "Purchase at " + merchant,
			MerchantName: merchant,
			Category:     append([]string(nil), category...),
			Pending:      g.rng.Float64() < 0.1,
			AccountID:    pick(g.rng, linkedAccountIDs),
		})
	}

	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date > txs[j].Date })
	return txs
}

// dayIn picks a random calendar day in r. An inverted range collapses to End.
func (g *Generator) dayIn(r linkapi.DateRange) time.Time {
	end := truncateDay(r.End)
	days := int(end.Sub(truncateDay(r.Start)).Hours() / 24)
	if days <= 0 {
		return end
	}
	return end.AddDate(0, 0, -g.rng.IntN(days+1))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.IntN(len(xs))]
}
