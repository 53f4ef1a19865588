package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardAccount is a summary card on the dashboard.
type DashboardAccount struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	Type    string          `json:"type"`
}

type BalancePoint struct {
	Date    time.Time       `json:"date"`
	Label   string          `json:"label"`
	Balance decimal.Decimal `json:"balance"`
}

type CategorySpend struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type AccountSummary struct {
	TotalBalance decimal.Decimal    `json:"total_balance"`
	Income       decimal.Decimal    `json:"income"`
	Expenses     decimal.Decimal    `json:"expenses"`
	Accounts     []DashboardAccount `json:"accounts"`
}

// Dashboard is everything the dashboard page renders in one payload.
type Dashboard struct {
	Summary        AccountSummary  `json:"summary"`
	Transactions   []Transaction   `json:"transactions"`
	Spending       []CategorySpend `json:"spending"`
	BalanceHistory []BalancePoint  `json:"balance_history"`
}

// TransactionStats are the totals shown above the transactions list.
type TransactionStats struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Count    int             `json:"count"`
}
