package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
		return true
	}
	return false
}

// Transaction is a dashboard-level entry. Amount is signed: negative is money
// out, positive is money in, transfers go either way.
type Transaction struct {
	ID       string          `json:"id"`
	Date     time.Time       `json:"date"`
	Merchant string          `json:"merchant"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Type     TransactionType `json:"type"`
	Account  string          `json:"account"` // account display name, not a linked account id
	Manual   bool            `json:"manual,omitempty"`
}

// Categories offered by the manual entry form.
var Categories = []string{
	"Food & Dining",
	"Shopping",
	"Housing",
	"Transportation",
	"Travel",
	"Coffee",
	"Entertainment",
	"Health",
	"Education",
	"Other",
}

// AccountNames are the dashboard account labels.
var AccountNames = []string{"Checking Account", "Savings Account", "Credit Card"}
