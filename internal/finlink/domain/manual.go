package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const requiredReason = "required"

// ManualTransactionInput is the add-transaction form as submitted.
type ManualTransactionInput struct {
	Date     time.Time       `json:"date"`
	Amount   string          `json:"amount"`
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	Merchant string          `json:"merchant"`
	Account  string          `json:"account"`
}

// Validate returns field name to message, or nil when the input is usable.
func (in ManualTransactionInput) Validate() map[string]string {
	errs := make(map[string]string)

	if in.Date.IsZero() {
		errs["date"] = requiredReason
	}

	switch amount := strings.TrimSpace(in.Amount); {
	case amount == "":
		errs["amount"] = requiredReason
	default:
		if _, err := decimal.NewFromString(amount); err != nil {
			errs["amount"] = "must be a number"
		}
	}

	switch {
	case in.Type == "":
		errs["type"] = requiredReason
	case !in.Type.Valid():
		errs["type"] = "must be one of income, expense, transfer"
	}

	if strings.TrimSpace(in.Category) == "" {
		errs["category"] = requiredReason
	}
	if strings.TrimSpace(in.Merchant) == "" {
		errs["merchant"] = requiredReason
	}
	if strings.TrimSpace(in.Account) == "" {
		errs["account"] = requiredReason
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// NewManualTransaction validates in and builds the transaction it describes.
// Expenses are always stored negative and income always positive; transfers
// keep the sign the user typed.
func NewManualTransaction(id string, in ManualTransactionInput) (Transaction, error) {
	if errs := in.Validate(); errs != nil {
		return Transaction{}, &ValidationError{Fields: errs}
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(in.Amount))
	switch in.Type {
	case TransactionExpense:
		amount = amount.Abs().Neg()
	case TransactionIncome:
		amount = amount.Abs()
	}

	return Transaction{
		ID:       id,
		Date:     in.Date.UTC(),
		Merchant: strings.TrimSpace(in.Merchant),
		Amount:   amount,
		Category: strings.TrimSpace(in.Category),
		Type:     in.Type,
		Account:  strings.TrimSpace(in.Account),
		Manual:   true,
	}, nil
}
