package linkapi

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for transaction dates and ranges.
const DateLayout = "2006-01-02"

// Balance of an account. Limit is only set for credit accounts.
type Balance struct {
	Available decimal.Decimal  `json:"available"`
	Current   decimal.Decimal  `json:"current"`
	Limit     *decimal.Decimal `json:"limit,omitempty"`
}

// Account is one linked account at the institution.
type Account struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Subtype string   `json:"subtype"`
	Mask    string   `json:"mask"`
	Balance *Balance `json:"balance,omitempty"`
}

// Institution identifies the linked bank.
type Institution struct {
	Name          string `json:"name"`
	InstitutionID string `json:"institution_id"`
	Logo          string `json:"logo,omitempty"`
}

// LinkMetadata accompanies a successful widget session.
type LinkMetadata struct {
	Institution Institution `json:"institution"`
	Accounts    []Account   `json:"accounts"`
}

// Transaction as reported by the institution.
type Transaction struct {
	ID           string          `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Name         string          `json:"name"`
	MerchantName string          `json:"merchant_name,omitempty"`
	Category     []string        `json:"category"`
	Pending      bool            `json:"pending"`
	AccountID    string          `json:"account_id"`
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

type linkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

type exchangeRequest struct {
	PublicToken string `json:"public_token"`
}

type exchangeResponse struct {
	AccessToken string `json:"access_token"`
}

type accountsRequest struct {
	AccessToken string `json:"access_token"`
}

type accountsResponse struct {
	Accounts []Account `json:"accounts"`
}

type transactionsRequest struct {
	AccessToken string `json:"access_token"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type transactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}
