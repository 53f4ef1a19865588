package linkapi

import (
	"context"
	"errors"
	"net/http"
)

// ErrEmptyResponse means the backend answered 2xx without the expected field.
var ErrEmptyResponse = errors.New("linkapi: empty response")

// CreateLinkToken requests a short-lived token for one link attempt.
func (c *Client) CreateLinkToken(ctx context.Context) (string, error) {
	var resp linkTokenResponse
	if err := c.callJSON(ctx, "/plaid/create_link_token", http.MethodPost, nil, &resp); err != nil {
		return "", err
	}

	if resp.LinkToken == "" {
		return "", ErrEmptyResponse
	}

	return resp.LinkToken, nil
}

// ExchangeToken trades a public token for a durable access credential.
func (c *Client) ExchangeToken(ctx context.Context, publicToken string) (string, error) {
	var resp exchangeResponse
	err := c.callJSON(ctx, "/plaid/exchange_token", http.MethodPost, exchangeRequest{PublicToken: publicToken}, &resp)
	if err != nil {
		return "", err
	}

	if resp.AccessToken == "" {
		return "", ErrEmptyResponse
	}

	return resp.AccessToken, nil
}

// FetchAccounts lists accounts reachable with accessToken.
func (c *Client) FetchAccounts(ctx context.Context, accessToken string) ([]Account, error) {
	var resp accountsResponse
	err := c.callJSON(ctx, "/plaid/accounts", http.MethodPost, accountsRequest{AccessToken: accessToken}, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Accounts, nil
}

// FetchTransactions lists transactions in r.
func (c *Client) FetchTransactions(ctx context.Context, accessToken string, r DateRange) ([]Transaction, error) {
	req := transactionsRequest{
		AccessToken: accessToken,
		StartDate:   r.Start.Format(DateLayout),
		EndDate:     r.End.Format(DateLayout),
	}

	var resp transactionsResponse
	if err := c.callJSON(ctx, "/plaid/transactions", http.MethodPost, req, &resp); err != nil {
		return nil, err
	}

	return resp.Transactions, nil
}

// CheckHealth reports whether the backend answers GET /health with a 2xx.
// A disabled client is never healthy.
func (c *Client) CheckHealth(ctx context.Context) bool {
	_, err := c.Call(ctx, "/health", http.MethodGet, nil)
	return err == nil
}
