/*
Package linkapi is the client for the account-aggregation backend that sits in
front of the Plaid-style link flow.

# Overview

The backend is optional. A Client is built from an explicit Config value and
never reads ambient state, so several clients with different settings can
coexist (one per test, or a fresh one after the operator changes settings):

	client := linkapi.NewClient(linkapi.Config{
		UseRealAPI: true,
		APIURL:     "http://localhost:8000",
		Timeout:    10 * time.Second,
	})

	token, err := client.CreateLinkToken(ctx)

When UseRealAPI is false every call returns ErrNotConfigured without touching
the network. Callers decide what to do with that; the finlink data service
falls back to its simulation.

# Errors

Failures are typed so callers can tell configuration problems apart from
remote ones:

  - ErrNotConfigured: disabled, or the base URL is malformed
  - *HTTPStatusError: the backend answered with a non-2xx status
  - *NetworkError: the request never produced a response (DNS, refused,
    timeout)

	var statusErr *linkapi.HTTPStatusError
	if errors.As(err, &statusErr) {
		log.Printf("backend said %d: %s", statusErr.StatusCode, statusErr.Body)
	}

# Endpoints

	GET  /health
	POST /plaid/create_link_token
	POST /plaid/exchange_token       { public_token }
	POST /plaid/accounts             { access_token }
	POST /plaid/transactions         { access_token, start_date, end_date }

CheckHealth is a probe for status displays only. Functional calls never
consult its last result.
*/
package linkapi
