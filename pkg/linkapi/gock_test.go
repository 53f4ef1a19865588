package linkapi_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"
)

// Not parallel: gock keeps its mocks in package state.
func TestExchangeTokenSendsPublicToken(t *testing.T) {
	defer gock.Off()

	client := linkapi.NewClient(linkapi.Config{UseRealAPI: true, APIURL: "http://backend.test"})
	gock.InterceptClient(client.HTTPClient)
	defer gock.RestoreClient(client.HTTPClient)

	gock.New("http://backend.test").
		Post("/plaid/exchange_token").
		MatchType("json").
		JSON(map[string]string{"public_token": "public-sandbox-xyz"}).
		Reply(200).
		JSON(map[string]string{"access_token": "access-sandbox-xyz"})

	access, err := client.ExchangeToken(context.Background(), "public-sandbox-xyz")
	require.NoError(t, err)
	require.Equal(t, "access-sandbox-xyz", access)
	require.True(t, gock.IsDone())
}

func TestBackendCookiesAreReplayed(t *testing.T) {
	defer gock.Off()

	client := linkapi.NewClient(linkapi.Config{UseRealAPI: true, APIURL: "http://backend.test"})
	gock.InterceptClient(client.HTTPClient)
	defer gock.RestoreClient(client.HTTPClient)

	gock.New("http://backend.test").
		Post("/plaid/create_link_token").
		Reply(200).
		SetHeader("Set-Cookie", "session=abc; Path=/").
		JSON(map[string]string{"link_token": "link-sandbox-1"})

	gock.New("http://backend.test").
		Post("/plaid/accounts").
		MatchHeader("Cookie", "session=abc").
		Reply(200).
		JSON(map[string]any{"accounts": []any{}})

	ctx := context.Background()
	_, err := client.CreateLinkToken(ctx)
	require.NoError(t, err)

	accounts, err := client.FetchAccounts(ctx, "access-sandbox-1")
	require.NoError(t, err)
	require.Empty(t, accounts)
	require.True(t, gock.IsDone())
}
