package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aussiebroadwan/finlink/pkg/cryptox"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
)

// Credentials is the credential store: the access credential and the gateway
// configuration on top of Settings. When a Sealer is set the credential is
// encrypted at rest; plaintext values written before sealing was enabled are
// still readable.
type Credentials struct {
	st     Store
	sealer *cryptox.Sealer
}

func NewCredentials(st Store, sealer *cryptox.Sealer) *Credentials {
	return &Credentials{st: st, sealer: sealer}
}

// AccessCredential returns ErrNotFound when nothing is linked.
func (c *Credentials) AccessCredential(ctx context.Context) (string, error) {
	v, err := c.st.Settings().Get(ctx, KeyAccessToken)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", ErrNotFound
	}

	if c.sealer == nil {
		return v, nil
	}

	plain, err := c.sealer.Open(v)
	if errors.Is(err, cryptox.ErrUnsealed) {
		return v, nil
	}
	if err != nil {
		return "", fmt.Errorf("store: open access credential: %w", err)
	}
	return plain, nil
}

func (c *Credentials) SetAccessCredential(ctx context.Context, credential string) error {
	v := credential
	if c.sealer != nil {
		sealed, err := c.sealer.Seal(credential)
		if err != nil {
			return fmt.Errorf("store: seal access credential: %w", err)
		}
		v = sealed
	}
	return c.st.Settings().Set(ctx, KeyAccessToken, v)
}

func (c *Credentials) DeleteAccessCredential(ctx context.Context) error {
	return c.st.Settings().Delete(ctx, KeyAccessToken)
}

// GatewayConfig returns the persisted gateway settings. ok is false when
// nothing was ever saved.
func (c *Credentials) GatewayConfig(ctx context.Context) (cfg linkapi.Config, ok bool, err error) {
	settings := c.st.Settings()

	useReal, err := settings.Get(ctx, KeyUseRealAPI)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return cfg, false, err
	default:
		ok = true
		cfg.UseRealAPI, _ = strconv.ParseBool(useReal)
	}

	apiURL, err := settings.Get(ctx, KeyAPIURL)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return cfg, false, err
	default:
		ok = true
		cfg.APIURL = apiURL
	}

	return cfg, ok, nil
}

// SetGatewayConfig writes both keys atomically.
func (c *Credentials) SetGatewayConfig(ctx context.Context, cfg linkapi.Config) error {
	return c.st.WithTx(ctx, func(tx Store) error {
		if err := tx.Settings().Set(ctx, KeyUseRealAPI, strconv.FormatBool(cfg.UseRealAPI)); err != nil {
			return err
		}
		return tx.Settings().Set(ctx, KeyAPIURL, cfg.APIURL)
	})
}
