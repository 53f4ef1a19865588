package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
)

var ErrNotFound = errors.New("store: not found")

// Keys of the persisted link state. Existing browser-era data used the same
// names, so they are kept as is.
const (
	KeyAccessToken = "plaid_access_token"
	KeyUseRealAPI  = "plaid_use_real_api"
	KeyAPIURL      = "plaid_api_url"
)

// Store is the root data access interface implemented by the sqlite and
// postgres drivers.
type Store interface {
	Settings() Settings
	ManualTransactions() ManualTransactions

	ApplyMigrations() error

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Settings is a string key/value table shared by every session.
type Settings interface {
	// Get returns ErrNotFound for a missing key.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete of a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// ManualTransactions are transactions users typed in, keyed by owner email.
type ManualTransactions interface {
	Create(ctx context.Context, owner string, tx domain.Transaction) error
	// List returns newest first.
	List(ctx context.Context, owner string) ([]domain.Transaction, error)
}
