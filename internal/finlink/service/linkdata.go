package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aussiebroadwan/finlink/internal/finlink/metrics"
	"github.com/aussiebroadwan/finlink/internal/finlink/simulate"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/aussiebroadwan/finlink/pkg/slogx"
)

// Mode is the policy applied when the real backend fails.
type Mode string

const (
	// ModeFallback answers from the simulation and records the failure.
	ModeFallback Mode = "fallback"
	// ModeStrict returns the failure to the caller.
	ModeStrict Mode = "strict"
)

var ErrUnknownMode = errors.New("service: unknown gateway mode")

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeFallback, ModeStrict:
		return m, nil
	case "":
		return ModeFallback, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
	}
}

// Operation names used in logs and metrics.
const (
	OpCreateLinkToken   = "create_link_token"
	OpExchangeToken     = "exchange_token"
	OpFetchAccounts     = "fetch_accounts"
	OpFetchTransactions = "fetch_transactions"
)

// DefaultTransactionCount is how many simulated transactions a fetch returns.
const DefaultTransactionCount = 25

// LinkDataService serves the link flow's data operations from the real
// backend when it is enabled and from the simulation otherwise. A disabled
// gateway is not a failure and simulates in both modes.
type LinkDataService struct {
	mu      sync.RWMutex
	client  *linkapi.Client
	mode    Mode
	latency time.Duration

	sim     *simulate.Generator
	metrics *metrics.Metrics
}

func NewLinkDataService(cfg linkapi.Config, mode Mode, sim *simulate.Generator, m *metrics.Metrics) *LinkDataService {
	if mode == "" {
		mode = ModeFallback
	}
	return &LinkDataService{
		client:  linkapi.NewClient(cfg),
		mode:    mode,
		sim:     sim,
		metrics: m,
	}
}

// SetSimulatedLatency delays every simulated answer, for demos.
func (s *LinkDataService) SetSimulatedLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
}

// Configure replaces the gateway with a fresh client for cfg. Calls already
// in flight finish against the old one. A zero Timeout keeps the current one.
func (s *LinkDataService) Configure(cfg linkapi.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg.Timeout <= 0 {
		cfg.Timeout = s.client.Config().Timeout
	}
	s.client = linkapi.NewClient(cfg)
}

func (s *LinkDataService) GatewayConfig() linkapi.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client.Config()
}

func (s *LinkDataService) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *LinkDataService) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

// RealMode reports whether the gateway is enabled.
func (s *LinkDataService) RealMode() bool { return s.GatewayConfig().UseRealAPI }

func (s *LinkDataService) snapshot() (*linkapi.Client, Mode, time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client, s.mode, s.latency
}

func (s *LinkDataService) CreateLinkToken(ctx context.Context) (string, error) {
	return dispatch(ctx, s, OpCreateLinkToken,
		func(c *linkapi.Client) (string, error) { return c.CreateLinkToken(ctx) },
		s.sim.LinkToken,
	)
}

func (s *LinkDataService) ExchangeToken(ctx context.Context, publicToken string) (string, error) {
	return dispatch(ctx, s, OpExchangeToken,
		func(c *linkapi.Client) (string, error) { return c.ExchangeToken(ctx, publicToken) },
		s.sim.AccessToken,
	)
}

func (s *LinkDataService) FetchAccounts(ctx context.Context, accessToken string) ([]linkapi.Account, error) {
	return dispatch(ctx, s, OpFetchAccounts,
		func(c *linkapi.Client) ([]linkapi.Account, error) { return c.FetchAccounts(ctx, accessToken) },
		s.sim.Accounts,
	)
}

func (s *LinkDataService) FetchTransactions(ctx context.Context, accessToken string, r linkapi.DateRange) ([]linkapi.Transaction, error) {
	return dispatch(ctx, s, OpFetchTransactions,
		func(c *linkapi.Client) ([]linkapi.Transaction, error) {
			return c.FetchTransactions(ctx, accessToken, r)
		},
		func() []linkapi.Transaction { return s.sim.Transactions(DefaultTransactionCount, r) },
	)
}

// CheckHealth probes the current gateway. It never affects functional calls.
func (s *LinkDataService) CheckHealth(ctx context.Context) bool {
	client, _, _ := s.snapshot()
	return client.CheckHealth(ctx)
}

func dispatch[T any](
	ctx context.Context,
	s *LinkDataService,
	op string,
	remote func(*linkapi.Client) (T, error),
	simulated func() T,
) (T, error) {
	client, mode, latency := s.snapshot()
	log := slogx.FromContext(ctx).With("operation", op)

	if client.Enabled() {
		v, err := remote(client)
		if err == nil {
			s.metrics.GatewayCall(op, "real", "ok")
			return v, nil
		}

		s.metrics.GatewayCall(op, "real", "error")
		if mode == ModeStrict {
			log.Error("gateway call failed", "error", err)
			var zero T
			return zero, fmt.Errorf("%s: %w", op, err)
		}

		s.metrics.GatewayFallback(op)
		log.Warn("gateway call failed, using simulated data", "error", err, "remote", linkapi.IsRemote(err))
	}

	if latency > 0 {
		timer := time.NewTimer(latency)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}

	s.metrics.GatewayCall(op, "simulated", "ok")
	return simulated(), nil
}
