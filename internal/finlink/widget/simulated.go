package widget

import (
	"context"
	"time"

	"github.com/aussiebroadwan/finlink/internal/finlink/simulate"
)

// Simulated stands in for the institution login: it always succeeds with a
// simulated public token after Delay. Cancelling ctx during the delay counts
// as the user closing the widget.
type Simulated struct {
	Generator *simulate.Generator
	Delay     time.Duration
}

func NewSimulated(gen *simulate.Generator, delay time.Duration) *Simulated {
	return &Simulated{Generator: gen, Delay: delay}
}

func (s *Simulated) Name() string { return "simulated" }

func (s *Simulated) Open(ctx context.Context, linkToken string, cb Callbacks) error {
	md := s.Generator.Metadata()
	cb.event(ctx, EventOpen, md)

	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			cb.event(ctx, EventExit, md)
			cb.exit(context.WithoutCancel(ctx), nil, md)
			return nil
		}
	}

	cb.event(ctx, EventHandoff, md)
	cb.success(ctx, s.Generator.PublicToken(), md)
	return nil
}
