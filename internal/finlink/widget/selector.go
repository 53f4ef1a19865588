package widget

import "context"

// Selector picks the provider per Open: Hosted when one is wired and the
// gateway is in real mode, Simulated otherwise.
type Selector struct {
	Simulated Provider
	Hosted    Provider // may be nil
	RealMode  func() bool
}

func (s *Selector) Choose() Provider {
	if s.Hosted != nil && s.RealMode != nil && s.RealMode() {
		return s.Hosted
	}
	return s.Simulated
}

func (s *Selector) Name() string { return s.Choose().Name() }

func (s *Selector) Open(ctx context.Context, linkToken string, cb Callbacks) error {
	return s.Choose().Open(ctx, linkToken, cb)
}

// Cancel forwards to the hosted provider, the only one that keeps state.
func (s *Selector) Cancel(linkToken string) {
	if h, ok := s.Hosted.(interface{ Cancel(string) }); ok {
		h.Cancel(linkToken)
	}
}
