package service

import (
	"context"
	"log/slog"
	"time"
)

// Expirer drops sessions whose token has run out.
type Expirer interface {
	ExpireSessions(ctx context.Context) int
}

// Sweep is one periodic cleanup job. Run reports how many items it removed.
type Sweep struct {
	Name string
	Run  func(ctx context.Context) int
}

// SessionSweep closes expired sessions so their link attempts and
// notification feeds do not pile up.
func SessionSweep(e Expirer) Sweep {
	return Sweep{Name: "sessions", Run: e.ExpireSessions}
}

// HousekeepingService runs its sweeps in order on a fixed interval.
type HousekeepingService struct {
	Sweeps   []Sweep
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults interval to 5 minutes.
func NewHousekeepingService(logger *slog.Logger, interval time.Duration, sweeps ...Sweep) *HousekeepingService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &HousekeepingService{
		Sweeps:   sweeps,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping started", "interval", s.Interval, "sweeps", len(s.Sweeps))
}

// Stop waits for an in-flight sweep to finish.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) sweep(ctx context.Context) {
	for _, sw := range s.Sweeps {
		start := time.Now()
		n := sw.Run(ctx)

		level := slog.LevelDebug
		if n > 0 {
			level = slog.LevelInfo
		}
		s.Logger.Log(ctx, level, "housekeeping sweep",
			"sweep", sw.Name,
			"removed", n,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
