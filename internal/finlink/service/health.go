package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/finlink/internal/finlink/metrics"
	"github.com/robfig/cron/v3"
)

// DefaultHealthSchedule probes every 30 seconds.
const DefaultHealthSchedule = "*/30 * * * * *"

// HealthStatus is the last probe result. It drives the "backend connected"
// indicator only.
type HealthStatus struct {
	Enabled   bool      `json:"enabled"`
	Connected bool      `json:"connected"`
	CheckedAt time.Time `json:"checked_at"`
}

// Prober is the health check of the gateway in use.
type Prober interface {
	CheckHealth(ctx context.Context) bool
	RealMode() bool
}

// HealthMonitor runs Prober on a cron schedule (with seconds) and remembers
// the last result.
type HealthMonitor struct {
	Prober   Prober
	Logger   *slog.Logger
	Schedule string
	Timeout  time.Duration

	metrics *metrics.Metrics
	cron    *cron.Cron

	mu   sync.RWMutex
	last HealthStatus
}

func NewHealthMonitor(p Prober, logger *slog.Logger, schedule string, m *metrics.Metrics) *HealthMonitor {
	if schedule == "" {
		schedule = DefaultHealthSchedule
	}
	return &HealthMonitor{
		Prober:   p,
		Logger:   logger,
		Schedule: schedule,
		Timeout:  5 * time.Second,
		metrics:  m,
	}
}

// Start probes once immediately, then on every tick. It fails only on an
// invalid schedule.
func (h *HealthMonitor) Start() error {
	c := cron.New(cron.WithLocation(time.UTC), cron.WithSeconds())
	if _, err := c.AddFunc(h.Schedule, func() { h.Check(context.Background()) }); err != nil {
		return err
	}

	h.cron = c
	go h.Check(context.Background())
	c.Start()

	h.Logger.Info("health monitor started", "schedule", h.Schedule)
	return nil
}

// Stop waits for a running probe to finish.
func (h *HealthMonitor) Stop() {
	if h.cron == nil {
		return
	}
	<-h.cron.Stop().Done()
	h.Logger.Info("health monitor stopped")
}

// Check runs one probe now and records it.
func (h *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()

	status := HealthStatus{
		Enabled:   h.Prober.RealMode(),
		CheckedAt: time.Now().UTC(),
	}
	if status.Enabled {
		status.Connected = h.Prober.CheckHealth(ctx)
	}

	h.mu.Lock()
	changed := h.last.Connected != status.Connected || h.last.CheckedAt.IsZero()
	h.last = status
	h.mu.Unlock()

	h.metrics.BackendUp(status.Connected)
	if changed {
		h.Logger.Info("backend connectivity", "enabled", status.Enabled, "connected", status.Connected)
	}
	return status
}

func (h *HealthMonitor) Last() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}
