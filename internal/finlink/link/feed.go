package link

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
	"github.com/aussiebroadwan/finlink/pkg/idx"
	"github.com/aussiebroadwan/finlink/pkg/slogx"
)

// Notifier receives user-facing notifications.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// DefaultFeedSize is how many notifications a Feed keeps.
const DefaultFeedSize = 50

// Feed keeps the most recent notifications of one session, oldest first,
// and logs each one.
type Feed struct {
	mu    sync.Mutex
	items []domain.Notification
	size  int
}

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &Feed{size: size}
}

func (f *Feed) Notify(ctx context.Context, n domain.Notification) {
	if n.ID == "" {
		n.ID = idx.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	f.mu.Lock()
	f.items = append(f.items, n)
	if over := len(f.items) - f.size; over > 0 {
		f.items = append(f.items[:0:0], f.items[over:]...)
	}
	f.mu.Unlock()

	level := slog.LevelInfo
	switch n.Kind {
	case domain.NotifyError:
		level = slog.LevelError
	case domain.NotifyWarning:
		level = slog.LevelWarn
	}
	// Attempt notifications arrive on the attempt's logger, which already
	// carries attempt_id.
	slogx.FromContext(ctx).Log(ctx, level, "notification", "kind", n.Kind, "message", n.Message)
}

// Since returns notifications newer than afterID, or all of them when afterID
// is empty. IDs sort by creation time.
func (f *Feed) Since(afterID idx.ID) []domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.Notification, 0, len(f.items))
	for _, n := range f.items {
		if afterID.IsZero() || idx.Compare(idx.ID(n.ID), afterID) > 0 {
			out = append(out, n)
		}
	}
	return out
}
