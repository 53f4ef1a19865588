package link_test

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/aussiebroadwan/finlink/internal/finlink/domain"
	"github.com/aussiebroadwan/finlink/internal/finlink/link"
	"github.com/aussiebroadwan/finlink/internal/finlink/simulate"
	"github.com/aussiebroadwan/finlink/internal/finlink/widget"
	"github.com/aussiebroadwan/finlink/pkg/idx"
	"github.com/aussiebroadwan/finlink/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestFeedKeepsNewest(t *testing.T) {
	t.Parallel()

	feed := link.NewFeed(3)
	ctx := context.Background()
	for _, msg := range []string{"a", "b", "c", "d"} {
		feed.Notify(ctx, domain.Notification{Kind: domain.NotifyInfo, Message: msg})
	}

	all := feed.Since("")
	require.Len(t, all, 3)
	require.Equal(t, "b", all[0].Message)
	require.Equal(t, "d", all[2].Message)

	newer := feed.Since(idx.ID(all[0].ID))
	require.Len(t, newer, 2)
	require.Equal(t, "c", newer[0].Message)

	require.Empty(t, feed.Since(idx.ID(all[2].ID)))
}

func TestNotificationLogCarriesAttemptIDOnce(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := slogx.WithContext(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	ctl := link.New(link.Config{
		SessionID:   "sess-1",
		Data:        newFakeData(),
		Credentials: &memCredentials{},
		Widget:      widget.NewSimulated(simulate.New(), 0),
		Notifier:    link.NewFeed(0),
	})
	t.Cleanup(ctl.Close)

	_, err := ctl.Connect(ctx)
	require.NoError(t, err)

	var lines int
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		line := sc.Text()
		if !strings.Contains(line, `"msg":"notification"`) {
			continue
		}
		lines++
		require.Equal(t, 1, strings.Count(line, `"attempt_id"`), line)
	}
	require.Equal(t, 1, lines)
}
