package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sayemkalim/casesync/internal/config"
	"github.com/sayemkalim/casesync/internal/domain"
	"github.com/sayemkalim/casesync/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSink struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (s *recordingSink) Notify(n model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, n.ID)
	return s.err
}

func (s *recordingSink) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func newTestCenter(sinks ...Sink) *Center {
	return NewCenter(nil, nil, sinks, &config.Config{SeenCacheSize: 64}, zap.NewNop())
}

func TestIngestIdempotent(t *testing.T) {
	sink := &recordingSink{}
	center := newTestCenter(sink)
	ctx := context.Background()

	n := model.Notification{ID: "n-1", UserID: "u-1", Type: domain.NotificationTypeInfo}
	require.True(t, center.Ingest(ctx, n))
	require.False(t, center.Ingest(ctx, n))
	require.False(t, center.Ingest(ctx, n))

	require.Len(t, center.List("u-1"), 1)
	require.Equal(t, []string{"n-1"}, sink.Calls(), "side effects must fire exactly once")
}

func TestIngestOrderNewestFirst(t *testing.T) {
	center := newTestCenter()
	ctx := context.Background()

	for _, id := range []string{"e1", "e2", "e3"} {
		center.Ingest(ctx, model.Notification{ID: id, UserID: "u-1"})
	}

	list := center.List("u-1")
	require.Len(t, list, 3)
	require.Equal(t, "e3", list[0].ID)
	require.Equal(t, "e2", list[1].ID)
	require.Equal(t, "e1", list[2].ID)
}

func TestIngestSinkFailureDoesNotBlockOthers(t *testing.T) {
	failing := &recordingSink{err: errors.New("audio locked")}
	healthy := &recordingSink{}
	center := newTestCenter(failing, healthy)

	require.True(t, center.Ingest(context.Background(), model.Notification{ID: "n-1", UserID: "u-1"}))
	require.Equal(t, []string{"n-1"}, failing.Calls())
	require.Equal(t, []string{"n-1"}, healthy.Calls())
	require.Len(t, center.List("u-1"), 1)
}

func TestIngestAssignsReceivedAt(t *testing.T) {
	center := newTestCenter()
	center.Ingest(context.Background(), model.Notification{ID: "n-1", UserID: "u-1"})
	require.False(t, center.List("u-1")[0].ReceivedAt.IsZero())
}

func TestIngestSameIDDifferentUsers(t *testing.T) {
	center := newTestCenter()
	ctx := context.Background()
	require.True(t, center.Ingest(ctx, model.Notification{ID: "n-1", UserID: "u-1"}))
	require.True(t, center.Ingest(ctx, model.Notification{ID: "n-1", UserID: "u-2"}))
	require.Len(t, center.List("u-1"), 1)
	require.Len(t, center.List("u-2"), 1)
}

func TestClearNotification(t *testing.T) {
	center := newTestCenter()
	ctx := context.Background()
	center.Ingest(ctx, model.Notification{ID: "n-1", UserID: "u-1"})
	center.Ingest(ctx, model.Notification{ID: "n-2", UserID: "u-1"})

	center.ClearNotification("u-1", "n-1")
	list := center.List("u-1")
	require.Len(t, list, 1)
	require.Equal(t, "n-2", list[0].ID)

	// Clearing an absent id leaves the list unchanged.
	center.ClearNotification("u-1", "missing")
	require.Len(t, center.List("u-1"), 1)
}

func TestClearAll(t *testing.T) {
	center := newTestCenter()
	ctx := context.Background()
	center.Ingest(ctx, model.Notification{ID: "n-1", UserID: "u-1"})
	center.Ingest(ctx, model.Notification{ID: "n-2", UserID: "u-1"})

	center.ClearAll("u-1")
	require.Empty(t, center.List("u-1"))
}

func TestSubscribeObserver(t *testing.T) {
	center := newTestCenter()
	ctx := context.Background()

	var mu sync.Mutex
	var seen []string
	detach := center.Subscribe(func(n model.Notification) {
		mu.Lock()
		seen = append(seen, n.ID)
		mu.Unlock()
	})

	center.Ingest(ctx, model.Notification{ID: "n-1", UserID: "u-1"})
	center.Ingest(ctx, model.Notification{ID: "n-1", UserID: "u-1"}) // duplicate, no callback
	detach()
	center.Ingest(ctx, model.Notification{ID: "n-2", UserID: "u-1"})

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"n-1"}, seen)
}
