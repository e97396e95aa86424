package toast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sayemkalim/casesync/internal/domain"
	"github.com/sayemkalim/casesync/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type responderStub struct {
	mu      sync.Mutex
	calls   []string
	err     error
	release chan struct{}
}

func (r *responderStub) Respond(_ context.Context, id, action string) error {
	r.mu.Lock()
	r.calls = append(r.calls, id+":"+action)
	r.mu.Unlock()
	if r.release != nil {
		<-r.release
	}
	return r.err
}

func newTestView(ttl time.Duration, responder Responder) *View {
	if responder == nil {
		responder = &responderStub{}
	}
	return NewView(ttl, responder, zap.NewNop())
}

func TestToastAutoHide(t *testing.T) {
	view := newTestView(30*time.Millisecond, nil)
	defer view.Close()

	view.Add(model.Notification{ID: "n-1"})
	require.Len(t, view.Visible(), 1)

	require.Eventually(t, func() bool {
		return len(view.Visible()) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestToastManualDismiss(t *testing.T) {
	view := newTestView(time.Hour, nil)
	defer view.Close()

	view.Add(model.Notification{ID: "n-1"})
	view.Add(model.Notification{ID: "n-2"})
	view.Dismiss("n-1")

	visible := view.Visible()
	require.Len(t, visible, 1)
	require.Equal(t, "n-2", visible[0].ID)

	// Dismissing again, or an unknown id, is a no-op.
	view.Dismiss("n-1")
	view.Dismiss("ghost")
	require.Len(t, view.Visible(), 1)
}

func TestToastOrderNewestFirst(t *testing.T) {
	view := newTestView(time.Hour, nil)
	defer view.Close()

	view.Add(model.Notification{ID: "e1"})
	view.Add(model.Notification{ID: "e2"})

	visible := view.Visible()
	require.Equal(t, "e2", visible[0].ID)
	require.Equal(t, "e1", visible[1].ID)
}

func TestRespondHidesOnSuccessAndFailure(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		responder := &responderStub{}
		view := newTestView(time.Hour, responder)
		defer view.Close()

		view.Add(model.Notification{ID: "n-1", Type: domain.NotificationTypeAction})
		require.NoError(t, view.Respond(context.Background(), "n-1", domain.ResponseActionAccept))
		require.Empty(t, view.Visible())
		require.Equal(t, []string{"n-1:accept"}, responder.calls)
	})

	t.Run("failure still hides", func(t *testing.T) {
		responder := &responderStub{err: errors.New("api down")}
		view := newTestView(time.Hour, responder)
		defer view.Close()

		view.Add(model.Notification{ID: "n-1", Type: domain.NotificationTypeAction})
		require.Error(t, view.Respond(context.Background(), "n-1", domain.ResponseActionReject))
		require.Empty(t, view.Visible())
	})
}

func TestRespondInvalidAction(t *testing.T) {
	view := newTestView(time.Hour, nil)
	defer view.Close()
	require.ErrorIs(t, view.Respond(context.Background(), "n-1", "maybe"), domain.ErrInvalidResponseAction)
}

func TestRespondConcurrentIsolation(t *testing.T) {
	responder := &responderStub{release: make(chan struct{})}
	view := newTestView(time.Hour, responder)
	defer view.Close()

	view.Add(model.Notification{ID: "n-1", Type: domain.NotificationTypeAction})
	view.Add(model.Notification{ID: "n-2", Type: domain.NotificationTypeAction})

	done := make(chan error, 1)
	go func() {
		done <- view.Respond(context.Background(), "n-1", domain.ResponseActionAccept)
	}()

	require.Eventually(t, func() bool { return view.InFlight("n-1") }, time.Second, 5*time.Millisecond)

	// A second response on the same toast is rejected while pending.
	require.ErrorIs(t, view.Respond(context.Background(), "n-1", domain.ResponseActionReject), domain.ErrResponseInFlight)
	// A different toast is unaffected by the pending response.
	require.False(t, view.InFlight("n-2"))

	close(responder.release)
	require.NoError(t, <-done)
	require.False(t, view.InFlight("n-1"))
}

func TestCloseCancelsTimers(t *testing.T) {
	view := newTestView(20*time.Millisecond, nil)
	view.Add(model.Notification{ID: "n-1"})
	view.Close()

	// After close, no new toasts are accepted.
	view.Add(model.Notification{ID: "n-2"})
	for _, n := range view.Visible() {
		require.NotEqual(t, "n-2", n.ID)
	}
}
