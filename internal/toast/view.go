package toast

import (
	"context"
	"sync"
	"time"

	"github.com/sayemkalim/casesync/internal/domain"
	"github.com/sayemkalim/casesync/internal/model"
	"go.uber.org/zap"
)

// Responder forwards an accept/reject decision for an action-type
// notification to the application service.
type Responder interface {
	Respond(ctx context.Context, id, action string) error
}

// View is a per-session, time-limited window over the canonical notification
// list. It never mutates the source: hiding a toast only records the id in a
// local hidden set.
type View struct {
	mu       sync.Mutex
	entries  []model.Notification
	hidden   map[string]struct{}
	inflight map[string]struct{}
	timers   map[string]*time.Timer
	closed   bool

	ttl       time.Duration
	responder Responder
	log       *zap.Logger
}

func NewView(ttl time.Duration, responder Responder, logger *zap.Logger) *View {
	return &View{
		hidden:    make(map[string]struct{}),
		inflight:  make(map[string]struct{}),
		timers:    make(map[string]*time.Timer),
		ttl:       ttl,
		responder: responder,
		log:       logger,
	}
}

// Add shows a toast for the notification. It auto-hides after the view TTL
// unless dismissed first.
func (v *View) Add(n model.Notification) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.entries = append([]model.Notification{n}, v.entries...)
	id := n.ID
	v.timers[id] = time.AfterFunc(v.ttl, func() {
		v.mu.Lock()
		v.hideLocked(id)
		v.mu.Unlock()
	})
}

// Visible returns toasts not yet hidden, newest first.
func (v *View) Visible() []model.Notification {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []model.Notification
	for _, n := range v.entries {
		if _, ok := v.hidden[n.ID]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// Dismiss hides a toast immediately and cancels its auto-hide timer.
// Dismissing an unknown or already hidden id is a no-op.
func (v *View) Dismiss(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hideLocked(id)
}

// InFlight reports whether a response for the toast is currently pending.
// While pending, that toast's controls are disabled; other toasts are
// unaffected.
func (v *View) InFlight(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.inflight[id]
	return ok
}

// Respond forwards an accept/reject decision and hides the toast once the
// call completes, success or failure. A second Respond for the same id while
// one is pending is rejected; responses for different ids do not interfere.
func (v *View) Respond(ctx context.Context, id, action string) error {
	if !domain.IsValidResponseAction(action) {
		return domain.ErrInvalidResponseAction
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return domain.ErrSessionNotFound
	}
	if _, pending := v.inflight[id]; pending {
		v.mu.Unlock()
		return domain.ErrResponseInFlight
	}
	v.inflight[id] = struct{}{}
	v.mu.Unlock()

	err := v.responder.Respond(ctx, id, action)

	v.mu.Lock()
	delete(v.inflight, id)
	v.hideLocked(id)
	v.mu.Unlock()

	if err != nil {
		v.log.Warn("notification response failed", zap.String("id", id), zap.String("action", action), zap.Error(err))
	}
	return err
}

// Close cancels all pending auto-hide timers. The view accepts no further
// toasts afterwards.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	for id, timer := range v.timers {
		timer.Stop()
		delete(v.timers, id)
	}
}

func (v *View) hideLocked(id string) {
	if timer, ok := v.timers[id]; ok {
		timer.Stop()
		delete(v.timers, id)
	}
	v.hidden[id] = struct{}{}
}
