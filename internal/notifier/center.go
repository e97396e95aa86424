package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/sayemkalim/casesync/internal/config"
	"github.com/sayemkalim/casesync/internal/feed"
	"github.com/sayemkalim/casesync/internal/model"
	"github.com/sayemkalim/casesync/internal/repository"
	"go.uber.org/zap"
)

// Sink receives each unique notification exactly once and performs a
// best-effort side effect. Sinks are attempted independently; a failure in
// one never blocks another and is never surfaced to consumers.
type Sink interface {
	Notify(notification model.Notification) error
}

// Observer receives each unique notification after it has been inserted into
// the canonical list. Used by per-session derived views.
type Observer func(notification model.Notification)

// Center owns the canonical per-user notification lists. Ingestion is
// idempotent under at-least-once delivery: a redelivered id is a no-op with
// no side effects.
type Center struct {
	mu        sync.Mutex
	lists     map[string][]model.Notification
	seen      *seenSet
	observers map[int]Observer
	nextObsID int

	history repository.NotificationRepository
	hub     *feed.Hub
	sinks   []Sink
	log     *zap.Logger
	clock   func() time.Time
}

func NewCenter(history repository.NotificationRepository, hub *feed.Hub, sinks []Sink, cfg *config.Config, logger *zap.Logger) *Center {
	return &Center{
		lists:     make(map[string][]model.Notification),
		seen:      newSeenSet(cfg.SeenCacheSize),
		observers: make(map[int]Observer),
		history:   history,
		hub:       hub,
		sinks:     sinks,
		log:       logger,
		clock:     time.Now,
	}
}

// Ingest runs the per-event state machine: dedup, record, side-effect
// fan-out, insert. Returns false when the event was a duplicate.
func (c *Center) Ingest(ctx context.Context, n model.Notification) bool {
	key := n.UserID + "\x00" + n.ID

	c.mu.Lock()
	if c.seen.Contains(key) {
		c.mu.Unlock()
		duplicates.Inc()
		return false
	}
	c.seen.Add(key)
	n.ReceivedAt = c.clock().UTC()
	c.mu.Unlock()

	ingested.Inc()

	// Side effects fire before the insert and independently of each other.
	for _, sink := range c.sinks {
		if err := sink.Notify(n); err != nil {
			sinkFailures.Inc()
			c.log.Warn("notification sink failed",
				zap.String("id", n.ID),
				zap.String("user_id", n.UserID),
				zap.Error(err),
			)
		}
	}

	// History persistence is best effort on the realtime path; the in-memory
	// list stays authoritative for live consumers.
	if c.history != nil {
		if _, err := c.history.CreateNotification(ctx, n); err != nil {
			c.log.Error("persist notification failed", zap.String("id", n.ID), zap.Error(err))
		}
	}

	c.mu.Lock()
	// A redelivery can outlive the seen-set window; the list itself is the
	// final arbiter.
	for _, existing := range c.lists[n.UserID] {
		if existing.ID == n.ID {
			c.mu.Unlock()
			return false
		}
	}
	c.lists[n.UserID] = append([]model.Notification{n}, c.lists[n.UserID]...)
	observers := make([]Observer, 0, len(c.observers))
	for _, o := range c.observers {
		observers = append(observers, o)
	}
	c.mu.Unlock()

	if c.hub != nil {
		c.hub.Broadcast(feed.Event{
			Kind:         feed.EventNotification,
			UserID:       n.UserID,
			Notification: &n,
		})
	}
	for _, o := range observers {
		o(n)
	}
	return true
}

// List returns the user's live notifications, newest first.
func (c *Center) List(userID string) []model.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Notification, len(c.lists[userID]))
	copy(out, c.lists[userID])
	return out
}

// ClearNotification removes one notification from the live list. Clearing an
// absent id is a no-op, not an error.
func (c *Center) ClearNotification(userID, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := c.lists[userID]
	for i, n := range list {
		if n.ID == id {
			c.lists[userID] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// ClearAll empties the user's live list.
func (c *Center) ClearAll(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lists, userID)
}

// Subscribe attaches an observer for canonical inserts. The returned
// function detaches it.
func (c *Center) Subscribe(observer Observer) func() {
	c.mu.Lock()
	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = observer
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}
