package repository

import (
	"context"

	"github.com/sayemkalim/casesync/internal/model"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification model.Notification) (model.Notification, error)
	ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkManyRead(ctx context.Context, ids []string) error
	MarkAllRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, id string) error
	DeleteAll(ctx context.Context, userID string) error
}

// SnapshotRepository persists one TimerSnapshot per workstation slug under a
// single durable mapping. Writes are last-write-wins per slug; concurrent
// sessions are not coordinated.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, snapshot model.TimerSnapshot) error
	LoadSnapshot(ctx context.Context, slug string) (model.TimerSnapshot, bool, error)
}
