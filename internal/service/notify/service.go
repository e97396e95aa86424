package notify

import (
	"context"

	"github.com/sayemkalim/casesync/internal/domain"
	"github.com/sayemkalim/casesync/internal/model"
	"github.com/sayemkalim/casesync/internal/notifier"
	"github.com/sayemkalim/casesync/internal/repository"
	"go.uber.org/zap"
)

// Service is the REST-facing application layer over the notification history
// store and the live center. Repository failures propagate to callers; the
// calling handler owns user-facing messaging.
type Service struct {
	store  repository.NotificationRepository
	center *notifier.Center
	log    *zap.Logger
}

func NewService(store repository.NotificationRepository, center *notifier.Center, logger *zap.Logger) *Service {
	return &Service{store: store, center: center, log: logger}
}

func (s *Service) ListHistory(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	history, err := s.store.ListNotifications(ctx, userID, limit)
	if err != nil {
		s.log.Error("store list notifications failed", zap.String("user_id", userID), zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}
	return history, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.store.UnreadCount(ctx, userID)
	if err != nil {
		s.log.Error("store unread count failed", zap.String("user_id", userID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	if err := s.store.MarkRead(ctx, id); err != nil {
		s.log.Error("store mark read failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) MarkManyRead(ctx context.Context, ids []string) error {
	if err := s.store.MarkManyRead(ctx, ids); err != nil {
		s.log.Error("store mark many read failed", zap.Int("count", len(ids)), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.store.MarkAllRead(ctx, userID); err != nil {
		s.log.Error("store mark all read failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a notification from history and from the user's live list.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteNotification(ctx, id); err != nil {
		s.log.Error("store delete notification failed", zap.String("id", id), zap.Error(err))
		return err
	}
	s.center.ClearNotification(userID, id)
	return nil
}

// DeleteAll removes all of a user's notifications, history and live.
func (s *Service) DeleteAll(ctx context.Context, userID string) error {
	if err := s.store.DeleteAll(ctx, userID); err != nil {
		s.log.Error("store delete all failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	s.center.ClearAll(userID)
	return nil
}

// Respond records an accept/reject decision for an action-type notification
// and marks it read.
func (s *Service) Respond(ctx context.Context, id, action string) error {
	if !domain.IsValidResponseAction(action) {
		return domain.ErrInvalidResponseAction
	}
	if err := s.store.MarkRead(ctx, id); err != nil {
		s.log.Error("store record response failed", zap.String("id", id), zap.String("action", action), zap.Error(err))
		return err
	}
	s.log.Info("notification response recorded", zap.String("id", id), zap.String("action", action))
	return nil
}
