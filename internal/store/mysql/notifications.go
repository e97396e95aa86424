package mysql

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sayemkalim/casesync/internal/domain"
	"github.com/sayemkalim/casesync/internal/model"
	"go.uber.org/zap"
)

func (s *Store) CreateNotification(ctx context.Context, notification model.Notification) (model.Notification, error) {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.ReceivedAt.IsZero() {
		notification.ReceivedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, type, name, message, profile, is_read, received_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE id = id`,
		notification.ID,
		notification.UserID,
		notification.Type,
		notification.Name,
		notification.Message,
		notification.Profile,
		notification.IsRead,
		notification.ReceivedAt,
	)
	if err != nil {
		s.log.Error("sql create notification failed",
			zap.String("user_id", notification.UserID),
			zap.String("type", notification.Type),
			zap.Error(err),
		)
		return model.Notification{}, err
	}
	return notification, nil
}

func (s *Store) ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, type, name, message, profile, is_read, received_at
		 FROM notifications
		 WHERE user_id = ?
		 ORDER BY received_at DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		s.log.Error("sql list notifications failed", zap.String("user_id", userID), zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var result []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Name, &n.Message, &n.Profile, &n.IsRead, &n.ReceivedAt); err != nil {
			s.log.Error("sql scan notification failed", zap.Error(err))
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (s *Store) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`,
		userID,
	).Scan(&count)
	if err != nil {
		s.log.Error("sql unread count failed", zap.String("user_id", userID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (s *Store) MarkRead(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		s.log.Error("sql mark read failed", zap.String("id", id), zap.Error(err))
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (s *Store) MarkManyRead(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		s.log.Error("sql mark many read failed", zap.Int("count", len(ids)), zap.Error(err))
	}
	return err
}

func (s *Store) MarkAllRead(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE user_id = ?`, userID)
	if err != nil {
		s.log.Error("sql mark all read failed", zap.String("user_id", userID), zap.Error(err))
	}
	return err
}

func (s *Store) DeleteNotification(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = ?`, id)
	if err != nil {
		s.log.Error("sql delete notification failed", zap.String("id", id), zap.Error(err))
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (s *Store) DeleteAll(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE user_id = ?`, userID)
	if err != nil {
		s.log.Error("sql delete all failed", zap.String("user_id", userID), zap.Error(err))
	}
	return err
}
