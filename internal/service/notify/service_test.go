package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/sayemkalim/casesync/internal/config"
	"github.com/sayemkalim/casesync/internal/domain"
	"github.com/sayemkalim/casesync/internal/model"
	"github.com/sayemkalim/casesync/internal/notifier"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) CreateNotification(ctx context.Context, n model.Notification) (model.Notification, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(model.Notification), args.Error(1)
}

func (m *repoMock) ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *repoMock) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *repoMock) MarkRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) MarkManyRead(ctx context.Context, ids []string) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *repoMock) MarkAllRead(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *repoMock) DeleteNotification(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) DeleteAll(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func newTestService(repo *repoMock) (*Service, *notifier.Center) {
	cfg := &config.Config{SeenCacheSize: 64}
	center := notifier.NewCenter(nil, nil, nil, cfg, zap.NewNop())
	return NewService(repo, center, zap.NewNop()), center
}

func TestListHistory(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		expected := []model.Notification{{ID: "n-1", UserID: "u-1", Type: domain.NotificationTypeInfo}}
		repo := &repoMock{}
		repo.On("ListNotifications", mock.Anything, "u-1", 10).Return(expected, nil).Once()
		svc, _ := newTestService(repo)

		got, err := svc.ListHistory(context.Background(), "u-1", 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "n-1", got[0].ID)
		repo.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		storeErr := errors.New("list failed")
		repo := &repoMock{}
		repo.On("ListNotifications", mock.Anything, "u-1", 10).Return([]model.Notification(nil), storeErr).Once()
		svc, _ := newTestService(repo)

		_, err := svc.ListHistory(context.Background(), "u-1", 10)
		require.ErrorIs(t, err, storeErr)
		repo.AssertExpectations(t)
	})
}

func TestUnreadCount(t *testing.T) {
	repo := &repoMock{}
	repo.On("UnreadCount", mock.Anything, "u-1").Return(int64(3), nil).Once()
	svc, _ := newTestService(repo)

	count, err := svc.UnreadCount(context.Background(), "u-1")
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
	repo.AssertExpectations(t)
}

func TestDeleteClearsLiveList(t *testing.T) {
	repo := &repoMock{}
	repo.On("DeleteNotification", mock.Anything, "n-1").Return(nil).Once()
	svc, center := newTestService(repo)

	center.Ingest(context.Background(), model.Notification{ID: "n-1", UserID: "u-1"})
	require.NoError(t, svc.Delete(context.Background(), "u-1", "n-1"))
	require.Empty(t, center.List("u-1"))
	repo.AssertExpectations(t)
}

func TestDeleteAllClearsLiveList(t *testing.T) {
	repo := &repoMock{}
	repo.On("DeleteAll", mock.Anything, "u-1").Return(nil).Once()
	svc, center := newTestService(repo)

	ctx := context.Background()
	center.Ingest(ctx, model.Notification{ID: "n-1", UserID: "u-1"})
	center.Ingest(ctx, model.Notification{ID: "n-2", UserID: "u-1"})
	require.NoError(t, svc.DeleteAll(ctx, "u-1"))
	require.Empty(t, center.List("u-1"))
	repo.AssertExpectations(t)
}

func TestRespond(t *testing.T) {
	t.Run("invalid action", func(t *testing.T) {
		repo := &repoMock{}
		svc, _ := newTestService(repo)
		require.ErrorIs(t, svc.Respond(context.Background(), "n-1", "later"), domain.ErrInvalidResponseAction)
		repo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
	})

	t.Run("accept", func(t *testing.T) {
		repo := &repoMock{}
		repo.On("MarkRead", mock.Anything, "n-1").Return(nil).Once()
		svc, _ := newTestService(repo)
		require.NoError(t, svc.Respond(context.Background(), "n-1", domain.ResponseActionAccept))
		repo.AssertExpectations(t)
	})

	t.Run("store error propagates", func(t *testing.T) {
		storeErr := errors.New("mark failed")
		repo := &repoMock{}
		repo.On("MarkRead", mock.Anything, "n-1").Return(storeErr).Once()
		svc, _ := newTestService(repo)
		require.ErrorIs(t, svc.Respond(context.Background(), "n-1", domain.ResponseActionReject), storeErr)
	})
}
