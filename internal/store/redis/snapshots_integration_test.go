//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sayemkalim/casesync/internal/model"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func setupRedisContainer(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return host + ":" + port.Port(), cleanup
}

func TestSnapshotStoreIntegration(t *testing.T) {
	ctx := context.Background()
	addr, cleanup := setupRedisContainer(t, ctx)
	defer cleanup()

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	defer client.Close()
	require.NoError(t, client.Ping(ctx).Err())

	store := NewSnapshotStore(client, "workstation-timers", zap.NewNop())

	_, found, err := store.LoadSnapshot(ctx, "case-77")
	require.NoError(t, err)
	require.False(t, found)

	snap := model.TimerSnapshot{
		Slug:      "case-77",
		Seconds:   730,
		IsActive:  true,
		Timestamp: time.Now().UnixMilli(),
	}
	require.NoError(t, store.SaveSnapshot(ctx, snap))

	got, found, err := store.LoadSnapshot(ctx, "case-77")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, snap, got)

	// Each workstation keeps its own field in the hash.
	other := model.TimerSnapshot{Slug: "case-78", Seconds: 5}
	require.NoError(t, store.SaveSnapshot(ctx, other))

	got, found, err = store.LoadSnapshot(ctx, "case-78")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, other, got)

	got, _, err = store.LoadSnapshot(ctx, "case-77")
	require.NoError(t, err)
	require.EqualValues(t, 730, got.Seconds)
}
