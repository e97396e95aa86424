//go:build integration

package e2e

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sayemkalim/casesync/internal/config"
	"github.com/sayemkalim/casesync/internal/domain"
	"github.com/sayemkalim/casesync/internal/model"
	"github.com/sayemkalim/casesync/internal/queue/rabbitmq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func TestPublishFlow(t *testing.T) {
	ctx := context.Background()
	amqpURL, cleanup := setupRabbitMQContainer(t, ctx)
	defer cleanup()

	cfg := &config.Config{
		HTTPAddr:            ":0",
		SSEHeartbeat:        5 * time.Second,
		HistoryLimit:        0,
		ToastTTL:            time.Hour,
		AlertAutoClose:      8 * time.Second,
		AutosaveInterval:    30,
		SeenCacheSize:       64,
		RabbitMQURL:         amqpURL,
		RabbitExchange:      "case-events",
		RabbitQueue:         "casesync.notifications",
		RabbitRoutingKey:    "user.*",
		RabbitConsumerTag:   "casesync-consumer",
		RabbitPublishPrefix: "user",
	}

	s := setupStack(t, cfg)
	logger := zap.NewNop()

	consumer := rabbitmq.NewConsumer(cfg, s.center, logger)
	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		errCh <- consumer.Start(consumeCtx)
	}()
	require.NoError(t, waitForConsumer(ctx, amqpURL, cfg.RabbitQueue, 5*time.Second))

	// The stack's HTTP publisher must reach the same broker.
	publisher := rabbitmq.NewPublisher(cfg, logger)
	payload, err := json.Marshal(map[string]string{
		"event":          "MessageSent",
		"notificationId": "n-42",
		"user_id":        "u-1",
		"type":           domain.NotificationTypeInfo,
		"message":        "claim updated",
	})
	require.NoError(t, err)

	sseResp, err := http.Get(s.server.URL + "/api/v2/users/u-1/feed?limit=0")
	require.NoError(t, err)
	defer func() { _ = sseResp.Body.Close() }()
	require.Equal(t, http.StatusOK, sseResp.StatusCode)
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, publisher.Publish(ctx, payload, "user.u-1"))

	reader := bufio.NewReader(sseResp.Body)
	deadline := time.Now().Add(10 * time.Second)
	var got model.Notification
	for {
		require.True(t, time.Now().Before(deadline), "notification never arrived")
		event, data, err := readSSEEvent(reader, 5*time.Second)
		require.NoError(t, err)
		if event != "notification" {
			continue
		}
		require.NoError(t, json.Unmarshal([]byte(data), &got))
		break
	}
	require.Equal(t, "n-42", got.ID)
	require.Equal(t, "u-1", got.UserID)

	cancel()
	select {
	case <-time.After(3 * time.Second):
		t.Fatalf("consumer did not stop")
	case <-errCh:
	}
}

func waitForConsumer(ctx context.Context, amqpURL, queue string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			conn, err := amqp.Dial(amqpURL)
			if err != nil {
				continue
			}
			ch, err := conn.Channel()
			if err != nil {
				_ = conn.Close()
				continue
			}
			q, err := ch.QueueInspect(queue)
			_ = ch.Close()
			_ = conn.Close()
			if err != nil {
				continue
			}
			if q.Consumers > 0 {
				return nil
			}
		}
	}
}

func setupRabbitMQContainer(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "rabbitmq:3.12-alpine",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(2 * time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)

	amqpURL := "amqp://guest:guest@" + host + ":" + port.Port() + "/"

	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return amqpURL, cleanup
}
