package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sayemkalim/casesync/internal/model"
	"go.uber.org/zap"
)

// SnapshotStore persists the slug -> snapshot mapping as a single Redis hash,
// one field per workstation slug. Entries are never evicted; a long-lived
// user accumulates a field for every workstation ever visited.
type SnapshotStore struct {
	client *redis.Client
	key    string
	log    *zap.Logger
}

func NewSnapshotStore(client *redis.Client, key string, logger *zap.Logger) *SnapshotStore {
	return &SnapshotStore{client: client, key: key, log: logger}
}

func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snapshot model.TimerSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.client.HSet(ctx, s.key, snapshot.Slug, data).Err(); err != nil {
		s.log.Error("redis save snapshot failed", zap.String("slug", snapshot.Slug), zap.Error(err))
		return err
	}
	return nil
}

func (s *SnapshotStore) LoadSnapshot(ctx context.Context, slug string) (model.TimerSnapshot, bool, error) {
	data, err := s.client.HGet(ctx, s.key, slug).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.TimerSnapshot{}, false, nil
		}
		s.log.Error("redis load snapshot failed", zap.String("slug", slug), zap.Error(err))
		return model.TimerSnapshot{}, false, err
	}

	var snapshot model.TimerSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return model.TimerSnapshot{}, false, fmt.Errorf("unmarshal snapshot %q: %w", slug, err)
	}
	return snapshot, true, nil
}
