package memory

import (
	"context"
	"sync"

	"github.com/sayemkalim/casesync/internal/model"
	"go.uber.org/zap"
)

// SnapshotStore keeps the slug -> snapshot mapping in process memory. Used
// when no Redis address is configured; state does not survive restarts.
type SnapshotStore struct {
	mu        sync.Mutex
	snapshots map[string]model.TimerSnapshot
	log       *zap.Logger
}

func NewSnapshotStore(logger *zap.Logger) *SnapshotStore {
	return &SnapshotStore{
		snapshots: make(map[string]model.TimerSnapshot),
		log:       logger,
	}
}

func (s *SnapshotStore) SaveSnapshot(_ context.Context, snapshot model.TimerSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snapshot.Slug] = snapshot
	return nil
}

func (s *SnapshotStore) LoadSnapshot(_ context.Context, slug string) (model.TimerSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.snapshots[slug]
	return snapshot, ok, nil
}
