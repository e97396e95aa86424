package memory

import (
	"sync"

	"github.com/sayemkalim/casesync/internal/model"
	"go.uber.org/zap"
)

type Store struct {
	mu      sync.Mutex
	records []model.Notification
	log     *zap.Logger
}

func New(logger *zap.Logger) *Store {
	return &Store{log: logger}
}
