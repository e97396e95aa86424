package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sayemkalim/casesync/internal/config"
	"github.com/sayemkalim/casesync/internal/model"
	"github.com/sayemkalim/casesync/internal/notifier"
	"github.com/sayemkalim/casesync/internal/repository"
	"github.com/sayemkalim/casesync/internal/timer"
	"github.com/sayemkalim/casesync/internal/toast"
	"go.uber.org/zap"
)

// Session is one browser tab's server-side state: its toast view over the
// canonical notification list and its workstation timer.
type Session struct {
	ID     string
	UserID string
	Toasts *toast.View
	Timer  *timer.Tracker

	detach func()
}

// Manager owns the live sessions. Each session subscribes its toast view to
// canonical inserts for its user and detaches on close.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	center    *notifier.Center
	snapshots repository.SnapshotRepository
	responder toast.Responder
	cfg       *config.Config
	log       *zap.Logger
}

func NewManager(center *notifier.Center, snapshots repository.SnapshotRepository, responder toast.Responder, cfg *config.Config, logger *zap.Logger) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		center:    center,
		snapshots: snapshots,
		responder: responder,
		cfg:       cfg,
		log:       logger,
	}
}

func (m *Manager) Create(userID string) *Session {
	view := toast.NewView(m.cfg.ToastTTL, m.responder, m.log)
	session := &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		Toasts: view,
		Timer:  timer.NewTracker(m.snapshots, m.cfg.AutosaveInterval, m.log),
	}
	session.detach = m.center.Subscribe(func(n model.Notification) {
		if n.UserID == userID {
			view.Add(n)
		}
	})

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	m.log.Info("session created", zap.String("session_id", session.ID), zap.String("user_id", userID))
	return session
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	return session, ok
}

// Close tears one session down: detaches its observer and cancels its toast
// and timer callbacks.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return false
	}
	session.detach()
	session.Toasts.Close()
	session.Timer.Close()
	m.log.Info("session closed", zap.String("session_id", id))
	return true
}

// CloseAll is called on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.detach()
		s.Toasts.Close()
		s.Timer.Close()
	}
}
