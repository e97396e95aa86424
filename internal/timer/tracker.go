package timer

import (
	"context"
	"sync"
	"time"

	"github.com/sayemkalim/casesync/internal/model"
	"github.com/sayemkalim/casesync/internal/repository"
	"github.com/sayemkalim/casesync/internal/workstation"
	"go.uber.org/zap"
)

// Result is the outcome of a guarded timer operation. Precondition failures
// (e.g. starting outside a workstation) are reported here, never as errors,
// so callers can show a message without special handling.
type Result struct {
	OK      bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// State is a read-only view of the tracker for consumers.
type State struct {
	Slug     string `json:"slug,omitempty"`
	Seconds  int64  `json:"seconds"`
	IsActive bool   `json:"is_active"`
	IsPaused bool   `json:"is_paused"`
	Display  string `json:"display"`
}

// Tracker counts elapsed active time for the workstation the session is
// currently inside, persists snapshots per slug, and rehydrates them when
// the session re-enters a previously visited workstation.
type Tracker struct {
	mu      sync.Mutex
	slug    string
	seconds int64
	active  bool
	paused  bool
	stop    chan struct{} // non-nil while the tick loop runs

	store         repository.SnapshotRepository
	autosaveEvery int64
	tickEvery     time.Duration
	clock         func() time.Time
	log           *zap.Logger
}

func NewTracker(store repository.SnapshotRepository, autosaveEvery int, logger *zap.Logger) *Tracker {
	if autosaveEvery <= 0 {
		autosaveEvery = 30
	}
	return &Tracker{
		store:         store,
		autosaveEvery: int64(autosaveEvery),
		tickEvery:     time.Second,
		clock:         time.Now,
		log:           logger,
	}
}

// Start begins counting. It fails (without an error) outside a workstation
// context and persists a snapshot immediately on success.
func (t *Tracker) Start(ctx context.Context) Result {
	t.mu.Lock()
	if t.slug == "" {
		t.mu.Unlock()
		return Result{Message: "timer can only be started inside a workstation"}
	}
	t.active = true
	t.paused = false
	snapshot := t.snapshotLocked()
	t.startTickingLocked()
	t.mu.Unlock()

	t.save(ctx, snapshot)
	return Result{OK: true, Message: "timer started"}
}

// Pause stops counting while keeping the session active. Pausing is always
// allowed, including outside a workstation, where there is no timer state to
// touch and the call is a no-op.
func (t *Tracker) Pause(ctx context.Context) Result {
	t.mu.Lock()
	if t.slug == "" {
		t.mu.Unlock()
		return Result{OK: true, Message: "timer paused"}
	}
	t.paused = true
	t.stopTickingLocked()
	snapshot := t.snapshotLocked()
	t.mu.Unlock()

	t.save(ctx, snapshot)
	return Result{OK: true, Message: "timer paused"}
}

// Resume continues counting after a pause. Same route guard as Start.
func (t *Tracker) Resume(ctx context.Context) Result {
	t.mu.Lock()
	if t.slug == "" {
		t.mu.Unlock()
		return Result{Message: "timer can only be resumed inside a workstation"}
	}
	t.active = true
	t.paused = false
	snapshot := t.snapshotLocked()
	t.startTickingLocked()
	t.mu.Unlock()

	t.save(ctx, snapshot)
	return Result{OK: true, Message: "timer resumed"}
}

// Reset zeroes the elapsed time, stops counting and persists the zeroed
// snapshot.
func (t *Tracker) Reset(ctx context.Context) Result {
	t.mu.Lock()
	t.seconds = 0
	t.active = false
	t.paused = false
	t.stopTickingLocked()
	var snapshot *model.TimerSnapshot
	if t.slug != "" {
		s := t.snapshotLocked()
		snapshot = &s
	}
	t.mu.Unlock()

	if snapshot != nil {
		t.save(ctx, *snapshot)
	}
	return Result{OK: true, Message: "timer reset"}
}

// ExitFile is the explicit "leaving this document" signal: it freezes the
// elapsed time with is_active=false and stops the interval, but keeps the
// displayed seconds until the route actually changes.
func (t *Tracker) ExitFile(ctx context.Context) Result {
	t.mu.Lock()
	if t.slug == "" {
		t.mu.Unlock()
		return Result{Message: "no workstation file is open"}
	}
	t.active = false
	t.stopTickingLocked()
	snapshot := t.snapshotLocked()
	t.mu.Unlock()

	t.save(ctx, snapshot)
	return Result{OK: true, Message: "file exited"}
}

// Navigate evaluates the slug transition for a navigation event. Leaving a
// workstation persists its live state (active flag included, unlike
// ExitFile) and zeroes the display; entering one rehydrates its snapshot,
// advancing the stored seconds by the wall-clock delta when the snapshot was
// saved active and unpaused.
func (t *Tracker) Navigate(ctx context.Context, path string) State {
	newSlug := workstation.SlugFromPath(path)

	t.mu.Lock()
	if newSlug == t.slug {
		state := t.stateLocked()
		t.mu.Unlock()
		return state
	}

	var leaving *model.TimerSnapshot
	if t.slug != "" {
		s := t.snapshotLocked()
		leaving = &s
		t.stopTickingLocked()
		t.seconds = 0
		t.active = false
		t.paused = false
	}
	t.slug = newSlug
	t.mu.Unlock()

	if leaving != nil {
		t.save(ctx, *leaving)
	}

	if newSlug == "" {
		t.mu.Lock()
		state := t.stateLocked()
		t.mu.Unlock()
		return state
	}

	snapshot, found, err := t.store.LoadSnapshot(ctx, newSlug)
	if err != nil {
		t.log.Error("load timer snapshot failed", zap.String("slug", newSlug), zap.Error(err))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.slug != newSlug {
		// A later navigation raced us; keep its state.
		return t.stateLocked()
	}
	if !found {
		// A never-visited workstation starts from zero, inactive.
		t.seconds = 0
		t.active = false
		t.paused = false
		return t.stateLocked()
	}
	if snapshot.IsActive && !snapshot.IsPaused {
		elapsed := (t.clock().UnixMilli() - snapshot.Timestamp) / 1000
		if elapsed < 0 {
			elapsed = 0
		}
		t.seconds = snapshot.Seconds + elapsed
		t.active = true
		t.paused = false
		t.startTickingLocked()
	} else {
		t.seconds = snapshot.Seconds
		t.active = snapshot.IsActive
		t.paused = snapshot.IsPaused
	}
	return t.stateLocked()
}

// State returns the current tracker state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

// Close stops the tick loop. Safe to call more than once and alongside a
// context-exit transition.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTickingLocked()
}

func (t *Tracker) stateLocked() State {
	return State{
		Slug:     t.slug,
		Seconds:  t.seconds,
		IsActive: t.active,
		IsPaused: t.paused,
		Display:  FormatDisplay(t.seconds),
	}
}

func (t *Tracker) snapshotLocked() model.TimerSnapshot {
	return model.TimerSnapshot{
		Slug:      t.slug,
		Seconds:   t.seconds,
		IsActive:  t.active,
		IsPaused:  t.paused,
		Timestamp: t.clock().UnixMilli(),
	}
}

func (t *Tracker) startTickingLocked() {
	if t.stop != nil {
		return
	}
	stop := make(chan struct{})
	t.stop = stop
	go t.run(stop)
}

func (t *Tracker) stopTickingLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *Tracker) run(stop chan struct{}) {
	ticker := time.NewTicker(t.tickEvery)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.tick()
		}
	}
}

// tick advances the counter by one second and autosaves every Nth second.
func (t *Tracker) tick() {
	t.mu.Lock()
	if !t.active || t.paused || t.slug == "" {
		t.mu.Unlock()
		return
	}
	t.seconds++
	var autosave *model.TimerSnapshot
	if t.seconds%t.autosaveEvery == 0 {
		s := t.snapshotLocked()
		autosave = &s
	}
	t.mu.Unlock()

	if autosave != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		t.save(ctx, *autosave)
	}
}

func (t *Tracker) save(ctx context.Context, snapshot model.TimerSnapshot) {
	if err := t.store.SaveSnapshot(ctx, snapshot); err != nil {
		t.log.Error("save timer snapshot failed", zap.String("slug", snapshot.Slug), zap.Error(err))
	}
}
