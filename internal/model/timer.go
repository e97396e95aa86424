package model

// TimerSnapshot is the persisted state of a workstation timer. Timestamp is
// epoch milliseconds at the moment of save and is used to advance Seconds on
// rehydration when the snapshot was saved active and unpaused.
type TimerSnapshot struct {
	Slug      string `json:"slug"`
	Seconds   int64  `json:"seconds"`
	IsActive  bool   `json:"is_active"`
	IsPaused  bool   `json:"is_paused"`
	Timestamp int64  `json:"timestamp"`
}
