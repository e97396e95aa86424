package dto

import "github.com/sayemkalim/casesync/internal/timer"

type TimerActionResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	State   timer.State `json:"state"`
}
