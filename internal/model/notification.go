package model

import "time"

type Notification struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Message    string    `json:"message"`
	Profile    string    `json:"profile,omitempty"`
	IsRead     bool      `json:"is_read"`
	ReceivedAt time.Time `json:"received_at"`
}
