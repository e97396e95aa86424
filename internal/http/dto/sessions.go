package dto

import "github.com/sayemkalim/casesync/internal/model"

type CreateSessionRequest struct {
	UserID string `json:"user_id"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

type NavigateRequest struct {
	Path string `json:"path"`
}

type ToastResponse struct {
	Notification model.Notification `json:"notification"`
	InFlight     bool               `json:"in_flight"`
}

type ToastListResponse struct {
	Toasts []ToastResponse `json:"toasts"`
}

type RespondRequest struct {
	Action string `json:"action"`
}
