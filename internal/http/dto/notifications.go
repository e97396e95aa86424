package dto

import "github.com/sayemkalim/casesync/internal/model"

type PublishNotificationRequest struct {
	UserID  string `json:"user_id"`
	ID      string `json:"id"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Profile string `json:"profile"`
}

type MarkManyReadRequest struct {
	IDs []string `json:"ids"`
}

type NotificationResponseRequest struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type NotificationListResponse struct {
	Notifications []model.Notification `json:"notifications"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StatusResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
