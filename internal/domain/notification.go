package domain

import "errors"

const (
	// NotificationTypeAction requires an explicit accept/reject response
	// from the recipient and must not auto-dismiss.
	NotificationTypeAction  = "action"
	NotificationTypeSuccess = "success"
	NotificationTypeInfo    = "info"
	NotificationTypeDefault = "default"
)

const (
	ResponseActionAccept = "accept"
	ResponseActionReject = "reject"
)

var (
	ErrInvalidResponseAction = errors.New("invalid response action")
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrResponseInFlight      = errors.New("response already in flight")
	ErrSessionNotFound       = errors.New("session not found")
)

func IsValidNotificationType(value string) bool {
	switch value {
	case NotificationTypeAction, NotificationTypeSuccess, NotificationTypeInfo, NotificationTypeDefault:
		return true
	default:
		return false
	}
}

// NormalizeNotificationType maps unknown incoming type tags to "default"
// rather than rejecting the event.
func NormalizeNotificationType(value string) string {
	if IsValidNotificationType(value) {
		return value
	}
	return NotificationTypeDefault
}

func IsValidResponseAction(value string) bool {
	return value == ResponseActionAccept || value == ResponseActionReject
}
