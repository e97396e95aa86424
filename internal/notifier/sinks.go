package notifier

import (
	"github.com/sayemkalim/casesync/internal/config"
	"github.com/sayemkalim/casesync/internal/domain"
	"github.com/sayemkalim/casesync/internal/feed"
	"github.com/sayemkalim/casesync/internal/model"
)

// soundSink tells the user's clients to play the notification sound.
type soundSink struct {
	hub *feed.Hub
}

func (s *soundSink) Notify(n model.Notification) error {
	s.hub.Broadcast(feed.Event{
		Kind:   feed.EventAlert,
		UserID: n.UserID,
		Alert:  &feed.Alert{Sound: true},
	})
	return nil
}

// desktopSink tells the user's clients to raise a desktop notification.
// Action-type notifications require explicit interaction to dismiss; all
// others auto-close.
type desktopSink struct {
	hub         *feed.Hub
	autoCloseMs int64
}

func (s *desktopSink) Notify(n model.Notification) error {
	alert := &feed.Alert{
		Title: n.Name,
		Body:  n.Message,
		Icon:  n.Profile,
		Tag:   n.ID,
	}
	if n.Type == domain.NotificationTypeAction {
		alert.RequireInteraction = true
	} else {
		alert.AutoCloseMs = s.autoCloseMs
	}
	s.hub.Broadcast(feed.Event{
		Kind:   feed.EventAlert,
		UserID: n.UserID,
		Alert:  alert,
	})
	return nil
}

// NewSinks builds the default side-effect fan-out set.
func NewSinks(hub *feed.Hub, cfg *config.Config) []Sink {
	return []Sink{
		&soundSink{hub: hub},
		&desktopSink{hub: hub, autoCloseMs: cfg.AlertAutoClose.Milliseconds()},
	}
}
