package feed

import (
	"context"
	"sync"

	"github.com/sayemkalim/casesync/internal/model"
)

type EventKind string

const (
	// EventNotification announces an insert into the canonical list.
	EventNotification EventKind = "notification"
	// EventAlert carries a one-shot side-effect directive (sound cue or
	// desktop notification) the browser should execute.
	EventAlert EventKind = "alert"
)

// Alert describes a browser-side side effect. Desktop alerts for action-type
// notifications set RequireInteraction and no auto-close; everything else
// auto-closes after AutoCloseMs.
type Alert struct {
	Sound              bool   `json:"sound,omitempty"`
	Title              string `json:"title,omitempty"`
	Body               string `json:"body,omitempty"`
	Icon               string `json:"icon,omitempty"`
	Tag                string `json:"tag,omitempty"`
	RequireInteraction bool   `json:"require_interaction,omitempty"`
	AutoCloseMs        int64  `json:"auto_close_ms,omitempty"`
}

type Event struct {
	Kind         EventKind           `json:"kind"`
	UserID       string              `json:"user_id"`
	Notification *model.Notification `json:"notification,omitempty"`
	Alert        *Alert              `json:"alert,omitempty"`
}

type Client struct {
	UserID string
	Ch     chan Event
}

// Hub fans live events out to the SSE clients of each user. The channel
// naming convention upstream is user.<id>; here a user id keys its room.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	rooms      map[string]map[*Client]struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
		rooms:      make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) Broadcast(event Event) {
	h.broadcast <- event
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case event := <-h.broadcast:
			h.broadcastToUser(event)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[client.UserID] == nil {
		h.rooms[client.UserID] = make(map[*Client]struct{})
	}
	h.rooms[client.UserID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[client.UserID]
	if room == nil {
		return
	}
	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, client.UserID)
	}
}

func (h *Hub) broadcastToUser(event Event) {
	h.mu.RLock()
	room := h.rooms[event.UserID]
	h.mu.RUnlock()
	for client := range room {
		select {
		case client.Ch <- event:
		default:
			// Drop if the client is too slow.
		}
	}
}
