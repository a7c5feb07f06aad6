package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionSeeded  = "seeded"
)

// ContentEvent describes one committed change to a content entity.
type ContentEvent struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	Key    string    `json:"key,omitempty"`
	At     time.Time `json:"at"`
}

// EventConn is the subset of *websocket.Conn the hub writes to.
type EventConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// EventHub fans content events out to connected admin clients. Publishing
// never blocks a request; events are dropped when the buffer is full.
type EventHub struct {
	mu      sync.Mutex
	clients map[EventConn]bool
	ch      chan ContentEvent
}

func NewEventHub() *EventHub {
	return &EventHub{
		clients: map[EventConn]bool{},
		ch:      make(chan ContentEvent, 64),
	}
}

func (h *EventHub) Run(ctx context.Context) {
	for {
		select {
		case event := <-h.ch:
			h.deliver(event)
		case <-ctx.Done():
			return
		}
	}
}

func (h *EventHub) deliver(event ContentEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			logrus.WithError(err).Debug("events: dropping client")
			delete(h.clients, conn)
			_ = conn.Close()
		}
	}
}

// Publish is safe to call on a nil hub.
func (h *EventHub) Publish(entity, action, key string) {
	if h == nil {
		return
	}
	event := ContentEvent{Entity: entity, Action: action, Key: key, At: time.Now().UTC()}
	select {
	case h.ch <- event:
	default:
	}
}

func (h *EventHub) Add(conn EventConn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *EventHub) Remove(conn EventConn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

func (h *EventHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
