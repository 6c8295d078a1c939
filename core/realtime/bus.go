package realtime

import (
	"context"
	"encoding/json"
	"time"
)

type EventType string

const (
	EventJoin   EventType = "join"
	EventLeave  EventType = "leave"
	EventTyping EventType = "typing"
)

// Event is a single realtime message within a room.
type Event struct {
	Room    string          `json:"room"`
	Type    EventType       `json:"type"`
	Member  string          `json:"member"`
	Payload json.RawMessage `json:"payload,omitempty"`
	At      time.Time       `json:"at"`
}

// Subscription is a live feed of events for one member of a room.
type Subscription interface {
	Events() <-chan Event
	Close() error
}

// Bus is a generic room-scoped publish/subscribe capability. Any message
// broker can back it; the production implementation uses Redis.
type Bus interface {
	Join(ctx context.Context, room, member string) (Subscription, error)
	Leave(ctx context.Context, room, member string) error
	Publish(ctx context.Context, room string, ev Event) error
	// Touch refreshes the member's presence so it does not expire while idle.
	Touch(ctx context.Context, room, member string) error
	Members(ctx context.Context, room string) ([]string, error)
}
