package realtime

import (
	"context"
	"sync"
	"time"
)

type memoryBus struct {
	mu    sync.RWMutex
	rooms map[string]map[string]*memorySubscription
}

// NewMemoryBus is an in-process Bus used by tests and single-node setups.
func NewMemoryBus() Bus {
	return &memoryBus{rooms: make(map[string]map[string]*memorySubscription)}
}

type memorySubscription struct {
	bus    *memoryBus
	room   string
	member string
	events chan Event
	once   sync.Once
}

func (s *memorySubscription) Events() <-chan Event {
	return s.events
}

func (s *memorySubscription) Close() error {
	s.once.Do(func() {
		s.bus.mu.Lock()
		if members, ok := s.bus.rooms[s.room]; ok {
			delete(members, s.member)
			if len(members) == 0 {
				delete(s.bus.rooms, s.room)
			}
		}
		s.bus.mu.Unlock()
		close(s.events)
	})
	return nil
}

func (b *memoryBus) Join(ctx context.Context, room, member string) (Subscription, error) {
	sub := &memorySubscription{
		bus:    b,
		room:   room,
		member: member,
		events: make(chan Event, 32),
	}

	b.mu.Lock()
	if b.rooms[room] == nil {
		b.rooms[room] = make(map[string]*memorySubscription)
	}
	b.rooms[room][member] = sub
	b.mu.Unlock()

	if err := b.Publish(ctx, room, Event{Type: EventJoin, Member: member, At: time.Now()}); err != nil {
		return nil, err
	}
	return sub, nil
}

func (b *memoryBus) Leave(ctx context.Context, room, member string) error {
	b.mu.Lock()
	sub := b.rooms[room][member]
	b.mu.Unlock()

	err := b.Publish(ctx, room, Event{Type: EventLeave, Member: member, At: time.Now()})
	if sub != nil {
		_ = sub.Close()
	}
	return err
}

func (b *memoryBus) Publish(_ context.Context, room string, ev Event) error {
	ev.Room = room
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.rooms[room] {
		select {
		case sub.events <- ev:
		default:
		}
	}
	return nil
}

func (b *memoryBus) Touch(context.Context, string, string) error {
	return nil
}

func (b *memoryBus) Members(_ context.Context, room string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	members := make([]string, 0, len(b.rooms[room]))
	for member := range b.rooms[room] {
		members = append(members, member)
	}
	return members, nil
}
