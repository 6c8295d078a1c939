package realtime

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"venuehub/core/constants"
	"venuehub/core/logger"

	"github.com/redis/go-redis/v9"
)

type redisBus struct {
	client *redis.Client
}

// NewRedisBus backs the realtime bus with Redis pub/sub; presence is a
// TTL'd key per (room, member) so crashed clients age out on their own.
func NewRedisBus(client *redis.Client) Bus {
	return &redisBus{client: client}
}

func roomChannel(room string) string {
	return constants.RedisKeyRoom + room
}

func presenceKey(room, member string) string {
	return constants.RedisKeyPresence + room + ":" + member
}

type redisSubscription struct {
	pubsub *redis.PubSub
	events chan Event
	cancel context.CancelFunc
}

func (s *redisSubscription) Events() <-chan Event {
	return s.events
}

func (s *redisSubscription) Close() error {
	s.cancel()
	return s.pubsub.Close()
}

func (b *redisBus) Join(ctx context.Context, room, member string) (Subscription, error) {
	if err := b.client.Set(ctx, presenceKey(room, member), member, constants.PresenceTTL).Err(); err != nil {
		return nil, err
	}

	pubsub := b.client.Subscribe(ctx, roomChannel(room))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	subCtx, cancel := context.WithCancel(context.Background())
	sub := &redisSubscription{
		pubsub: pubsub,
		events: make(chan Event, 32),
		cancel: cancel,
	}

	go func() {
		defer close(sub.events)
		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					logger.Warn("RedisBus:Subscription:Decode:Error", "error", err, "room", room)
					continue
				}
				select {
				case sub.events <- ev:
				default:
					// Slow consumer; drop rather than block the reader.
				}
			}
		}
	}()

	if err := b.Publish(ctx, room, Event{Type: EventJoin, Member: member, At: time.Now()}); err != nil {
		logger.Warn("RedisBus:Join:PublishJoin:Error", "error", err, "room", room, "member", member)
	}

	return sub, nil
}

func (b *redisBus) Leave(ctx context.Context, room, member string) error {
	if err := b.client.Del(ctx, presenceKey(room, member)).Err(); err != nil {
		return err
	}
	return b.Publish(ctx, room, Event{Type: EventLeave, Member: member, At: time.Now()})
}

func (b *redisBus) Publish(ctx context.Context, room string, ev Event) error {
	ev.Room = room
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, roomChannel(room), payload).Err()
}

func (b *redisBus) Touch(ctx context.Context, room, member string) error {
	return b.client.Expire(ctx, presenceKey(room, member), constants.PresenceTTL).Err()
}

func (b *redisBus) Members(ctx context.Context, room string) ([]string, error) {
	prefix := constants.RedisKeyPresence + room + ":"
	var (
		cursor  uint64
		members []string
	)
	for {
		keys, next, err := b.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			members = append(members, strings.TrimPrefix(key, prefix))
		}
		if next == 0 {
			return members, nil
		}
		cursor = next
	}
}
