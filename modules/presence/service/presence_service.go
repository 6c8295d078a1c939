package service

import (
	"context"
	"encoding/json"
	"time"

	"venuehub/core/errors"
	"venuehub/core/logger"
	"venuehub/core/realtime"
)

// PresenceService tracks who is currently active in a room and relays
// short-lived signals such as typing indicators. Rooms are opaque ids;
// conversation threads and venue dashboards both use them.
type PresenceService interface {
	Join(ctx context.Context, room, member string) (realtime.Subscription, *errors.AppError)
	Leave(ctx context.Context, room, member string) *errors.AppError
	// Typing broadcasts a typing signal to the room. Receivers age it out
	// themselves; there is no explicit stop message.
	Typing(ctx context.Context, room, member string, isTyping bool) *errors.AppError
	// Heartbeat keeps the member's presence alive while the connection idles.
	Heartbeat(ctx context.Context, room, member string) *errors.AppError
	Members(ctx context.Context, room string) ([]string, *errors.AppError)
}

type presenceService struct {
	bus realtime.Bus
}

func NewPresenceService(bus realtime.Bus) PresenceService {
	return &presenceService{bus: bus}
}

func (s *presenceService) Join(ctx context.Context, room, member string) (realtime.Subscription, *errors.AppError) {
	if room == "" || member == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "room and member are required", nil)
	}
	sub, err := s.bus.Join(ctx, room, member)
	if err != nil {
		logger.Error("PresenceService:Join:Error", "error", err, "room", room, "member", member)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to join room", err)
	}
	logger.Info("PresenceService:Join:Success", "room", room, "member", member)
	return sub, nil
}

func (s *presenceService) Leave(ctx context.Context, room, member string) *errors.AppError {
	if err := s.bus.Leave(ctx, room, member); err != nil {
		logger.Error("PresenceService:Leave:Error", "error", err, "room", room, "member", member)
		return errors.NewAppError(errors.ErrInternalServer, "failed to leave room", err)
	}
	return nil
}

func (s *presenceService) Typing(ctx context.Context, room, member string, isTyping bool) *errors.AppError {
	payload, _ := json.Marshal(map[string]bool{"isTyping": isTyping})
	ev := realtime.Event{
		Room:    room,
		Type:    realtime.EventTyping,
		Member:  member,
		Payload: payload,
		At:      time.Now(),
	}
	if err := s.bus.Publish(ctx, room, ev); err != nil {
		logger.Error("PresenceService:Typing:Error", "error", err, "room", room, "member", member)
		return errors.NewAppError(errors.ErrInternalServer, "failed to publish typing signal", err)
	}
	// Typing implies activity.
	if err := s.bus.Touch(ctx, room, member); err != nil {
		logger.Warn("PresenceService:Typing:Touch:Error", "error", err, "room", room)
	}
	return nil
}

func (s *presenceService) Heartbeat(ctx context.Context, room, member string) *errors.AppError {
	if err := s.bus.Touch(ctx, room, member); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to refresh presence", err)
	}
	return nil
}

func (s *presenceService) Members(ctx context.Context, room string) ([]string, *errors.AppError) {
	members, err := s.bus.Members(ctx, room)
	if err != nil {
		logger.Error("PresenceService:Members:Error", "error", err, "room", room)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list room members", err)
	}
	return members, nil
}
