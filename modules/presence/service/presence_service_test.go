package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"venuehub/core/errors"
	"venuehub/core/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextEvent(t *testing.T, sub realtime.Subscription) realtime.Event {
	t.Helper()
	select {
	case ev := <-sub.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return realtime.Event{}
	}
}

func TestPresenceJoinValidation(t *testing.T) {
	svc := NewPresenceService(realtime.NewMemoryBus())

	_, appErr := svc.Join(context.Background(), "", "alice")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	_, appErr = svc.Join(context.Background(), "room-1", "")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestPresenceTypingBroadcast(t *testing.T) {
	svc := NewPresenceService(realtime.NewMemoryBus())
	ctx := context.Background()

	alice, appErr := svc.Join(ctx, "thread-9", "alice")
	require.Nil(t, appErr)
	bob, appErr := svc.Join(ctx, "thread-9", "bob")
	require.Nil(t, appErr)

	// Drain join events.
	nextEvent(t, alice)
	nextEvent(t, alice)
	nextEvent(t, bob)

	require.Nil(t, svc.Typing(ctx, "thread-9", "alice", true))

	ev := nextEvent(t, bob)
	assert.Equal(t, realtime.EventTyping, ev.Type)
	assert.Equal(t, "alice", ev.Member)

	var payload map[string]bool
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.True(t, payload["isTyping"])
}

func TestPresenceMembersAfterLeave(t *testing.T) {
	svc := NewPresenceService(realtime.NewMemoryBus())
	ctx := context.Background()

	_, appErr := svc.Join(ctx, "thread-9", "alice")
	require.Nil(t, appErr)
	_, appErr = svc.Join(ctx, "thread-9", "bob")
	require.Nil(t, appErr)

	require.Nil(t, svc.Leave(ctx, "thread-9", "bob"))

	members, appErr := svc.Members(ctx, "thread-9")
	require.Nil(t, appErr)
	assert.Equal(t, []string{"alice"}, members)
}
