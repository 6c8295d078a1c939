package service

import (
	"context"
	"testing"
	"time"

	"venuehub/core/constants"
	"venuehub/core/errors"
	"venuehub/modules/calendar/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCallbackURL = "https://venuehub.example.com/api/calendar/webhook/notifications"

func TestWebhookSetupRegistersChannel(t *testing.T) {
	userID, venueID := uuid.New(), uuid.New()
	tokens := &fakeTokenService{token: connectedToken(userID)}
	client := &fakeCalendarClient{}
	subs := newFakeWebhookRepo()
	svc := NewWebhookService(tokens, client, subs, &fakeSyncService{}, &fakeVenueService{}, nil, testCallbackURL)

	resp, appErr := svc.Setup(context.Background(), userID, venueID)
	require.Nil(t, appErr)
	assert.True(t, resp.Success)
	assert.False(t, resp.ExpiresAt.IsZero())

	require.Len(t, client.watchCalls, 1)
	require.Len(t, subs.upserted, 1)
	stored := subs.upserted[0]
	assert.Equal(t, venueID, stored.VenueID)
	assert.Equal(t, client.watchCalls[0], stored.ChannelID)
	assert.NotEmpty(t, stored.ChannelToken)
	assert.Equal(t, client.watchTokens[0], stored.ChannelToken, "the stored token must match the one registered with the provider")
}

func TestHandleNotificationRejectsTokenMismatch(t *testing.T) {
	subs := newFakeWebhookRepo()
	sync := &fakeSyncService{}
	sub := &entity.WebhookSubscription{ChannelID: "ch-1", ChannelToken: "expected", UserID: uuid.New(), VenueID: uuid.New()}
	require.NoError(t, subs.Upsert(context.Background(), sub))
	svc := NewWebhookService(&fakeTokenService{}, &fakeCalendarClient{}, subs, sync, &fakeVenueService{}, nil, testCallbackURL)

	appErr := svc.HandleNotification(context.Background(), "ch-1", "forged", "exists")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
	assert.Equal(t, 0, sync.resyncCalls)
}

func TestWebhookSetupRequiresOwnership(t *testing.T) {
	userID, venueID := uuid.New(), uuid.New()
	venues := &fakeVenueService{ownershipErr: errors.NewAppError(errors.ErrForbidden, "venue does not belong to the current user", nil)}
	svc := NewWebhookService(&fakeTokenService{}, &fakeCalendarClient{}, newFakeWebhookRepo(), &fakeSyncService{}, venues, nil, testCallbackURL)

	_, appErr := svc.Setup(context.Background(), userID, venueID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestWebhookSetupWithoutConnection(t *testing.T) {
	userID, venueID := uuid.New(), uuid.New()
	tokens := &fakeTokenService{appErr: notConnectedErr()}
	svc := NewWebhookService(tokens, &fakeCalendarClient{}, newFakeWebhookRepo(), &fakeSyncService{}, &fakeVenueService{}, nil, testCallbackURL)

	_, appErr := svc.Setup(context.Background(), userID, venueID)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotConnected, appErr.Code)
}

func TestHandleNotificationUnknownChannel(t *testing.T) {
	svc := NewWebhookService(&fakeTokenService{}, &fakeCalendarClient{}, newFakeWebhookRepo(), &fakeSyncService{}, &fakeVenueService{}, nil, testCallbackURL)

	appErr := svc.HandleNotification(context.Background(), "no-such-channel", "", "exists")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestHandleNotificationAcknowledgesHandshake(t *testing.T) {
	subs := newFakeWebhookRepo()
	sync := &fakeSyncService{}
	sub := &entity.WebhookSubscription{ChannelID: "ch-1", UserID: uuid.New(), VenueID: uuid.New()}
	require.NoError(t, subs.Upsert(context.Background(), sub))
	svc := NewWebhookService(&fakeTokenService{}, &fakeCalendarClient{}, subs, sync, &fakeVenueService{}, nil, testCallbackURL)

	for _, state := range []string{"sync", "not_exists"} {
		appErr := svc.HandleNotification(context.Background(), "ch-1", "", state)
		assert.Nil(t, appErr, "state %q must be acknowledged without work", state)
	}
	assert.Equal(t, 0, sync.resyncCalls)
}

func TestHandleNotificationExistsTriggersResync(t *testing.T) {
	subs := newFakeWebhookRepo()
	sync := &fakeSyncService{}
	sub := &entity.WebhookSubscription{ChannelID: "ch-1", UserID: uuid.New(), VenueID: uuid.New()}
	require.NoError(t, subs.Upsert(context.Background(), sub))
	svc := NewWebhookService(&fakeTokenService{}, &fakeCalendarClient{}, subs, sync, &fakeVenueService{}, nil, testCallbackURL)

	appErr := svc.HandleNotification(context.Background(), "ch-1", "", "exists")
	require.Nil(t, appErr)
	assert.Equal(t, 1, sync.resyncCalls)
}

func TestHandleNotificationResyncFailureAlertsOwner(t *testing.T) {
	subs := newFakeWebhookRepo()
	sync := &fakeSyncService{resyncErr: assert.AnError}
	alerts := &fakeAlertSink{}
	userID, venueID := uuid.New(), uuid.New()
	sub := &entity.WebhookSubscription{ChannelID: "ch-1", UserID: userID, VenueID: venueID}
	require.NoError(t, subs.Upsert(context.Background(), sub))
	svc := NewWebhookService(&fakeTokenService{}, &fakeCalendarClient{}, subs, sync, &fakeVenueService{}, alerts, testCallbackURL)

	appErr := svc.HandleNotification(context.Background(), "ch-1", "", "exists")
	require.NotNil(t, appErr)
	require.Len(t, alerts.alerts, 1)
	assert.Equal(t, constants.NotificationCalendarSyncFailed, alerts.alerts[0].alertType)
	assert.Equal(t, userID, alerts.alerts[0].userID)
}

func TestRenewExpiringReplacesChannel(t *testing.T) {
	userID, venueID := uuid.New(), uuid.New()
	tokens := &fakeTokenService{token: connectedToken(userID)}
	client := &fakeCalendarClient{}
	subs := newFakeWebhookRepo()
	old := &entity.WebhookSubscription{
		ChannelID:  "old-channel",
		ResourceID: "old-resource",
		CalendarID: "primary",
		UserID:     userID,
		VenueID:    venueID,
		Expiration: time.Now().Add(time.Hour), // inside the renewal window
	}
	require.NoError(t, subs.Upsert(context.Background(), old))
	svc := NewWebhookService(tokens, client, subs, &fakeSyncService{}, &fakeVenueService{}, nil, testCallbackURL)

	require.NoError(t, svc.RenewExpiring(context.Background()))

	require.Len(t, client.watchCalls, 1)
	assert.NotEqual(t, "old-channel", client.watchCalls[0])
	assert.Equal(t, []string{"old-channel"}, client.stopped)

	renewed := subs.upserted[len(subs.upserted)-1]
	assert.Equal(t, client.watchCalls[0], renewed.ChannelID)
	assert.True(t, renewed.Expiration.After(time.Now().Add(constants.WebhookRenewalWindow)))
}

func TestRenewExpiringSkipsHealthyChannels(t *testing.T) {
	userID := uuid.New()
	tokens := &fakeTokenService{token: connectedToken(userID)}
	client := &fakeCalendarClient{}
	subs := newFakeWebhookRepo()
	healthy := &entity.WebhookSubscription{
		ChannelID:  "healthy",
		UserID:     userID,
		VenueID:    uuid.New(),
		Expiration: time.Now().Add(constants.WebhookChannelTTL),
	}
	require.NoError(t, subs.Upsert(context.Background(), healthy))
	svc := NewWebhookService(tokens, client, subs, &fakeSyncService{}, &fakeVenueService{}, nil, testCallbackURL)

	require.NoError(t, svc.RenewExpiring(context.Background()))
	assert.Empty(t, client.watchCalls)
}

func TestRenewExpiringAlertsOnTokenFailure(t *testing.T) {
	userID, venueID := uuid.New(), uuid.New()
	tokens := &fakeTokenService{appErr: notConnectedErr()}
	alerts := &fakeAlertSink{}
	subs := newFakeWebhookRepo()
	expiring := &entity.WebhookSubscription{
		ChannelID:  "expiring",
		UserID:     userID,
		VenueID:    venueID,
		Expiration: time.Now().Add(time.Hour),
	}
	require.NoError(t, subs.Upsert(context.Background(), expiring))
	svc := NewWebhookService(tokens, &fakeCalendarClient{}, subs, &fakeSyncService{}, &fakeVenueService{}, alerts, testCallbackURL)

	require.NoError(t, svc.RenewExpiring(context.Background()), "per-channel failures must not abort the run")
	require.Len(t, alerts.alerts, 1)
	assert.Equal(t, constants.NotificationWebhookRenewalFailed, alerts.alerts[0].alertType)
}
