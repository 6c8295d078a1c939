package service

import (
	"context"
	"time"

	"venuehub/core/constants"
	"venuehub/core/errors"
	"venuehub/core/logger"
	"venuehub/core/utils"
	"venuehub/modules/calendar/dto"
	"venuehub/modules/calendar/entity"
	"venuehub/modules/calendar/repository"
	venueService "venuehub/modules/venue/service"

	"github.com/google/uuid"
)

// AlertSink receives owner-facing alerts about calendar integration health.
// Implemented by the notification module; a nil sink disables alerting.
type AlertSink interface {
	CalendarAlert(ctx context.Context, userID, venueID uuid.UUID, alertType, message string)
}

type WebhookService interface {
	// Setup registers a push channel so remote edits trigger a resync.
	Setup(ctx context.Context, userID, venueID uuid.UUID) (*dto.WebhookSetupResponse, *errors.AppError)
	// HandleNotification processes one provider push. The initial "sync"
	// handshake and "not_exists" are acknowledged without work; "exists"
	// triggers a full resync of the venue.
	HandleNotification(ctx context.Context, channelID, channelToken, resourceState string) *errors.AppError
	// RenewExpiring re-registers channels that expire within the renewal
	// window. Failures are alerted per subscription and do not stop the run.
	RenewExpiring(ctx context.Context) error
}

type webhookService struct {
	tokens      TokenService
	client      GoogleCalendarClient
	subs        repository.WebhookRepository
	sync        SyncService
	venues      venueService.VenueService
	alerts      AlertSink
	callbackURL string
}

func NewWebhookService(
	tokens TokenService,
	client GoogleCalendarClient,
	subs repository.WebhookRepository,
	sync SyncService,
	venues venueService.VenueService,
	alerts AlertSink,
	callbackURL string,
) WebhookService {
	return &webhookService{
		tokens:      tokens,
		client:      client,
		subs:        subs,
		sync:        sync,
		venues:      venues,
		alerts:      alerts,
		callbackURL: callbackURL,
	}
}

func (s *webhookService) Setup(ctx context.Context, userID, venueID uuid.UUID) (*dto.WebhookSetupResponse, *errors.AppError) {
	if appErr := s.venues.EnsureOwnership(ctx, venueID, userID); appErr != nil {
		return nil, appErr
	}

	token, appErr := s.tokens.GetValidToken(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}
	if token.CalendarID == "" {
		return nil, errors.NewAppError(errors.ErrNotConnected, "no calendar selected for notifications", nil)
	}

	channelID := uuid.NewString()
	channelToken := utils.GenerateRandomString(24)
	watch, err := s.client.Watch(ctx, token.AccessToken, token.CalendarID, channelID, channelToken, s.callbackURL, constants.WebhookChannelTTL)
	if err != nil {
		logger.Error("WebhookService:Setup:Watch:Error", "error", err, "venue_id", venueID)
		return nil, errors.NewAppError(errors.ErrUpstreamProvider, "failed to register calendar notifications", err)
	}

	sub := &entity.WebhookSubscription{
		ChannelID:    channelID,
		ChannelToken: channelToken,
		ResourceID:   watch.ResourceID,
		CalendarID:   token.CalendarID,
		UserID:       userID,
		VenueID:      venueID,
		Expiration:   watch.Expiration,
	}
	if err := s.subs.Upsert(ctx, sub); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to store webhook subscription", err)
	}

	logger.Info("WebhookService:Setup:Success", "venue_id", venueID, "channel_id", channelID, "expires_at", watch.Expiration)
	return &dto.WebhookSetupResponse{
		Success:   true,
		Message:   "calendar notifications enabled",
		ExpiresAt: watch.Expiration,
	}, nil
}

func (s *webhookService) HandleNotification(ctx context.Context, channelID, channelToken, resourceState string) *errors.AppError {
	sub, err := s.subs.GetByChannelID(ctx, channelID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to load webhook subscription", err)
	}
	if sub == nil {
		return errors.NewAppError(errors.ErrNotFound, "unknown notification channel", nil)
	}
	if sub.ChannelToken != "" && channelToken != sub.ChannelToken {
		return errors.NewAppError(errors.ErrForbidden, "channel token mismatch", nil)
	}

	switch resourceState {
	case "sync", "not_exists":
		// "sync" is the registration handshake; "not_exists" carries no change.
		logger.Info("WebhookService:HandleNotification:Ack", "channel_id", channelID, "state", resourceState)
		return nil
	case "exists":
		if err := s.sync.ResyncVenue(ctx, sub); err != nil {
			logger.Error("WebhookService:HandleNotification:Resync:Error", "error", err, "venue_id", sub.VenueID)
			s.alert(ctx, sub, constants.NotificationCalendarSyncFailed, "calendar sync triggered by a change notification failed")
			return errors.NewAppError(errors.ErrUpstreamProvider, "failed to resync calendar", err)
		}
		return nil
	default:
		logger.Warn("WebhookService:HandleNotification:UnknownState", "channel_id", channelID, "state", resourceState)
		return nil
	}
}

func (s *webhookService) RenewExpiring(ctx context.Context) error {
	cutoff := time.Now().Add(constants.WebhookRenewalWindow)
	subs, err := s.subs.ListExpiring(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return nil
	}

	logger.Info("WebhookService:RenewExpiring:Start", "count", len(subs))
	for i := range subs {
		sub := &subs[i]
		if err := s.renew(ctx, sub); err != nil {
			logger.Error("WebhookService:RenewExpiring:Renew:Error", "error", err, "venue_id", sub.VenueID, "channel_id", sub.ChannelID)
			s.alert(ctx, sub, constants.NotificationWebhookRenewalFailed, "calendar notifications could not be renewed; please reconnect Google Calendar")
		}
	}
	return nil
}

func (s *webhookService) renew(ctx context.Context, sub *entity.WebhookSubscription) error {
	token, appErr := s.tokens.GetValidToken(ctx, sub.UserID)
	if appErr != nil {
		return appErr
	}

	channelID := uuid.NewString()
	channelToken := utils.GenerateRandomString(24)
	watch, err := s.client.Watch(ctx, token.AccessToken, sub.CalendarID, channelID, channelToken, s.callbackURL, constants.WebhookChannelTTL)
	if err != nil {
		return err
	}

	oldChannelID, oldResourceID := sub.ChannelID, sub.ResourceID
	sub.ChannelID = channelID
	sub.ChannelToken = channelToken
	sub.ResourceID = watch.ResourceID
	sub.Expiration = watch.Expiration
	if err := s.subs.Upsert(ctx, sub); err != nil {
		return err
	}

	// Best effort; the old channel expires on its own either way.
	if err := s.client.StopChannel(ctx, token.AccessToken, oldChannelID, oldResourceID); err != nil {
		logger.Warn("WebhookService:Renew:StopOldChannel:Error", "error", err, "channel_id", oldChannelID)
	}

	logger.Info("WebhookService:Renew:Success", "venue_id", sub.VenueID, "channel_id", channelID, "expires_at", watch.Expiration)
	return nil
}

func (s *webhookService) alert(ctx context.Context, sub *entity.WebhookSubscription, alertType, message string) {
	if s.alerts == nil {
		return
	}
	s.alerts.CalendarAlert(ctx, sub.UserID, sub.VenueID, alertType, message)
}
