package service

import (
	"context"
	"strings"
	"time"

	"venuehub/core/constants"
	"venuehub/core/errors"
	"venuehub/core/logger"
	"venuehub/modules/calendar/dto"
	"venuehub/modules/calendar/entity"
	"venuehub/modules/calendar/repository"

	"github.com/google/uuid"
)

type SyncService interface {
	// Sync pulls upcoming events from the user's connected calendar and
	// upserts them as availability blocks for the venue. A missing or expired
	// connection yields a failed result, not an error; the AppError is
	// reserved for provider and storage failures.
	Sync(ctx context.Context, userID, venueID uuid.UUID, lookAheadDays int) (*dto.SyncResult, *errors.AppError)
	// ResyncVenue drops all imported blocks for the subscription's venue and
	// rebuilds them from the remote calendar. Used by the webhook path.
	ResyncVenue(ctx context.Context, sub *entity.WebhookSubscription) error
}

type syncService struct {
	tokens TokenService
	client GoogleCalendarClient
	blocks repository.AvailabilityRepository
}

func NewSyncService(tokens TokenService, client GoogleCalendarClient, blocks repository.AvailabilityRepository) SyncService {
	return &syncService{tokens: tokens, client: client, blocks: blocks}
}

func (s *syncService) Sync(ctx context.Context, userID, venueID uuid.UUID, lookAheadDays int) (*dto.SyncResult, *errors.AppError) {
	if lookAheadDays <= 0 {
		lookAheadDays = constants.DefaultLookAheadDays
	}

	token, appErr := s.tokens.GetValidToken(ctx, userID)
	if appErr != nil {
		if appErr.Code == errors.ErrNotConnected {
			return &dto.SyncResult{Success: false, Message: appErr.Message}, nil
		}
		return nil, appErr
	}
	if token.CalendarID == "" {
		return &dto.SyncResult{Success: false, Message: "no calendar selected for sync"}, nil
	}

	events, err := s.client.FetchEvents(ctx, token.AccessToken, token.CalendarID, lookAheadDays)
	if err != nil {
		logger.Error("SyncService:Sync:FetchEvents:Error", "error", err, "venue_id", venueID)
		return nil, errors.NewAppError(errors.ErrUpstreamProvider, "failed to fetch calendar events", err)
	}

	imported := make([]entity.AvailabilityBlock, 0, len(events))
	for _, ev := range events {
		block, ok := mapRemoteEvent(venueID, ev)
		if !ok {
			continue
		}
		imported = append(imported, *block)
	}

	count, err := s.blocks.UpsertRemote(ctx, imported)
	if err != nil {
		logger.Error("SyncService:Sync:Upsert:Error", "error", err, "venue_id", venueID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to store imported events", err)
	}

	logger.Info("SyncService:Sync:Success", "venue_id", venueID, "fetched", len(events), "imported", count)
	return &dto.SyncResult{
		Success: true,
		Message: "calendar synced",
		Count:   count,
	}, nil
}

func (s *syncService) ResyncVenue(ctx context.Context, sub *entity.WebhookSubscription) error {
	// Purge-then-rebuild is not transactional: a fetch failure after the
	// purge leaves the venue without imported blocks until the next sync.
	if err := s.blocks.DeleteBySource(ctx, sub.VenueID, constants.SourceGoogle); err != nil {
		return err
	}

	result, appErr := s.Sync(ctx, sub.UserID, sub.VenueID, constants.DefaultLookAheadDays)
	if appErr != nil {
		return appErr
	}
	if !result.Success {
		return errors.NewAppError(errors.ErrNotConnected, result.Message, nil)
	}

	logger.Info("SyncService:ResyncVenue:Success", "venue_id", sub.VenueID, "count", result.Count)
	return nil
}

// mapRemoteEvent converts one provider event into an availability block.
// Returns false for events the sync ignores: cancelled events and events
// without a usable start and end.
func mapRemoteEvent(venueID uuid.UUID, ev RemoteEvent) (*entity.AvailabilityBlock, bool) {
	if ev.Status == "cancelled" || ev.ID == "" {
		return nil, false
	}

	var startTime, endTime time.Time
	var allDay bool

	switch {
	case ev.Start.DateTime != "" && ev.End.DateTime != "":
		var err error
		startTime, err = time.Parse(time.RFC3339, ev.Start.DateTime)
		if err != nil {
			return nil, false
		}
		endTime, err = time.Parse(time.RFC3339, ev.End.DateTime)
		if err != nil {
			return nil, false
		}
	case ev.Start.Date != "" && ev.End.Date != "":
		start, err := time.Parse("2006-01-02", ev.Start.Date)
		if err != nil {
			return nil, false
		}
		end, err := time.Parse("2006-01-02", ev.End.Date)
		if err != nil {
			return nil, false
		}
		// The provider's all-day end date is exclusive; store the block as
		// ending at 23:59:59 on the last occupied day.
		allDay = true
		startTime = start
		endTime = end.AddDate(0, 0, -1).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	default:
		return nil, false
	}

	title := ev.Summary
	if title == "" {
		title = "Busy"
	}

	block := &entity.AvailabilityBlock{
		VenueID:   venueID,
		Title:     title,
		StartTime: startTime,
		EndTime:   endTime,
		AllDay:    allDay,
		Source:    constants.SourceGoogle,
	}
	eventID := ev.ID
	block.GoogleEventID = &eventID
	if ev.Description != "" {
		desc := ev.Description
		block.Description = &desc
	}
	if len(ev.Recurrence) > 0 {
		// Kept for display only; occurrences arrive pre-expanded.
		rule := strings.TrimPrefix(ev.Recurrence[0], "RRULE:")
		block.Recurring = true
		block.RecurrenceRule = &rule
	}

	return block, true
}
