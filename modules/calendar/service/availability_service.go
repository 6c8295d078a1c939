package service

import (
	"context"
	"time"

	"venuehub/core/constants"
	"venuehub/core/errors"
	"venuehub/core/logger"
	"venuehub/modules/calendar/dto"
	"venuehub/modules/calendar/entity"
	"venuehub/modules/calendar/repository"
	venueService "venuehub/modules/venue/service"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type AvailabilityService interface {
	GetBusinessHours(ctx context.Context, userID, venueID uuid.UUID) ([]entity.BusinessHours, *errors.AppError)
	// SaveBusinessHours replaces the venue's whole weekly schedule with the
	// submitted set.
	SaveBusinessHours(ctx context.Context, userID uuid.UUID, req *dto.SaveBusinessHoursRequest) ([]entity.BusinessHours, *errors.AppError)
	ListBlocks(ctx context.Context, userID, venueID uuid.UUID) ([]entity.AvailabilityBlock, *errors.AppError)
	CreateManualBlock(ctx context.Context, userID uuid.UUID, req *dto.CreateBlockRequest) (*entity.AvailabilityBlock, *errors.AppError)
	DeleteBlock(ctx context.Context, userID, blockID uuid.UUID) *errors.AppError
}

type availabilityService struct {
	hours  repository.BusinessHoursRepository
	blocks repository.AvailabilityRepository
	venues venueService.VenueService
}

func NewAvailabilityService(
	hours repository.BusinessHoursRepository,
	blocks repository.AvailabilityRepository,
	venues venueService.VenueService,
) AvailabilityService {
	return &availabilityService{hours: hours, blocks: blocks, venues: venues}
}

func (s *availabilityService) GetBusinessHours(ctx context.Context, userID, venueID uuid.UUID) ([]entity.BusinessHours, *errors.AppError) {
	if appErr := s.venues.EnsureOwnership(ctx, venueID, userID); appErr != nil {
		return nil, appErr
	}
	hours, err := s.hours.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load business hours", err)
	}
	return hours, nil
}

func (s *availabilityService) SaveBusinessHours(ctx context.Context, userID uuid.UUID, req *dto.SaveBusinessHoursRequest) ([]entity.BusinessHours, *errors.AppError) {
	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid venue id", err)
	}
	if appErr := s.venues.EnsureOwnership(ctx, venueID, userID); appErr != nil {
		return nil, appErr
	}

	rows := make([]entity.BusinessHours, 0, len(req.BusinessHours))
	for _, input := range req.BusinessHours {
		if appErr := validateBusinessHourInput(input); appErr != nil {
			return nil, appErr
		}
		days := make(pq.Int64Array, 0, len(input.DaysOfWeek))
		for _, d := range input.DaysOfWeek {
			days = append(days, int64(d))
		}
		rows = append(rows, entity.BusinessHours{
			VenueID:    venueID,
			DaysOfWeek: days,
			StartTime:  input.StartTime,
			EndTime:    input.EndTime,
		})
	}

	if err := s.hours.ReplaceForVenue(ctx, venueID, rows); err != nil {
		logger.Error("AvailabilityService:SaveBusinessHours:Error", "error", err, "venue_id", venueID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save business hours", err)
	}

	saved, err := s.hours.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load business hours", err)
	}
	logger.Info("AvailabilityService:SaveBusinessHours:Success", "venue_id", venueID, "windows", len(saved))
	return saved, nil
}

func validateBusinessHourInput(input dto.BusinessHourInput) *errors.AppError {
	if len(input.DaysOfWeek) == 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "daysOfWeek must not be empty", nil)
	}
	for _, d := range input.DaysOfWeek {
		if d < 0 || d > 6 {
			return errors.NewAppError(errors.ErrInvalidInput, "daysOfWeek values must be between 0 and 6", nil)
		}
	}
	start, err := time.Parse("15:04", input.StartTime)
	if err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, "startTime must be in HH:MM format", err)
	}
	end, err := time.Parse("15:04", input.EndTime)
	if err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, "endTime must be in HH:MM format", err)
	}
	if !end.After(start) {
		return errors.NewAppError(errors.ErrInvalidInput, "endTime must be after startTime", nil)
	}
	return nil
}

func (s *availabilityService) ListBlocks(ctx context.Context, userID, venueID uuid.UUID) ([]entity.AvailabilityBlock, *errors.AppError) {
	if appErr := s.venues.EnsureOwnership(ctx, venueID, userID); appErr != nil {
		return nil, appErr
	}
	blocks, err := s.blocks.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load availability", err)
	}
	return blocks, nil
}

func (s *availabilityService) CreateManualBlock(ctx context.Context, userID uuid.UUID, req *dto.CreateBlockRequest) (*entity.AvailabilityBlock, *errors.AppError) {
	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid venue id", err)
	}
	if appErr := s.venues.EnsureOwnership(ctx, venueID, userID); appErr != nil {
		return nil, appErr
	}
	if req.Title == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "title is required", nil)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "startTime must be RFC3339", err)
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "endTime must be RFC3339", err)
	}
	if !endTime.After(startTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "endTime must be after startTime", nil)
	}

	block := &entity.AvailabilityBlock{
		VenueID:   venueID,
		Title:     req.Title,
		StartTime: startTime,
		EndTime:   endTime,
		AllDay:    req.AllDay,
		Source:    constants.SourceManual,
	}
	if req.Description != "" {
		desc := req.Description
		block.Description = &desc
	}

	created, err := s.blocks.Insert(ctx, block)
	if err != nil {
		logger.Error("AvailabilityService:CreateManualBlock:Error", "error", err, "venue_id", venueID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create availability block", err)
	}

	logger.Info("AvailabilityService:CreateManualBlock:Success", "venue_id", venueID, "block_id", created.ID)
	return created, nil
}

func (s *availabilityService) DeleteBlock(ctx context.Context, userID, blockID uuid.UUID) *errors.AppError {
	block, err := s.blocks.GetByID(ctx, blockID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to load availability block", err)
	}
	if block == nil {
		return errors.NewAppError(errors.ErrNotFound, "availability block not found", nil)
	}
	if appErr := s.venues.EnsureOwnership(ctx, block.VenueID, userID); appErr != nil {
		return appErr
	}
	if block.Source != constants.SourceManual {
		return errors.NewAppError(errors.ErrInvalidInput, "imported blocks are managed by calendar sync", nil)
	}
	if err := s.blocks.DeleteByID(ctx, blockID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete availability block", err)
	}
	return nil
}
