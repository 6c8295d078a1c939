package service

import (
	"context"
	"encoding/json"
	"time"

	"venuehub/core/cache"
	"venuehub/core/errors"
	"venuehub/core/logger"
	"venuehub/modules/venue/dto"
	"venuehub/modules/venue/entity"
	"venuehub/modules/venue/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	venueSlugCachePrefix = "venue:slug:"
	venueSlugCacheTTL    = 5 * time.Minute
)

type VenueService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *dto.CreateVenueRequest) (*entity.Venue, *errors.AppError)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Venue, *errors.AppError)
	// GetBySlug serves the public venue page lookup, cached briefly.
	GetBySlug(ctx context.Context, venueSlug string) (*entity.Venue, *errors.AppError)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]entity.Venue, *errors.AppError)
	// EnsureOwnership verifies the venue exists and belongs to the caller.
	EnsureOwnership(ctx context.Context, venueID, userID uuid.UUID) *errors.AppError
}

type venueService struct {
	repo  repository.VenueRepository
	cache cache.Cache
}

// NewVenueService builds the venue service. A nil cache disables the slug
// lookup cache.
func NewVenueService(repo repository.VenueRepository, cache cache.Cache) VenueService {
	return &venueService{repo: repo, cache: cache}
}

func (s *venueService) Create(ctx context.Context, ownerID uuid.UUID, req *dto.CreateVenueRequest) (*entity.Venue, *errors.AppError) {
	if req.Name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "name is required", nil)
	}
	if req.Capacity < 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "capacity must not be negative", nil)
	}

	venue := &entity.Venue{
		OwnerID:  ownerID,
		Name:     req.Name,
		Slug:     slug.Make(req.Name),
		City:     req.City,
		Capacity: req.Capacity,
	}

	created, err := s.repo.Create(ctx, venue)
	if err != nil {
		logger.Error("VenueService:Create:Error", "error", err, "owner_id", ownerID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create venue", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, venueSlugCachePrefix+created.Slug)
	}

	logger.Info("VenueService:Create:Success", "venue_id", created.ID, "slug", created.Slug)
	return created, nil
}

func (s *venueService) GetBySlug(ctx context.Context, venueSlug string) (*entity.Venue, *errors.AppError) {
	key := venueSlugCachePrefix + venueSlug

	if s.cache != nil {
		if raw, found, err := s.cache.Get(ctx, key); err == nil && found {
			var venue entity.Venue
			if err := json.Unmarshal([]byte(raw), &venue); err == nil {
				return &venue, nil
			}
		}
	}

	venue, err := s.repo.GetBySlug(ctx, venueSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load venue", err)
	}
	if venue == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "venue not found", nil)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(venue); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), venueSlugCacheTTL); err != nil {
				logger.Warn("VenueService:GetBySlug:CacheSet:Error", "error", err, "slug", venueSlug)
			}
		}
	}
	return venue, nil
}

func (s *venueService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Venue, *errors.AppError) {
	venue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load venue", err)
	}
	if venue == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "venue not found", nil)
	}
	return venue, nil
}

func (s *venueService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]entity.Venue, *errors.AppError) {
	venues, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list venues", err)
	}
	return venues, nil
}

func (s *venueService) EnsureOwnership(ctx context.Context, venueID, userID uuid.UUID) *errors.AppError {
	venue, err := s.repo.GetByID(ctx, venueID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to load venue", err)
	}
	if venue == nil {
		return errors.NewAppError(errors.ErrNotFound, "venue not found", nil)
	}
	if venue.OwnerID != userID {
		return errors.NewAppError(errors.ErrForbidden, "venue does not belong to the current user", nil)
	}
	return nil
}
