package repository

import (
	"context"
	"database/sql"

	"venuehub/core/database"
	"venuehub/core/logger"
	"venuehub/modules/venue/entity"

	"github.com/google/uuid"
)

type VenueRepository interface {
	Create(ctx context.Context, venue *entity.Venue) (*entity.Venue, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Venue, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Venue, error)
	IsOwnedBy(ctx context.Context, venueID, userID uuid.UUID) (bool, error)
}

type venueRepository struct {
	db database.IDatabase
}

func NewVenueRepository(db database.IDatabase) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) Create(ctx context.Context, venue *entity.Venue) (*entity.Venue, error) {
	query := `
		INSERT INTO venues (owner_id, name, slug, city, capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		venue.OwnerID, venue.Name, venue.Slug, venue.City, venue.Capacity,
	).Scan(&venue.ID, &venue.CreatedAt, &venue.UpdatedAt)
	if err != nil {
		logger.Error("VenueRepository:Create:Error", "error", err)
		return nil, err
	}
	return venue, nil
}

func (r *venueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	query := `
		SELECT id, owner_id, name, slug, city, capacity, created_at, updated_at
		FROM venues WHERE id = $1
	`
	var venue entity.Venue
	err := r.db.GetContext(ctx, &venue, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("VenueRepository:GetByID:Error", "error", err, "venue_id", id)
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) GetBySlug(ctx context.Context, slug string) (*entity.Venue, error) {
	query := `
		SELECT id, owner_id, name, slug, city, capacity, created_at, updated_at
		FROM venues WHERE slug = $1
	`
	var venue entity.Venue
	err := r.db.GetContext(ctx, &venue, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("VenueRepository:GetBySlug:Error", "error", err, "slug", slug)
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Venue, error) {
	query := `
		SELECT id, owner_id, name, slug, city, capacity, created_at, updated_at
		FROM venues
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	var venues []entity.Venue
	if err := r.db.SelectContext(ctx, &venues, query, ownerID); err != nil {
		logger.Error("VenueRepository:ListByOwner:Error", "error", err, "owner_id", ownerID)
		return nil, err
	}
	return venues, nil
}

func (r *venueRepository) IsOwnedBy(ctx context.Context, venueID, userID uuid.UUID) (bool, error) {
	var owned bool
	query := `SELECT EXISTS (SELECT 1 FROM venues WHERE id = $1 AND owner_id = $2)`
	if err := r.db.GetContext(ctx, &owned, query, venueID, userID); err != nil {
		logger.Error("VenueRepository:IsOwnedBy:Error", "error", err, "venue_id", venueID)
		return false, err
	}
	return owned, nil
}
