package repository

import (
	"context"
	"database/sql"

	"venuehub/core/database"
	"venuehub/core/logger"
	"venuehub/modules/calendar/entity"

	"github.com/google/uuid"
)

type AvailabilityRepository interface {
	Insert(ctx context.Context, block *entity.AvailabilityBlock) (*entity.AvailabilityBlock, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilityBlock, error)
	ListByVenue(ctx context.Context, venueID uuid.UUID) ([]entity.AvailabilityBlock, error)
	// UpsertRemote writes imported blocks keyed by (venue_id, source,
	// google_event_id), updating title and times when the remote event
	// changed without changing its id.
	UpsertRemote(ctx context.Context, blocks []entity.AvailabilityBlock) (int, error)
	DeleteBySource(ctx context.Context, venueID uuid.UUID, source string) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type availabilityRepository struct {
	db database.IDatabase
}

func NewAvailabilityRepository(db database.IDatabase) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) Insert(ctx context.Context, block *entity.AvailabilityBlock) (*entity.AvailabilityBlock, error) {
	query := `
		INSERT INTO venue_availability
			(venue_id, title, description, start_time, end_time, all_day, recurring, recurrence_rule, source, google_event_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		block.VenueID, block.Title, block.Description, block.StartTime, block.EndTime,
		block.AllDay, block.Recurring, block.RecurrenceRule, block.Source, block.GoogleEventID,
	).Scan(&block.ID, &block.CreatedAt, &block.UpdatedAt)
	if err != nil {
		logger.Error("AvailabilityRepository:Insert:Error", "error", err, "venue_id", block.VenueID)
		return nil, err
	}
	return block, nil
}

func (r *availabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilityBlock, error) {
	query := `
		SELECT id, venue_id, title, description, start_time, end_time, all_day, recurring,
		       recurrence_rule, source, google_event_id, created_at, updated_at
		FROM venue_availability
		WHERE id = $1
	`
	var block entity.AvailabilityBlock
	err := r.db.GetContext(ctx, &block, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AvailabilityRepository:GetByID:Error", "error", err, "id", id)
		return nil, err
	}
	return &block, nil
}

func (r *availabilityRepository) ListByVenue(ctx context.Context, venueID uuid.UUID) ([]entity.AvailabilityBlock, error) {
	query := `
		SELECT id, venue_id, title, description, start_time, end_time, all_day, recurring,
		       recurrence_rule, source, google_event_id, created_at, updated_at
		FROM venue_availability
		WHERE venue_id = $1
		ORDER BY start_time
	`
	var blocks []entity.AvailabilityBlock
	if err := r.db.SelectContext(ctx, &blocks, query, venueID); err != nil {
		logger.Error("AvailabilityRepository:ListByVenue:Error", "error", err, "venue_id", venueID)
		return nil, err
	}
	return blocks, nil
}

func (r *availabilityRepository) UpsertRemote(ctx context.Context, blocks []entity.AvailabilityBlock) (int, error) {
	if len(blocks) == 0 {
		return 0, nil
	}

	// Relies on the partial unique index on (venue_id, google_event_id)
	// WHERE source = 'google'.
	query := `
		INSERT INTO venue_availability
			(venue_id, title, description, start_time, end_time, all_day, recurring, recurrence_rule, source, google_event_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (venue_id, google_event_id) WHERE source = 'google' DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			all_day = EXCLUDED.all_day,
			recurring = EXCLUDED.recurring,
			recurrence_rule = EXCLUDED.recurrence_rule,
			updated_at = NOW()
	`

	count := 0
	for i := range blocks {
		b := &blocks[i]
		if err := r.db.ExecContext(ctx, query,
			b.VenueID, b.Title, b.Description, b.StartTime, b.EndTime,
			b.AllDay, b.Recurring, b.RecurrenceRule, b.Source, b.GoogleEventID,
		); err != nil {
			logger.Error("AvailabilityRepository:UpsertRemote:Error", "error", err, "venue_id", b.VenueID)
			return count, err
		}
		count++
	}
	return count, nil
}

func (r *availabilityRepository) DeleteBySource(ctx context.Context, venueID uuid.UUID, source string) error {
	err := r.db.ExecContext(ctx,
		`DELETE FROM venue_availability WHERE venue_id = $1 AND source = $2`, venueID, source)
	if err != nil {
		logger.Error("AvailabilityRepository:DeleteBySource:Error", "error", err, "venue_id", venueID, "source", source)
	}
	return err
}

func (r *availabilityRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	err := r.db.ExecContext(ctx, `DELETE FROM venue_availability WHERE id = $1`, id)
	if err != nil {
		logger.Error("AvailabilityRepository:DeleteByID:Error", "error", err, "id", id)
	}
	return err
}
