package repository

import (
	"context"

	"venuehub/core/database"
	"venuehub/core/logger"
	"venuehub/modules/calendar/entity"

	"github.com/google/uuid"
)

type BusinessHoursRepository interface {
	ListByVenue(ctx context.Context, venueID uuid.UUID) ([]entity.BusinessHours, error)
	// ReplaceForVenue swaps the venue's full weekly schedule in one
	// transaction: delete all rows, insert the new set.
	ReplaceForVenue(ctx context.Context, venueID uuid.UUID, hours []entity.BusinessHours) error
}

type businessHoursRepository struct {
	db database.IDatabase
}

func NewBusinessHoursRepository(db database.IDatabase) BusinessHoursRepository {
	return &businessHoursRepository{db: db}
}

func (r *businessHoursRepository) ListByVenue(ctx context.Context, venueID uuid.UUID) ([]entity.BusinessHours, error) {
	query := `
		SELECT id, venue_id, days_of_week, start_time, end_time, created_at, updated_at
		FROM venue_business_hours
		WHERE venue_id = $1
		ORDER BY start_time
	`
	var hours []entity.BusinessHours
	if err := r.db.SelectContext(ctx, &hours, query, venueID); err != nil {
		logger.Error("BusinessHoursRepository:ListByVenue:Error", "error", err, "venue_id", venueID)
		return nil, err
	}
	return hours, nil
}

func (r *businessHoursRepository) ReplaceForVenue(ctx context.Context, venueID uuid.UUID, hours []entity.BusinessHours) error {
	tx, err := r.db.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM venue_business_hours WHERE venue_id = $1`, venueID); err != nil {
		logger.Error("BusinessHoursRepository:ReplaceForVenue:Delete:Error", "error", err, "venue_id", venueID)
		return err
	}

	insert := `
		INSERT INTO venue_business_hours (venue_id, days_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4)
	`
	for _, h := range hours {
		if _, err := tx.ExecContext(ctx, insert, venueID, h.DaysOfWeek, h.StartTime, h.EndTime); err != nil {
			logger.Error("BusinessHoursRepository:ReplaceForVenue:Insert:Error", "error", err, "venue_id", venueID)
			return err
		}
	}

	return tx.Commit()
}
