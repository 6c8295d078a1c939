package repository

import (
	"context"
	"database/sql"
	"time"

	"venuehub/core/database"
	"venuehub/core/logger"
	"venuehub/modules/calendar/entity"
)

type WebhookRepository interface {
	// Upsert keeps one active subscription per (venue_id, user_id, calendar_id).
	Upsert(ctx context.Context, sub *entity.WebhookSubscription) error
	GetByChannelID(ctx context.Context, channelID string) (*entity.WebhookSubscription, error)
	ListExpiring(ctx context.Context, before time.Time) ([]entity.WebhookSubscription, error)
	DeleteByChannelID(ctx context.Context, channelID string) error
}

type webhookRepository struct {
	db database.IDatabase
}

func NewWebhookRepository(db database.IDatabase) WebhookRepository {
	return &webhookRepository{db: db}
}

func (r *webhookRepository) Upsert(ctx context.Context, sub *entity.WebhookSubscription) error {
	query := `
		INSERT INTO google_calendar_webhooks (channel_id, channel_token, resource_id, calendar_id, user_id, venue_id, expiration)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (venue_id, user_id, calendar_id) DO UPDATE SET
			channel_id = EXCLUDED.channel_id,
			channel_token = EXCLUDED.channel_token,
			resource_id = EXCLUDED.resource_id,
			expiration = EXCLUDED.expiration,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		sub.ChannelID, sub.ChannelToken, sub.ResourceID, sub.CalendarID, sub.UserID, sub.VenueID, sub.Expiration,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		logger.Error("WebhookRepository:Upsert:Error", "error", err, "venue_id", sub.VenueID)
		return err
	}
	return nil
}

func (r *webhookRepository) GetByChannelID(ctx context.Context, channelID string) (*entity.WebhookSubscription, error) {
	query := `
		SELECT id, channel_id, channel_token, resource_id, calendar_id, user_id, venue_id, expiration, created_at, updated_at
		FROM google_calendar_webhooks
		WHERE channel_id = $1
	`
	var sub entity.WebhookSubscription
	err := r.db.GetContext(ctx, &sub, query, channelID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("WebhookRepository:GetByChannelID:Error", "error", err, "channel_id", channelID)
		return nil, err
	}
	return &sub, nil
}

func (r *webhookRepository) ListExpiring(ctx context.Context, before time.Time) ([]entity.WebhookSubscription, error) {
	query := `
		SELECT id, channel_id, channel_token, resource_id, calendar_id, user_id, venue_id, expiration, created_at, updated_at
		FROM google_calendar_webhooks
		WHERE expiration < $1
		ORDER BY expiration
	`
	var subs []entity.WebhookSubscription
	if err := r.db.SelectContext(ctx, &subs, query, before); err != nil {
		logger.Error("WebhookRepository:ListExpiring:Error", "error", err)
		return nil, err
	}
	return subs, nil
}

func (r *webhookRepository) DeleteByChannelID(ctx context.Context, channelID string) error {
	err := r.db.ExecContext(ctx, `DELETE FROM google_calendar_webhooks WHERE channel_id = $1`, channelID)
	if err != nil {
		logger.Error("WebhookRepository:DeleteByChannelID:Error", "error", err, "channel_id", channelID)
	}
	return err
}
