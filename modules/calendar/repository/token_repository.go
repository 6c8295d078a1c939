package repository

import (
	"context"
	"database/sql"

	"venuehub/core/database"
	"venuehub/core/logger"
	"venuehub/modules/calendar/entity"

	"github.com/google/uuid"
)

type TokenRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.CalendarToken, error)
	Upsert(ctx context.Context, token *entity.CalendarToken) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type tokenRepository struct {
	db database.IDatabase
}

func NewTokenRepository(db database.IDatabase) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.CalendarToken, error) {
	query := `
		SELECT id, user_id, access_token, refresh_token, expires_at, calendar_id, created_at, updated_at
		FROM google_calendar_tokens
		WHERE user_id = $1
	`
	var token entity.CalendarToken
	err := r.db.GetContext(ctx, &token, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("TokenRepository:GetByUserID:Error", "error", err, "user_id", userID)
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Upsert(ctx context.Context, token *entity.CalendarToken) error {
	query := `
		INSERT INTO google_calendar_tokens (user_id, access_token, refresh_token, expires_at, calendar_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			calendar_id = EXCLUDED.calendar_id,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		token.UserID, token.AccessToken, token.RefreshToken, token.ExpiresAt, token.CalendarID,
	).Scan(&token.ID, &token.CreatedAt, &token.UpdatedAt)
	if err != nil {
		logger.Error("TokenRepository:Upsert:Error", "error", err, "user_id", token.UserID)
		return err
	}
	return nil
}

func (r *tokenRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.db.ExecContext(ctx, `DELETE FROM google_calendar_tokens WHERE user_id = $1`, userID)
}
