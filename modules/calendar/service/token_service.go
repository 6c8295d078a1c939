package service

import (
	"context"
	"time"

	"venuehub/core/config"
	"venuehub/core/constants"
	"venuehub/core/errors"
	"venuehub/core/logger"
	"venuehub/modules/calendar/entity"
	"venuehub/modules/calendar/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type TokenService interface {
	// GetValidToken returns a token whose access credential is good for at
	// least the refresh skew, refreshing it against the provider when needed.
	// A nil token with an AppError means "integration not connected" — callers
	// surface it to the user rather than failing hard.
	GetValidToken(ctx context.Context, userID uuid.UUID) (*entity.CalendarToken, *errors.AppError)
	IsConnected(ctx context.Context, userID uuid.UUID) (bool, error)
	SaveConnection(ctx context.Context, userID uuid.UUID, accessToken, refreshToken string, expiresAt time.Time, calendarID string) (*entity.CalendarToken, *errors.AppError)
}

type tokenService struct {
	repo     repository.TokenRepository
	endpoint oauth2.Endpoint
}

func NewTokenService(repo repository.TokenRepository) TokenService {
	return &tokenService{repo: repo, endpoint: google.Endpoint}
}

// NewTokenServiceWithEndpoint overrides the OAuth endpoint. Used by tests.
func NewTokenServiceWithEndpoint(repo repository.TokenRepository, endpoint oauth2.Endpoint) TokenService {
	return &tokenService{repo: repo, endpoint: endpoint}
}

func (s *tokenService) GetValidToken(ctx context.Context, userID uuid.UUID) (*entity.CalendarToken, *errors.AppError) {
	token, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		logger.Error("TokenService:GetValidToken:GetByUserID:Error", "error", err, "user_id", userID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load calendar token", err)
	}
	if token == nil {
		return nil, errors.NewAppError(errors.ErrNotConnected, "Google Calendar is not connected", nil)
	}

	if time.Now().Before(token.ExpiresAt.Add(-constants.TokenRefreshSkew)) {
		return token, nil
	}

	logger.Info("TokenService:GetValidToken:Refreshing", "user_id", userID)

	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		Endpoint:     s.endpoint,
	}

	source := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: token.RefreshToken})
	fresh, err := source.Token()
	if err != nil {
		// Revoked grant or provider outage; the integration is effectively
		// disconnected until the user reauthorizes.
		logger.Error("TokenService:GetValidToken:Refresh:Error", "error", err, "user_id", userID)
		return nil, errors.NewAppError(errors.ErrNotConnected, "Google Calendar authorization expired. Please reconnect", err)
	}

	token.AccessToken = fresh.AccessToken
	token.ExpiresAt = fresh.Expiry
	if fresh.Expiry.IsZero() {
		token.ExpiresAt = time.Now().Add(time.Hour)
	}
	// The provider only rotates refresh tokens occasionally; keep the old
	// one unless a new one was issued.
	if fresh.RefreshToken != "" {
		token.RefreshToken = fresh.RefreshToken
	}

	if err := s.repo.Upsert(ctx, token); err != nil {
		logger.Error("TokenService:GetValidToken:Persist:Error", "error", err, "user_id", userID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to persist refreshed token", err)
	}

	logger.Info("TokenService:GetValidToken:Refreshed", "user_id", userID, "expires_at", token.ExpiresAt)
	return token, nil
}

func (s *tokenService) IsConnected(ctx context.Context, userID uuid.UUID) (bool, error) {
	token, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return token != nil, nil
}

func (s *tokenService) SaveConnection(ctx context.Context, userID uuid.UUID, accessToken, refreshToken string, expiresAt time.Time, calendarID string) (*entity.CalendarToken, *errors.AppError) {
	if accessToken == "" || refreshToken == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "access and refresh tokens are required", nil)
	}

	token := &entity.CalendarToken{
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		CalendarID:   calendarID,
	}
	if err := s.repo.Upsert(ctx, token); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save calendar connection", err)
	}

	logger.Info("TokenService:SaveConnection:Success", "user_id", userID, "calendar_id", calendarID)
	return token, nil
}
