package service

import (
	"context"
	"time"

	coreEntity "venuehub/core/entity"
	"venuehub/core/logger"
	"venuehub/core/params"
	"venuehub/modules/notification/dto"
	"venuehub/modules/notification/entity"
	"venuehub/modules/notification/repository"

	"github.com/google/uuid"
)

type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) error {
	notif := &entity.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Data:    entity.JSONB(req.Data),
		IsRead:  false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	return s.repo.Create(ctx, notif)
}

// CalendarAlert records an integration-health notification for a venue owner.
// Delivery failures are logged and swallowed; alerting must never fail the
// calendar operation that raised it.
func (s *NotificationService) CalendarAlert(ctx context.Context, userID, venueID uuid.UUID, alertType, message string) {
	err := s.Create(ctx, &dto.CreateNotificationRequest{
		UserID:  userID,
		Title:   "Calendar integration",
		Message: message,
		Type:    alertType,
		Data:    map[string]interface{}{"venue_id": venueID.String()},
	})
	if err != nil {
		logger.Error("NotificationService:CalendarAlert:Error", "error", err, "user_id", userID, "venue_id", venueID)
	}
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.GetByUserID(ctx, userID, queryParams)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	return s.repo.MarkAsRead(ctx, userID, ids)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
