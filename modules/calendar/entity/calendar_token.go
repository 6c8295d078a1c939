package entity

import (
	"time"

	"venuehub/core/entity"

	"github.com/google/uuid"
)

// CalendarToken stores a user's Google Calendar OAuth grant. One row per user;
// mutated in place on refresh.
type CalendarToken struct {
	entity.BaseEntity
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	AccessToken  string    `db:"access_token" json:"-"`
	RefreshToken string    `db:"refresh_token" json:"-"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	CalendarID   string    `db:"calendar_id" json:"calendar_id"`
}

func (CalendarToken) TableName() string {
	return "google_calendar_tokens"
}
