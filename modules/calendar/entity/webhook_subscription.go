package entity

import (
	"time"

	"venuehub/core/entity"

	"github.com/google/uuid"
)

// WebhookSubscription is a provider-side push channel watching one calendar
// for one venue. One active row per (venue_id, user_id, calendar_id);
// channels expire after at most seven days.
type WebhookSubscription struct {
	entity.BaseEntity
	ChannelID string `db:"channel_id" json:"channel_id"`
	// ChannelToken is a shared secret echoed back by the provider on every
	// notification for this channel.
	ChannelToken string    `db:"channel_token" json:"-"`
	ResourceID   string    `db:"resource_id" json:"resource_id"`
	CalendarID   string    `db:"calendar_id" json:"calendar_id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	VenueID      uuid.UUID `db:"venue_id" json:"venue_id"`
	Expiration   time.Time `db:"expiration" json:"expiration"`
}

func (WebhookSubscription) TableName() string {
	return "google_calendar_webhooks"
}
