package entity

import (
	"time"

	"venuehub/core/entity"

	"github.com/google/uuid"
)

// AvailabilityBlock marks a span during which a venue cannot be booked.
// Manual blocks are entered by the owner; google blocks are imported by the
// reconciler and identified by (venue_id, source, google_event_id).
type AvailabilityBlock struct {
	entity.BaseEntity
	VenueID        uuid.UUID `db:"venue_id" json:"venue_id"`
	Title          string    `db:"title" json:"title"`
	Description    *string   `db:"description" json:"description,omitempty"`
	StartTime      time.Time `db:"start_time" json:"start_time"`
	EndTime        time.Time `db:"end_time" json:"end_time"`
	AllDay         bool      `db:"all_day" json:"all_day"`
	Recurring      bool      `db:"recurring" json:"recurring"`
	RecurrenceRule *string   `db:"recurrence_rule" json:"recurrence_rule,omitempty"`
	Source         string    `db:"source" json:"source"` // "manual" | "google"
	GoogleEventID  *string   `db:"google_event_id" json:"google_event_id,omitempty"`
}

func (AvailabilityBlock) TableName() string {
	return "venue_availability"
}
