package entity

import (
	"venuehub/core/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BusinessHours is one weekly open window covering one or more weekdays
// (0 = Sunday). A venue may have several rows; overlaps are accepted and
// rendering takes the union.
type BusinessHours struct {
	entity.BaseEntity
	VenueID    uuid.UUID     `db:"venue_id" json:"venue_id"`
	DaysOfWeek pq.Int64Array `db:"days_of_week" json:"days_of_week"`
	StartTime  string        `db:"start_time" json:"start_time"` // "HH:MM"
	EndTime    string        `db:"end_time" json:"end_time"`     // "HH:MM"
}

func (BusinessHours) TableName() string {
	return "venue_business_hours"
}
