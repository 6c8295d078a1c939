package entity

import (
	"venuehub/core/entity"

	"github.com/google/uuid"
)

// Venue is a bookable space listed by an owner. Full marketplace editing
// lives elsewhere; this service only needs identity and ownership.
type Venue struct {
	entity.BaseEntity
	OwnerID  uuid.UUID `db:"owner_id" json:"owner_id"`
	Name     string    `db:"name" json:"name"`
	Slug     string    `db:"slug" json:"slug"`
	City     string    `db:"city" json:"city"`
	Capacity int       `db:"capacity" json:"capacity"`
}

func (Venue) TableName() string {
	return "venues"
}
