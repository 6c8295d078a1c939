package dto

// CreateVenueRequest registers a new venue for the authenticated owner.
type CreateVenueRequest struct {
	Name     string `json:"name" validate:"required"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
}
