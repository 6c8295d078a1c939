package dto

import "time"

// ========== Sync ==========

type SyncRequest struct {
	VenueID       string `json:"venueId"`
	LookAheadDays int    `json:"lookAheadDays,omitempty"`
}

// SyncResult reports the outcome of one reconciliation run.
type SyncResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type StatusResponse struct {
	Connected bool `json:"connected"`
}

// ========== Webhook ==========

type WebhookSetupRequest struct {
	VenueID string `json:"venueId"`
}

type WebhookSetupResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ========== Business hours ==========

// BusinessHourInput is one weekly open window as submitted by the client.
type BusinessHourInput struct {
	DaysOfWeek []int  `json:"daysOfWeek"`
	StartTime  string `json:"startTime"` // "HH:MM"
	EndTime    string `json:"endTime"`   // "HH:MM"
}

type SaveBusinessHoursRequest struct {
	VenueID       string              `json:"venueId"`
	BusinessHours []BusinessHourInput `json:"businessHours"`
}

// ========== Manual availability blocks ==========

type CreateBlockRequest struct {
	VenueID     string `json:"venueId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"startTime"` // RFC3339
	EndTime     string `json:"endTime"`   // RFC3339
	AllDay      bool   `json:"allDay"`
}
