package constants

import "time"

// HTTP / upstream timeouts
const (
	DefaultTimeout       = 10 * time.Second
	GoogleClientTimeout  = 30 * time.Second
	ServerShutdownPeriod = 10 * time.Second
)

// Database pool settings
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Calendar sync
const (
	// TokenRefreshSkew refreshes access tokens this long before they expire.
	TokenRefreshSkew = 5 * time.Minute

	// DefaultLookAheadDays bounds how far into the future remote events are imported.
	DefaultLookAheadDays = 90

	// MaxCalendarResults caps a single events fetch, matching the provider limit.
	MaxCalendarResults = 2500

	// WebhookChannelTTL is the provider-imposed ceiling for push channels.
	WebhookChannelTTL = 7 * 24 * time.Hour

	// WebhookRenewalWindow is how close to expiry a channel gets re-registered.
	WebhookRenewalWindow = 12 * time.Hour
)

// Redis key prefixes
const (
	RedisKeyPresence = "presence:"
	RedisKeyRoom     = "room:"
)

// Presence
const (
	PresenceTTL = 60 * time.Second
)

// Availability block sources
const (
	SourceManual = "manual"
	SourceGoogle = "google"
)

// Notification types
const (
	NotificationCalendarSyncFailed   = "calendar_sync_failed"
	NotificationWebhookRenewalFailed = "webhook_renewal_failed"
)
