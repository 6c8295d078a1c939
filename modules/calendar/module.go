package calendar

import (
	"venuehub/core/config"
	"venuehub/core/database"
	"venuehub/core/middleware"
	"venuehub/modules/calendar/controller"
	"venuehub/modules/calendar/repository"
	"venuehub/modules/calendar/router"
	"venuehub/modules/calendar/service"
	venueService "venuehub/modules/venue/service"

	"github.com/labstack/echo/v4"
)

// Init wires the calendar module and returns the webhook service so the
// background renewal worker can be attached to it.
func Init(
	e *echo.Echo,
	db database.IDatabase,
	mw *middleware.Middleware,
	venues venueService.VenueService,
	alerts service.AlertSink,
) service.WebhookService {
	cfg := config.Get()
	callbackURL := cfg.Server.PublicURL + "/api/calendar/webhook/notifications"

	tokenRepo := repository.NewTokenRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	hoursRepo := repository.NewBusinessHoursRepository(db)
	webhookRepo := repository.NewWebhookRepository(db)

	client := service.NewGoogleCalendarClient()
	tokens := service.NewTokenService(tokenRepo)
	sync := service.NewSyncService(tokens, client, availabilityRepo)
	availability := service.NewAvailabilityService(hoursRepo, availabilityRepo, venues)
	webhooks := service.NewWebhookService(tokens, client, webhookRepo, sync, venues, alerts, callbackURL)

	calendarController := controller.NewCalendarController(tokens, sync, availability, venues)
	webhookController := controller.NewWebhookController(webhooks)

	router.NewCalendarRouter(calendarController, webhookController).Setup(e, mw)

	return webhooks
}
