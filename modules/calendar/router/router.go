package router

import (
	"venuehub/core/middleware"
	"venuehub/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	calendar *controller.CalendarController
	webhooks *controller.WebhookController
}

func NewCalendarRouter(calendar *controller.CalendarController, webhooks *controller.WebhookController) *CalendarRouter {
	return &CalendarRouter{calendar: calendar, webhooks: webhooks}
}

func (r *CalendarRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	group := e.Group("/api/calendar")

	// Called by the provider; authenticated by the channel id, not a session.
	group.POST("/webhook/notifications", r.webhooks.Notifications)

	authed := group.Group("", mw.AuthMiddleware())
	authed.GET("/status", r.calendar.GetStatus)
	authed.POST("/sync", r.calendar.Sync)
	authed.POST("/webhook/setup", r.webhooks.Setup)
	authed.GET("/business-hours", r.calendar.GetBusinessHours)
	authed.POST("/business-hours", r.calendar.SaveBusinessHours)
	authed.GET("/availability", r.calendar.ListAvailability)
	authed.POST("/availability", r.calendar.CreateAvailability)
	authed.DELETE("/availability/:id", r.calendar.DeleteAvailability)
}
