package presence

import (
	"venuehub/core/middleware"
	"venuehub/core/realtime"
	"venuehub/modules/presence/controller"
	"venuehub/modules/presence/router"
	"venuehub/modules/presence/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, bus realtime.Bus, mw *middleware.Middleware) service.PresenceService {
	svc := service.NewPresenceService(bus)
	ctrl := controller.NewPresenceController(svc)

	router.NewPresenceRouter(ctrl).Setup(e, mw)

	return svc
}
