package router

import (
	"venuehub/core/middleware"
	"venuehub/modules/presence/controller"

	"github.com/labstack/echo/v4"
)

type PresenceRouter struct {
	controller *controller.PresenceController
}

func NewPresenceRouter(controller *controller.PresenceController) *PresenceRouter {
	return &PresenceRouter{controller: controller}
}

func (r *PresenceRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	group := e.Group("/api/rooms", mw.AuthMiddleware())
	group.GET("/:id/ws", r.controller.Connect)
	group.GET("/:id/members", r.controller.GetMembers)
}
