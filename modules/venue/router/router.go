package router

import (
	"venuehub/core/middleware"
	"venuehub/modules/venue/controller"

	"github.com/labstack/echo/v4"
)

type VenueRouter struct {
	controller *controller.VenueController
}

func NewVenueRouter(controller *controller.VenueController) *VenueRouter {
	return &VenueRouter{controller: controller}
}

func (r *VenueRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	// Public venue page lookup.
	e.GET("/api/venues/slug/:slug", r.controller.GetVenueBySlug)

	group := e.Group("/api/venues", mw.AuthMiddleware())
	group.POST("", r.controller.CreateVenue)
	group.GET("", r.controller.ListMyVenues)
	group.GET("/:id", r.controller.GetVenue)
}
