package venue

import (
	"venuehub/core/cache"
	"venuehub/core/database"
	"venuehub/core/middleware"
	"venuehub/modules/venue/controller"
	"venuehub/modules/venue/repository"
	"venuehub/modules/venue/router"
	"venuehub/modules/venue/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase, c cache.Cache, mw *middleware.Middleware) service.VenueService {
	repo := repository.NewVenueRepository(db)
	svc := service.NewVenueService(repo, c)
	ctrl := controller.NewVenueController(svc)

	router.NewVenueRouter(ctrl).Setup(e, mw)

	return svc
}
