package notification

import (
	"venuehub/core/database"
	"venuehub/core/middleware"
	"venuehub/modules/notification/controller"
	"venuehub/modules/notification/repository"
	"venuehub/modules/notification/router"
	"venuehub/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Setup(e, mw)

	return svc
}
