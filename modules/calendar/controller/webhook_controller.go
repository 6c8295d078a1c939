package controller

import (
	"net/http"

	"venuehub/core/logger"
	"venuehub/core/middleware"
	"venuehub/modules/calendar/dto"
	"venuehub/modules/calendar/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type WebhookController struct {
	webhooks service.WebhookService
}

func NewWebhookController(webhooks service.WebhookService) *WebhookController {
	return &WebhookController{webhooks: webhooks}
}

// Setup registers push notifications for the venue's linked calendar.
// POST /api/calendar/webhook/setup
func (c *WebhookController) Setup(ctx echo.Context) error {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid user"})
	}

	var req dto.WebhookSetupRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}

	resp, appErr := c.webhooks.Setup(ctx.Request().Context(), userID, venueID)
	if appErr != nil {
		return errorJSON(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// Notifications receives provider pushes. Unauthenticated: the provider
// proves itself via the channel id issued at setup time.
// POST /api/calendar/webhook/notifications
func (c *WebhookController) Notifications(ctx echo.Context) error {
	channelID := ctx.Request().Header.Get("X-Goog-Channel-ID")
	channelToken := ctx.Request().Header.Get("X-Goog-Channel-Token")
	resourceState := ctx.Request().Header.Get("X-Goog-Resource-State")

	if channelID == "" {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "missing channel id"})
	}

	logger.Info("WebhookController:Notifications:Received", "channel_id", channelID, "state", resourceState)

	if appErr := c.webhooks.HandleNotification(ctx.Request().Context(), channelID, channelToken, resourceState); appErr != nil {
		return errorJSON(ctx, appErr)
	}
	return ctx.NoContent(http.StatusOK)
}
