package controller

import (
	"net/http"

	"venuehub/core/controller"
	"venuehub/core/errors"
	"venuehub/core/middleware"
	"venuehub/modules/calendar/dto"
	"venuehub/modules/calendar/service"
	venueService "venuehub/modules/venue/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CalendarController serves the calendar integration endpoints. The response
// shapes here are part of the public contract consumed by the web client, so
// errors are flat {"error": "..."} bodies rather than the standard envelope.
type CalendarController struct {
	tokens       service.TokenService
	sync         service.SyncService
	availability service.AvailabilityService
	venues       venueService.VenueService
}

func NewCalendarController(
	tokens service.TokenService,
	sync service.SyncService,
	availability service.AvailabilityService,
	venues venueService.VenueService,
) *CalendarController {
	return &CalendarController{
		tokens:       tokens,
		sync:         sync,
		availability: availability,
		venues:       venues,
	}
}

func errorJSON(ctx echo.Context, appErr *errors.AppError) error {
	return ctx.JSON(controller.HTTPStatusFor(appErr.Code), echo.Map{"error": appErr.Message})
}

// GetStatus reports whether the current user has a connected calendar.
// GET /api/calendar/status
func (c *CalendarController) GetStatus(ctx echo.Context) error {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid user"})
	}

	connected, err := c.tokens.IsConnected(ctx.Request().Context(), userID)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check calendar status"})
	}

	return ctx.JSON(http.StatusOK, dto.StatusResponse{Connected: connected})
}

// Sync imports upcoming calendar events as availability blocks.
// POST /api/calendar/sync
func (c *CalendarController) Sync(ctx echo.Context) error {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid user"})
	}

	var req dto.SyncRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}

	if appErr := c.venues.EnsureOwnership(ctx.Request().Context(), venueID, userID); appErr != nil {
		return errorJSON(ctx, appErr)
	}

	result, appErr := c.sync.Sync(ctx.Request().Context(), userID, venueID, req.LookAheadDays)
	if appErr != nil {
		return ctx.JSON(http.StatusInternalServerError, dto.SyncResult{Success: false, Message: appErr.Message})
	}
	return ctx.JSON(http.StatusOK, result)
}

// GetBusinessHours returns the venue's weekly schedule.
// GET /api/calendar/business-hours?venueId=...
func (c *CalendarController) GetBusinessHours(ctx echo.Context) error {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid user"})
	}
	venueID, err := uuid.Parse(ctx.QueryParam("venueId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}

	hours, appErr := c.availability.GetBusinessHours(ctx.Request().Context(), userID, venueID)
	if appErr != nil {
		return errorJSON(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"data": hours})
}

// SaveBusinessHours replaces the venue's weekly schedule.
// POST /api/calendar/business-hours
func (c *CalendarController) SaveBusinessHours(ctx echo.Context) error {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid user"})
	}

	var req dto.SaveBusinessHoursRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	hours, appErr := c.availability.SaveBusinessHours(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return errorJSON(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"data": hours})
}

// ListAvailability returns the venue's availability blocks, manual and imported.
// GET /api/calendar/availability?venueId=...
func (c *CalendarController) ListAvailability(ctx echo.Context) error {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid user"})
	}
	venueID, err := uuid.Parse(ctx.QueryParam("venueId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}

	blocks, appErr := c.availability.ListBlocks(ctx.Request().Context(), userID, venueID)
	if appErr != nil {
		return errorJSON(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"availability": blocks})
}

// CreateAvailability adds a manual availability block.
// POST /api/calendar/availability
func (c *CalendarController) CreateAvailability(ctx echo.Context) error {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid user"})
	}

	var req dto.CreateBlockRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	block, appErr := c.availability.CreateManualBlock(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return errorJSON(ctx, appErr)
	}
	return ctx.JSON(http.StatusCreated, block)
}

// DeleteAvailability removes a manual availability block.
// DELETE /api/calendar/availability/:id
func (c *CalendarController) DeleteAvailability(ctx echo.Context) error {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid user"})
	}
	blockID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "invalid block id"})
	}

	if appErr := c.availability.DeleteBlock(ctx.Request().Context(), userID, blockID); appErr != nil {
		return errorJSON(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true})
}
