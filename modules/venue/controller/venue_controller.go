package controller

import (
	"net/http"

	"venuehub/core/controller"
	"venuehub/core/middleware"
	"venuehub/modules/venue/dto"
	"venuehub/modules/venue/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type VenueController struct {
	controller.BaseController
	service service.VenueService
}

func NewVenueController(svc service.VenueService) *VenueController {
	return &VenueController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

// CreateVenue registers a venue for the authenticated owner
// POST /api/venues
func (c *VenueController) CreateVenue(ctx echo.Context) error {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req dto.CreateVenueRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	venue, appErr := c.service.Create(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return ctx.JSON(http.StatusCreated, venue)
}

// ListMyVenues returns the caller's venues
// GET /api/venues
func (c *VenueController) ListMyVenues(ctx echo.Context) error {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	venues, appErr := c.service.ListMine(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"data": venues})
}

// GetVenueBySlug returns a venue's public page data
// GET /api/venues/slug/:slug
func (c *VenueController) GetVenueBySlug(ctx echo.Context) error {
	venue, appErr := c.service.GetBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, venue)
}

// GetVenue returns one venue by id
// GET /api/venues/:id
func (c *VenueController) GetVenue(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}

	venue, appErr := c.service.GetByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return ctx.JSON(http.StatusOK, venue)
}
