package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/activityhub/membership-api/internal/core/ports"
)

type ActivityHandler struct {
	activityService ports.ActivityService
}

func NewActivityHandler(activityService ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

type activityRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartAt     time.Time `json:"start_at"    validate:"required"`
	EndAt       time.Time `json:"end_at"      validate:"required"`
	Price       int64     `json:"price"`
	Capacity    int       `json:"capacity"`
	Picture     string    `json:"picture"`
}

func (r activityRequest) toInput() ports.ActivityInput {
	return ports.ActivityInput{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		StartAt:     r.StartAt,
		EndAt:       r.EndAt,
		Price:       r.Price,
		Capacity:    r.Capacity,
		Picture:     r.Picture,
	}
}

// Create adds a new draft activity.
//
// @Summary      Create an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      activityRequest  true  "Activity details"
// @Success      201   {object}  domain.Activity
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/admin/activities [post]
func (h *ActivityHandler) Create(c echo.Context) error {
	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	activity, err := h.activityService.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, activity)
}

// Update edits an existing activity.
//
// @Summary      Update an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Activity id"
// @Param        body  body      activityRequest  true  "Activity details"
// @Success      200   {object}  domain.Activity
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/activities/{id} [patch]
func (h *ActivityHandler) Update(c echo.Context) error {
	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	activity, err := h.activityService.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activity)
}

// Publish moves a draft activity to published.
//
// @Summary      Publish an activity
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Activity id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/admin/activities/{id}/publish [post]
func (h *ActivityHandler) Publish(c echo.Context) error {
	if err := h.activityService.Publish(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "activity published"})
}

// Cancel calls off a published activity.
//
// @Summary      Cancel an activity
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Activity id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/admin/activities/{id}/cancel [post]
func (h *ActivityHandler) Cancel(c echo.Context) error {
	if err := h.activityService.Cancel(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "activity canceled"})
}

// Get returns any activity by id, regardless of status.
//
// @Summary      Get an activity
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Activity id"
// @Success      200  {object}  domain.Activity
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/activities/{id} [get]
func (h *ActivityHandler) Get(c echo.Context) error {
	activity, err := h.activityService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activity)
}

// List returns one page of all activities.
//
// @Summary      List activities
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "1-based page number (default 1)"
// @Param        limit  query  int  false  "page size (default 25)"
// @Success      200  {object}  ports.ActivityPage
// @Failure      400  {object}  map[string]string
// @Router       /v1/admin/activities [get]
func (h *ActivityHandler) List(c echo.Context) error {
	page, limit, err := parsePageQuery(c)
	if err != nil {
		return err
	}

	result, err := h.activityService.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// GetPublished returns a published activity for the member-facing surface.
//
// @Summary      Get a published activity
// @Tags         activities
// @Produce      json
// @Param        id  path  string  true  "Activity id"
// @Success      200  {object}  domain.Activity
// @Failure      404  {object}  map[string]string
// @Router       /v1/activities/{id} [get]
func (h *ActivityHandler) GetPublished(c echo.Context) error {
	activity, err := h.activityService.GetPublished(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activity)
}

// ListPublished returns one page of published activities.
//
// @Summary      List published activities
// @Tags         activities
// @Produce      json
// @Param        page   query  int  false  "1-based page number (default 1)"
// @Param        limit  query  int  false  "page size (default 25)"
// @Success      200  {object}  ports.ActivityPage
// @Failure      400  {object}  map[string]string
// @Router       /v1/activities [get]
func (h *ActivityHandler) ListPublished(c echo.Context) error {
	page, limit, err := parsePageQuery(c)
	if err != nil {
		return err
	}

	result, err := h.activityService.ListPublished(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
