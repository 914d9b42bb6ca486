package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/activityhub/membership-api/internal/core/ports"
)

type NewsHandler struct {
	newsService ports.NewsService
}

func NewNewsHandler(newsService ports.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

type newsRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
	Picture string `json:"picture"`
}

// Create adds a news entry.
//
// @Summary      Create news
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      newsRequest  true  "News details"
// @Success      201   {object}  domain.News
// @Failure      400   {object}  map[string]string
// @Router       /v1/admin/news [post]
func (h *NewsHandler) Create(c echo.Context) error {
	var req newsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	news, err := h.newsService.Create(c.Request().Context(), ports.NewsInput{
		Title:   req.Title,
		Content: req.Content,
		Picture: req.Picture,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, news)
}

// Update edits a news entry.
//
// @Summary      Update news
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "News id"
// @Param        body  body      newsRequest  true  "News details"
// @Success      200   {object}  domain.News
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/news/{id} [patch]
func (h *NewsHandler) Update(c echo.Context) error {
	var req newsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	news, err := h.newsService.Update(c.Request().Context(), c.Param("id"), ports.NewsInput{
		Title:   req.Title,
		Content: req.Content,
		Picture: req.Picture,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, news)
}

// Delete removes a news entry permanently.
//
// @Summary      Delete news
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "News id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/news/{id} [delete]
func (h *NewsHandler) Delete(c echo.Context) error {
	if err := h.newsService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "news deleted"})
}

// Get returns a news entry by id.
//
// @Summary      Get news
// @Tags         news
// @Produce      json
// @Param        id  path  string  true  "News id"
// @Success      200  {object}  domain.News
// @Failure      404  {object}  map[string]string
// @Router       /v1/news/{id} [get]
func (h *NewsHandler) Get(c echo.Context) error {
	news, err := h.newsService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, news)
}

// List returns one page of news entries, newest first.
//
// @Summary      List news
// @Tags         news
// @Produce      json
// @Param        page   query  int  false  "1-based page number (default 1)"
// @Param        limit  query  int  false  "page size (default 25)"
// @Success      200  {object}  ports.NewsPage
// @Failure      400  {object}  map[string]string
// @Router       /v1/news [get]
func (h *NewsHandler) List(c echo.Context) error {
	page, limit, err := parsePageQuery(c)
	if err != nil {
		return err
	}

	result, err := h.newsService.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
