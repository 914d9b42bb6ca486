package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/activityhub/membership-api/internal/api/metrics"
	"github.com/activityhub/membership-api/internal/core/domain"
	"github.com/activityhub/membership-api/internal/core/ports"
)

// Listing defaults applied at the HTTP boundary when a parameter is absent.
const (
	defaultPage  = 1
	defaultLimit = 25
)

// MemberHandler serves the admin-side member management endpoints.
type MemberHandler struct {
	memberService ports.MemberService
}

func NewMemberHandler(memberService ports.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

type setDisabledRequest struct {
	IsDisabled bool `json:"is_disabled"`
}

// List returns one page of the member listing.
//
// @Summary      List members
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        timeSort  query     string  false  "asc for oldest first, anything else newest first"
// @Param        search    query     string  false  "substring matched against id, username and email"
// @Param        disabled  query     bool    false  "list disabled members instead of active ones"
// @Param        page      query     int     false  "1-based page number (default 1)"
// @Param        limit     query     int     false  "page size (default 25)"
// @Success      200       {object}  ports.MemberPage
// @Failure      400       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Router       /v1/admin/members [get]
func (h *MemberHandler) List(c echo.Context) error {
	page, limit, err := parsePageQuery(c)
	if err != nil {
		return err
	}

	disabled, _ := strconv.ParseBool(c.QueryParam("disabled"))

	query := ports.MemberListQuery{
		Search:   c.QueryParam("search"),
		Disabled: disabled,
		SortAsc:  c.QueryParam("timeSort") == "asc",
		Page:     page,
		Limit:    limit,
	}

	start := time.Now()
	result, err := h.memberService.List(c.Request().Context(), query)
	if err != nil {
		return err
	}
	metrics.MemberListDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, result)
}

// SetDisabled toggles the soft-disable flag of a member.
//
// @Summary      Disable or enable a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Member id"
// @Param        body  body      setDisabledRequest  true  "Disabled flag"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/members/{id}/status [patch]
func (h *MemberHandler) SetDisabled(c echo.Context) error {
	var req setDisabledRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.memberService.SetDisabled(c.Request().Context(), c.Param("id"), req.IsDisabled); err != nil {
		return err
	}

	msg := "member enabled"
	if req.IsDisabled {
		msg = "member disabled"
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// Delete removes a member record permanently.
//
// @Summary      Delete a member
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Member id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/members/{id} [delete]
func (h *MemberHandler) Delete(c echo.Context) error {
	if err := h.memberService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "member deleted"})
}

// parsePageQuery reads page and limit query parameters. Absent parameters
// get the defaults; present but non-positive or non-numeric values are
// rejected rather than silently corrected.
func parsePageQuery(c echo.Context) (page, limit int, err error) {
	page, err = positiveIntParam(c.QueryParam("page"), defaultPage, "page")
	if err != nil {
		return 0, 0, err
	}
	limit, err = positiveIntParam(c.QueryParam("limit"), defaultLimit, "limit")
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func positiveIntParam(raw string, def int, name string) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, domain.NewValidationError(name + " must be a positive integer")
	}
	return n, nil
}
