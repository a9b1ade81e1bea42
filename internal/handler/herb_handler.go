package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/artifaks/herbal-wisdom/internal/errors"
	"github.com/artifaks/herbal-wisdom/internal/model"
	"github.com/artifaks/herbal-wisdom/internal/service"
)

// HerbHandler handles herb directory endpoints.
type HerbHandler struct {
	herbService service.HerbService
	resolver    service.EntitlementResolver
}

// NewHerbHandler creates a new herb handler.
func NewHerbHandler(herbService service.HerbService, resolver service.EntitlementResolver) *HerbHandler {
	return &HerbHandler{herbService: herbService, resolver: resolver}
}

// List godoc
// @Summary List herbs with filters and counted pagination
// @Tags herbs
// @Produce json
// @Param q query string false "Search query over name, scientific name and description"
// @Param category query string false "Category filter"
// @Param illness query string false "Treated illness filter"
// @Param premium query bool false "Premium flag filter"
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} service.HerbPage
// @Failure 500 {object} errors.ErrorResponse
// @Router /herbs [get]
func (h *HerbHandler) List(c echo.Context) error {
	filter := model.HerbFilter{
		Category:    c.QueryParam("category"),
		SearchQuery: c.QueryParam("q"),
		Illness:     c.QueryParam("illness"),
	}
	if premium := c.QueryParam("premium"); premium != "" {
		if parsed, err := strconv.ParseBool(premium); err == nil {
			filter.IsPremium = &parsed
		}
	}

	page := model.Pagination{Page: 1, PageSize: 20}
	if raw := c.QueryParam("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page.Page = parsed
		}
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			page.PageSize = parsed
		}
	}

	result, err := h.herbService.List(c.Request().Context(), filter, page)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary Get a herb by ID
// @Tags herbs
// @Produce json
// @Param id path int true "Herb ID"
// @Success 200 {object} model.Herb
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /herbs/{id} [get]
func (h *HerbHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid herb ID",
			Code:  "INVALID_ID",
		})
	}

	herb, err := h.herbService.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// Premium entries are subscriber-only content.
	decision := h.resolver.Resolve(c.Request().Context(), PrincipalID(c), c.Request().URL.Path, service.RequirementsForHerb(herb)...)
	if !decision.Allow {
		return c.Redirect(http.StatusSeeOther, decision.Target)
	}

	return c.JSON(http.StatusOK, herb)
}

// Categories godoc
// @Summary List distinct herb categories
// @Tags herbs
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} errors.ErrorResponse
// @Router /herbs/categories [get]
func (h *HerbHandler) Categories(c echo.Context) error {
	categories, err := h.herbService.Categories(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, categories)
}

// ListPremium godoc
// @Summary List premium herbs (subscribers only)
// @Tags herbs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} service.HerbPage
// @Failure 500 {object} errors.ErrorResponse
// @Router /herbs/premium [get]
func (h *HerbHandler) ListPremium(c echo.Context) error {
	premium := true
	filter := model.HerbFilter{
		SearchQuery: c.QueryParam("q"),
		Category:    c.QueryParam("category"),
		IsPremium:   &premium,
	}

	page := model.Pagination{Page: 1, PageSize: 20}
	if raw := c.QueryParam("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page.Page = parsed
		}
	}

	result, err := h.herbService.List(c.Request().Context(), filter, page)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}
