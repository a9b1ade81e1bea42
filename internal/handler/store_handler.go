package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/artifaks/herbal-wisdom/internal/errors"
	"github.com/artifaks/herbal-wisdom/internal/model"
	"github.com/artifaks/herbal-wisdom/internal/service"
)

// StoreHandler handles store locator endpoints.
type StoreHandler struct {
	storeService service.StoreService
}

// NewStoreHandler creates a new store handler.
func NewStoreHandler(storeService service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// List godoc
// @Summary List stores with filters, optional geofilter and ordering
// @Tags stores
// @Produce json
// @Param q query string false "Search query over name and description"
// @Param city query string false "City filter (exact)"
// @Param state query string false "State filter (exact)"
// @Param specialty query string false "Specialty filter (exact set membership)"
// @Param sort_by query string false "Sort key: rating, distance or name"
// @Param lat query number false "Latitude of the reference coordinate"
// @Param lon query number false "Longitude of the reference coordinate"
// @Param radius_km query number false "Geofilter radius in kilometers"
// @Success 200 {array} service.RankedStore
// @Failure 500 {object} errors.ErrorResponse
// @Router /stores [get]
func (h *StoreHandler) List(c echo.Context) error {
	filter := model.StoreFilter{
		SearchQuery: c.QueryParam("q"),
		City:        c.QueryParam("city"),
		State:       c.QueryParam("state"),
		Specialty:   c.QueryParam("specialty"),
		SortBy:      c.QueryParam("sort_by"),
	}

	// The coordinate applies only when both lat and lon parse; malformed
	// values mean no geofilter rather than an error.
	latRaw, lonRaw := c.QueryParam("lat"), c.QueryParam("lon")
	if latRaw != "" && lonRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lon, lonErr := strconv.ParseFloat(lonRaw, 64)
		if latErr == nil && lonErr == nil {
			filter.Location = &model.Coordinate{Latitude: lat, Longitude: lon}
		}
	}
	if raw := c.QueryParam("radius_km"); raw != "" {
		if radius, err := strconv.ParseFloat(raw, 64); err == nil && radius > 0 {
			filter.RadiusKm = radius
		}
	}

	stores, err := h.storeService.List(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stores)
}

// Get godoc
// @Summary Get a store by ID
// @Tags stores
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} model.Store
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stores/{id} [get]
func (h *StoreHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid store ID",
			Code:  "INVALID_ID",
		})
	}

	store, err := h.storeService.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, store)
}

// Locations godoc
// @Summary List distinct store (city, state) pairs
// @Tags stores
// @Produce json
// @Success 200 {array} model.StoreLocation
// @Failure 500 {object} errors.ErrorResponse
// @Router /stores/locations [get]
func (h *StoreHandler) Locations(c echo.Context) error {
	locations, err := h.storeService.Locations(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, locations)
}

// Specialties godoc
// @Summary List distinct store specialties
// @Tags stores
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} errors.ErrorResponse
// @Router /stores/specialties [get]
func (h *StoreHandler) Specialties(c echo.Context) error {
	specialties, err := h.storeService.Specialties(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, specialties)
}
