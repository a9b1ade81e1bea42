package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/artifaks/herbal-wisdom/internal/errors"
	"github.com/artifaks/herbal-wisdom/internal/model"
	"github.com/artifaks/herbal-wisdom/internal/service"
)

// AdminHandler handles admin-only herb management endpoints. Route-level
// guards ensure only admin principals reach these handlers.
type AdminHandler struct {
	herbService    service.HerbService
	storageService service.StorageService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(herbService service.HerbService, storageService service.StorageService) *AdminHandler {
	return &AdminHandler{herbService: herbService, storageService: storageService}
}

// HerbRequest represents a herb create/update request.
type HerbRequest struct {
	Name               string   `json:"name" validate:"required"`
	ScientificName     string   `json:"scientific_name"`
	Description        string   `json:"description"`
	Benefits           []string `json:"benefits"`
	Category           string   `json:"category"`
	PreparationMethods []string `json:"preparation_methods"`
	TreatsIllnesses    []string `json:"treats_illnesses"`
	ImageURL           string   `json:"image_url"`
	IsPremium          bool     `json:"is_premium"`
}

func (r *HerbRequest) toModel() *model.Herb {
	benefits := r.Benefits
	if benefits == nil {
		benefits = []string{}
	}
	methods := r.PreparationMethods
	if methods == nil {
		methods = []string{}
	}
	illnesses := r.TreatsIllnesses
	if illnesses == nil {
		illnesses = []string{}
	}
	return &model.Herb{
		Name:               r.Name,
		ScientificName:     r.ScientificName,
		Description:        r.Description,
		Benefits:           benefits,
		Category:           r.Category,
		PreparationMethods: methods,
		TreatsIllnesses:    illnesses,
		ImageURL:           r.ImageURL,
		IsPremium:          r.IsPremium,
	}
}

// CreateHerb godoc
// @Summary Create a herb
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body HerbRequest true "Herb data"
// @Success 201 {object} model.Herb
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/herbs [post]
func (h *AdminHandler) CreateHerb(c echo.Context) error {
	var req HerbRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	herb := req.toModel()
	if err := h.herbService.Create(c.Request().Context(), herb); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, herb)
}

// UpdateHerb godoc
// @Summary Update a herb
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Herb ID"
// @Param request body HerbRequest true "Herb data"
// @Success 200 {object} model.Herb
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/herbs/{id} [put]
func (h *AdminHandler) UpdateHerb(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid herb ID",
			Code:  "INVALID_ID",
		})
	}

	var req HerbRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	herb := req.toModel()
	herb.ID = uint(id)
	if err := h.herbService.Update(c.Request().Context(), herb); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, herb)
}

// DeleteHerb godoc
// @Summary Delete a herb
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Herb ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/herbs/{id} [delete]
func (h *AdminHandler) DeleteHerb(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid herb ID",
			Code:  "INVALID_ID",
		})
	}

	if err := h.herbService.Delete(c.Request().Context(), uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "herb deleted"})
}

// UploadImage godoc
// @Summary Upload a herb image
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file (JPEG, PNG or WebP, max 2MB)"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Router /admin/herbs/image [post]
func (h *AdminHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "missing image file",
			Code:  "MISSING_FILE",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "unreadable image file",
			Code:  "INVALID_FILE",
		})
	}
	defer file.Close()

	url, err := h.storageService.UploadImage(
		c.Request().Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]string{"url": url})
}

// DeleteImage godoc
// @Summary Delete an uploaded image
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param path query string true "Blob path"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/images [delete]
func (h *AdminHandler) DeleteImage(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "missing blob path",
			Code:  "MISSING_PATH",
		})
	}

	if err := h.storageService.DeleteImage(c.Request().Context(), path); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "image deleted"})
}
