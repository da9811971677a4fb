package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "fitcloset/internal/errors"
	"fitcloset/internal/model"
	"fitcloset/internal/repository"
	"fitcloset/internal/service"
)

// GarmentHandler handles garment catalog endpoints.
type GarmentHandler struct {
	garmentService service.GarmentService
}

// NewGarmentHandler creates a new garment handler.
func NewGarmentHandler(garmentService service.GarmentService) *GarmentHandler {
	return &GarmentHandler{garmentService: garmentService}
}

// CreateGarmentRequest represents a new catalog entry.
type CreateGarmentRequest struct {
	Name        string          `json:"name" validate:"required"`
	Brand       string          `json:"brand" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Rating      float64         `json:"rating"`
	ImageURL    string          `json:"imageUrl"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Style       string          `json:"style"`
	Available   *bool           `json:"available"`
}

// UpdateGarmentRequest represents a partial garment update.
type UpdateGarmentRequest struct {
	Name        *string          `json:"name"`
	Brand       *string          `json:"brand"`
	Price       *decimal.Decimal `json:"price"`
	Rating      *float64         `json:"rating"`
	ImageURL    *string          `json:"imageUrl"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Style       *string          `json:"style"`
	Available   *bool            `json:"available"`
}

func (r UpdateGarmentRequest) patch() model.GarmentPatch {
	return model.GarmentPatch{
		Name:        r.Name,
		Brand:       r.Brand,
		Price:       r.Price,
		Rating:      r.Rating,
		ImageURL:    r.ImageURL,
		Description: r.Description,
		Category:    r.Category,
		Style:       r.Style,
		Available:   r.Available,
	}
}

// List godoc
// @Summary List available garments with filters
// @Tags garments
// @Produce json
// @Param limit query int false "Max results (default 50, max 100)"
// @Param offset query int false "Pagination offset"
// @Param brand query string false "Filter by brand"
// @Param category query string false "Filter by category"
// @Param style query string false "Filter by style"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param search query string false "Substring search over name, brand, description"
// @Success 200 {object} map[string]interface{}
// @Router /garments/ [get]
func (h *GarmentHandler) List(c echo.Context) error {
	limit := queryInt(c, "limit", 0)
	offset := queryInt(c, "offset", 0)

	filters := repository.GarmentFilters{
		Brand:    c.QueryParam("brand"),
		Category: c.QueryParam("category"),
		Style:    c.QueryParam("style"),
		Search:   c.QueryParam("search"),
	}
	if raw := c.QueryParam("minPrice"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			filters.MinPrice = &v
		}
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			filters.MaxPrice = &v
		}
	}

	garments, err := h.garmentService.List(c.Request().Context(), limit, offset, filters)
	if err != nil {
		return apperrors.Internal()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"garments": garments,
		"count":    len(garments),
	})
}

// Get godoc
// @Summary Get a garment by id
// @Tags garments
// @Produce json
// @Param id path int true "Garment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /garments/{id} [get]
func (h *GarmentHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return apperrors.BadRequest("invalid garment id")
	}

	garment, err := h.garmentService.Get(c.Request().Context(), uint(id))
	if err != nil {
		return mapGarmentError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"garment": garment})
}

// Search godoc
// @Summary Search garments by substring
// @Tags garments
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Max results (default 20)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /garments/search [get]
func (h *GarmentHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	limit := queryInt(c, "limit", 0)

	garments, err := h.garmentService.Search(c.Request().Context(), query, limit)
	if err != nil {
		return mapGarmentError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"garments": garments,
		"count":    len(garments),
		"query":    query,
	})
}

// ByBrand godoc
// @Summary List garments of a brand
// @Tags garments
// @Produce json
// @Param brand path string true "Brand"
// @Param limit query int false "Max results (default 20)"
// @Success 200 {object} map[string]interface{}
// @Router /garments/brands/{brand} [get]
func (h *GarmentHandler) ByBrand(c echo.Context) error {
	brand := c.Param("brand")
	limit := queryInt(c, "limit", 0)

	garments, err := h.garmentService.ByBrand(c.Request().Context(), brand, limit)
	if err != nil {
		return apperrors.Internal()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"garments": garments,
		"count":    len(garments),
		"brand":    brand,
	})
}

// ByCategory godoc
// @Summary List garments of a category
// @Tags garments
// @Produce json
// @Param category path string true "Category"
// @Param limit query int false "Max results (default 20)"
// @Success 200 {object} map[string]interface{}
// @Router /garments/categories/{category} [get]
func (h *GarmentHandler) ByCategory(c echo.Context) error {
	category := c.Param("category")
	limit := queryInt(c, "limit", 0)

	garments, err := h.garmentService.ByCategory(c.Request().Context(), category, limit)
	if err != nil {
		return apperrors.Internal()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"garments": garments,
		"count":    len(garments),
		"category": category,
	})
}

// TopRated godoc
// @Summary List top rated garments
// @Tags garments
// @Produce json
// @Param limit query int false "Max results (default 10)"
// @Success 200 {object} map[string]interface{}
// @Router /garments/top-rated [get]
func (h *GarmentHandler) TopRated(c echo.Context) error {
	limit := queryInt(c, "limit", 0)

	garments, err := h.garmentService.TopRated(c.Request().Context(), limit)
	if err != nil {
		return apperrors.Internal()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"garments": garments,
		"count":    len(garments),
	})
}

// Create godoc
// @Summary Create a garment
// @Tags garments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGarmentRequest true "Garment data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /garments/ [post]
func (h *GarmentHandler) Create(c echo.Context) error {
	var req CreateGarmentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.BadRequest(err.Error())
	}

	garment, err := h.garmentService.Create(c.Request().Context(), service.GarmentInput{
		Name:        req.Name,
		Brand:       req.Brand,
		Price:       req.Price,
		Rating:      req.Rating,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Category:    req.Category,
		Style:       req.Style,
		Available:   req.Available,
	})
	if err != nil {
		return mapGarmentError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Garment created successfully",
		"garment": garment,
	})
}

// Update godoc
// @Summary Update a garment
// @Tags garments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Garment ID"
// @Param request body UpdateGarmentRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /garments/{id} [put]
func (h *GarmentHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return apperrors.BadRequest("invalid garment id")
	}

	var req UpdateGarmentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}

	garment, err := h.garmentService.Update(c.Request().Context(), uint(id), req.patch())
	if err != nil {
		return mapGarmentError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Garment updated successfully",
		"garment": garment,
	})
}

// Delete godoc
// @Summary Soft delete a garment
// @Tags garments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Garment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /garments/{id} [delete]
func (h *GarmentHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return apperrors.BadRequest("invalid garment id")
	}

	if err := h.garmentService.SoftDelete(c.Request().Context(), uint(id)); err != nil {
		return mapGarmentError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Garment deleted successfully"})
}

func mapGarmentError(err error) error {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		return apperrors.BadRequest(ve.Message)
	case errors.Is(err, service.ErrGarmentNotFound):
		return apperrors.NotFound(err.Error())
	case errors.Is(err, service.ErrGarmentUnavailable):
		return apperrors.NotFound(err.Error())
	default:
		return apperrors.Internal()
	}
}
