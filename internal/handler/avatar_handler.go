package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"fitcloset/internal/auth"
	apperrors "fitcloset/internal/errors"
	"fitcloset/internal/model"
	"fitcloset/internal/service"
)

// AvatarHandler handles avatar profile and wardrobe endpoints.
type AvatarHandler struct {
	avatarService service.AvatarService
}

// NewAvatarHandler creates a new avatar handler.
func NewAvatarHandler(avatarService service.AvatarService) *AvatarHandler {
	return &AvatarHandler{avatarService: avatarService}
}

// MeasurementsRequest carries the optional body measurement values.
type MeasurementsRequest struct {
	Chest         *float64 `json:"chest"`
	Waist         *float64 `json:"waist"`
	Hips          *float64 `json:"hips"`
	ShoulderWidth *float64 `json:"shoulderWidth"`
	Inseam        *float64 `json:"inseam"`
	ArmLength     *float64 `json:"armLength"`
	NeckSize      *float64 `json:"neckSize"`
}

func (r MeasurementsRequest) input() service.BodyMeasurementsInput {
	return service.BodyMeasurementsInput{
		Chest:         r.Chest,
		Waist:         r.Waist,
		Hips:          r.Hips,
		ShoulderWidth: r.ShoulderWidth,
		Inseam:        r.Inseam,
		ArmLength:     r.ArmLength,
		NeckSize:      r.NeckSize,
	}
}

// SetupAvatarRequest represents the avatar setup payload.
type SetupAvatarRequest struct {
	FullName                 string               `json:"fullName"`
	Bio                      string               `json:"bio"`
	Age                      int                  `json:"age"`
	Height                   float64              `json:"height"`
	HeightUnit               string               `json:"heightUnit"`
	Weight                   float64              `json:"weight"`
	WeightUnit               string               `json:"weightUnit"`
	AvatarType               string               `json:"avatarType"`
	GenericAvatarStyle       string               `json:"genericAvatarStyle"`
	BiometricVerified        bool                 `json:"biometricVerified"`
	MeasurementMode          string               `json:"measurementMode"`
	AutoEstimated            bool                 `json:"autoEstimated"`
	ShareWithWorld           bool                 `json:"shareWithWorld"`
	CreateAssistant          bool                 `json:"createAssistant"`
	CreateGreetingCards      bool                 `json:"createGreetingCards"`
	PublicProfile            bool                 `json:"publicProfile"`
	AllowConnections         *bool                `json:"allowConnections"`
	SelectedGreetingTemplate string               `json:"selectedGreetingTemplate"`
	BodyMeasurements         *MeasurementsRequest `json:"bodyMeasurements"`
	SelectedGarments         []uint               `json:"selectedGarments"`
}

// UpdateAvatarRequest represents a partial avatar profile update.
type UpdateAvatarRequest struct {
	FullName                 *string  `json:"fullName"`
	Bio                      *string  `json:"bio"`
	Age                      *int     `json:"age"`
	Height                   *float64 `json:"height"`
	HeightUnit               *string  `json:"heightUnit"`
	Weight                   *float64 `json:"weight"`
	WeightUnit               *string  `json:"weightUnit"`
	AvatarType               *string  `json:"avatarType"`
	GenericAvatarStyle       *string  `json:"genericAvatarStyle"`
	BiometricVerified        *bool    `json:"biometricVerified"`
	MeasurementMode          *string  `json:"measurementMode"`
	AutoEstimated            *bool    `json:"autoEstimated"`
	ShareWithWorld           *bool    `json:"shareWithWorld"`
	CreateAssistant          *bool    `json:"createAssistant"`
	CreateGreetingCards      *bool    `json:"createGreetingCards"`
	PublicProfile            *bool    `json:"publicProfile"`
	AllowConnections         *bool    `json:"allowConnections"`
	SelectedGreetingTemplate *string  `json:"selectedGreetingTemplate"`
}

func (r UpdateAvatarRequest) patch() model.AvatarPatch {
	return model.AvatarPatch{
		FullName:                 r.FullName,
		Bio:                      r.Bio,
		Age:                      r.Age,
		Height:                   r.Height,
		HeightUnit:               r.HeightUnit,
		Weight:                   r.Weight,
		WeightUnit:               r.WeightUnit,
		AvatarType:               r.AvatarType,
		GenericAvatarStyle:       r.GenericAvatarStyle,
		BiometricVerified:        r.BiometricVerified,
		MeasurementMode:          r.MeasurementMode,
		AutoEstimated:            r.AutoEstimated,
		ShareWithWorld:           r.ShareWithWorld,
		CreateAssistant:          r.CreateAssistant,
		CreateGreetingCards:      r.CreateGreetingCards,
		PublicProfile:            r.PublicProfile,
		AllowConnections:         r.AllowConnections,
		SelectedGreetingTemplate: r.SelectedGreetingTemplate,
	}
}

// AddGarmentRequest adds a garment into the wardrobe.
type AddGarmentRequest struct {
	GarmentID uint `json:"garmentId" validate:"required"`
}

// avatarPayload is an avatar with its dependent records embedded the way the
// API exposes them.
type avatarPayload struct {
	*model.Avatar
	BodyMeasurements *model.BodyMeasurement `json:"bodyMeasurements,omitempty"`
	Garments         []model.AvatarGarment  `json:"garments,omitempty"`
	SelectedGarments []uint                 `json:"selectedGarments,omitempty"`
}

// Setup godoc
// @Summary Set up the caller's avatar with measurements and wardrobe
// @Tags avatar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SetupAvatarRequest true "Avatar setup data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /avatar/setup [post]
func (h *AvatarHandler) Setup(c echo.Context) error {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return apperrors.Unauthorized("invalid token")
	}

	var req SetupAvatarRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}

	in := service.AvatarSetupInput{
		FullName:                 req.FullName,
		Bio:                      req.Bio,
		Age:                      req.Age,
		Height:                   req.Height,
		HeightUnit:               req.HeightUnit,
		Weight:                   req.Weight,
		WeightUnit:               req.WeightUnit,
		AvatarType:               req.AvatarType,
		GenericAvatarStyle:       req.GenericAvatarStyle,
		BiometricVerified:        req.BiometricVerified,
		MeasurementMode:          req.MeasurementMode,
		AutoEstimated:            req.AutoEstimated,
		ShareWithWorld:           req.ShareWithWorld,
		CreateAssistant:          req.CreateAssistant,
		CreateGreetingCards:      req.CreateGreetingCards,
		PublicProfile:            req.PublicProfile,
		AllowConnections:         req.AllowConnections,
		SelectedGreetingTemplate: req.SelectedGreetingTemplate,
		SelectedGarments:         req.SelectedGarments,
	}
	if req.BodyMeasurements != nil {
		input := req.BodyMeasurements.input()
		in.Measurements = &input
	}

	profile, err := h.avatarService.Setup(c.Request().Context(), userID, in)
	if err != nil {
		return mapAvatarError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Avatar setup completed successfully",
		"avatar": avatarPayload{
			Avatar:           profile.Avatar,
			BodyMeasurements: profile.Measurements,
			SelectedGarments: req.SelectedGarments,
		},
	})
}

// GetProfile godoc
// @Summary Get the caller's avatar profile
// @Tags avatar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /avatar/profile [get]
func (h *AvatarHandler) GetProfile(c echo.Context) error {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return apperrors.Unauthorized("invalid token")
	}

	profile, err := h.avatarService.Profile(c.Request().Context(), userID)
	if err != nil {
		return mapAvatarError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"avatar": avatarPayload{
			Avatar:           profile.Avatar,
			BodyMeasurements: profile.Measurements,
			Garments:         profile.Wardrobe,
		},
	})
}

// UpdateProfile godoc
// @Summary Update the caller's avatar profile
// @Tags avatar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateAvatarRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /avatar/profile [put]
func (h *AvatarHandler) UpdateProfile(c echo.Context) error {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return apperrors.Unauthorized("invalid token")
	}

	var req UpdateAvatarRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}

	avatar, err := h.avatarService.UpdateProfile(c.Request().Context(), userID, req.patch())
	if err != nil {
		return mapAvatarError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Avatar updated successfully",
		"avatar":  avatar,
	})
}

// DeleteProfile godoc
// @Summary Delete the caller's avatar
// @Tags avatar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /avatar/profile [delete]
func (h *AvatarHandler) DeleteProfile(c echo.Context) error {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return apperrors.Unauthorized("invalid token")
	}

	if err := h.avatarService.DeleteProfile(c.Request().Context(), userID); err != nil {
		return mapAvatarError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Avatar deleted successfully"})
}

// UpdateMeasurements godoc
// @Summary Upsert the caller's body measurements
// @Tags avatar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MeasurementsRequest true "Measurement values"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /avatar/measurements [put]
func (h *AvatarHandler) UpdateMeasurements(c echo.Context) error {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return apperrors.Unauthorized("invalid token")
	}

	var req MeasurementsRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}

	measurements, err := h.avatarService.UpsertMeasurements(c.Request().Context(), userID, req.input())
	if err != nil {
		return mapAvatarError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Measurements updated successfully",
		"measurements": measurements,
	})
}

// AddGarment godoc
// @Summary Add a garment to the caller's wardrobe
// @Tags avatar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddGarmentRequest true "Garment to add"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /avatar/garments [post]
func (h *AvatarHandler) AddGarment(c echo.Context) error {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return apperrors.Unauthorized("invalid token")
	}

	var req AddGarmentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.BadRequest("garmentId is required")
	}

	if _, err := h.avatarService.AddGarment(c.Request().Context(), userID, req.GarmentID); err != nil {
		return mapAvatarError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Garment added to wardrobe successfully"})
}

// RemoveGarment godoc
// @Summary Remove a garment from the caller's wardrobe
// @Tags avatar
// @Produce json
// @Security BearerAuth
// @Param id path int true "Garment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /avatar/garments/{id} [delete]
func (h *AvatarHandler) RemoveGarment(c echo.Context) error {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return apperrors.Unauthorized("invalid token")
	}

	garmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || garmentID <= 0 {
		return apperrors.BadRequest("invalid garment id")
	}

	if err := h.avatarService.RemoveGarment(c.Request().Context(), userID, uint(garmentID)); err != nil {
		return mapAvatarError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Garment removed from wardrobe successfully"})
}

// GetWardrobe godoc
// @Summary List the caller's wardrobe
// @Tags avatar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /avatar/garments [get]
func (h *AvatarHandler) GetWardrobe(c echo.Context) error {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		return apperrors.Unauthorized("invalid token")
	}

	wardrobe, err := h.avatarService.Wardrobe(c.Request().Context(), userID)
	if err != nil {
		return mapAvatarError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"garments": wardrobe})
}

// PublicAvatars godoc
// @Summary List public avatars
// @Tags avatar
// @Produce json
// @Param limit query int false "Max results (default 20, max 100)"
// @Param offset query int false "Pagination offset"
// @Success 200 {object} map[string]interface{}
// @Router /avatar/public [get]
func (h *AvatarHandler) PublicAvatars(c echo.Context) error {
	limit, offset := service.ClampPublicWindow(queryInt(c, "limit", 0), queryInt(c, "offset", 0))

	avatars, err := h.avatarService.PublicAvatars(c.Request().Context(), limit, offset)
	if err != nil {
		return apperrors.Internal()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"avatars": avatars,
		"count":   len(avatars),
		"limit":   limit,
		"offset":  offset,
	})
}

// GetByID godoc
// @Summary Get a public avatar by id
// @Tags avatar
// @Produce json
// @Param id path int true "Avatar ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /avatar/{id} [get]
func (h *AvatarHandler) GetByID(c echo.Context) error {
	avatarID, err := strconv.Atoi(c.Param("id"))
	if err != nil || avatarID <= 0 {
		return apperrors.BadRequest("invalid avatar id")
	}

	avatar, measurements, err := h.avatarService.PublicAvatarByID(c.Request().Context(), uint(avatarID))
	if err != nil {
		return mapAvatarError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"avatar": avatarPayload{
			Avatar:           avatar,
			BodyMeasurements: measurements,
		},
	})
}

func mapAvatarError(err error) error {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		return apperrors.BadRequest(ve.Message)
	case errors.Is(err, service.ErrAvatarExists):
		return apperrors.Conflict(err.Error())
	case errors.Is(err, service.ErrAvatarNotFound):
		return apperrors.NotFound(err.Error())
	case errors.Is(err, service.ErrAvatarPrivate):
		return apperrors.Forbidden(err.Error())
	default:
		return apperrors.Internal()
	}
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
