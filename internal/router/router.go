package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"fitcloset/internal/auth"
	"fitcloset/internal/config"
	apperrors "fitcloset/internal/errors"
	"fitcloset/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	avatarHandler *handler.AvatarHandler,
	garmentHandler *handler.GarmentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/health", healthHandler.Health)
	e.GET("/", healthHandler.Index)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		MaxAge:       3600,
	}))

	requireAccess := auth.Middleware(jwtService)

	// Auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout, requireAccess)
	api.GET("/auth/me", authHandler.Me, requireAccess)
	api.POST("/auth/change-password", authHandler.ChangePassword, requireAccess)

	// Avatar routes
	avatar := api.Group("/avatar")
	avatar.GET("/public", avatarHandler.PublicAvatars)
	avatar.GET("/:id", avatarHandler.GetByID)
	avatar.POST("/setup", avatarHandler.Setup, requireAccess)
	avatar.GET("/profile", avatarHandler.GetProfile, requireAccess)
	avatar.PUT("/profile", avatarHandler.UpdateProfile, requireAccess)
	avatar.DELETE("/profile", avatarHandler.DeleteProfile, requireAccess)
	avatar.PUT("/measurements", avatarHandler.UpdateMeasurements, requireAccess)
	avatar.POST("/garments", avatarHandler.AddGarment, requireAccess)
	avatar.GET("/garments", avatarHandler.GetWardrobe, requireAccess)
	avatar.DELETE("/garments/:id", avatarHandler.RemoveGarment, requireAccess)

	// Garment catalog routes
	garments := api.Group("/garments")
	garments.GET("", garmentHandler.List)
	garments.GET("/", garmentHandler.List)
	garments.GET("/search", garmentHandler.Search)
	garments.GET("/top-rated", garmentHandler.TopRated)
	garments.GET("/brands/:brand", garmentHandler.ByBrand)
	garments.GET("/categories/:category", garmentHandler.ByCategory)
	garments.GET("/:id", garmentHandler.Get)
	garments.POST("", garmentHandler.Create, requireAccess)
	garments.POST("/", garmentHandler.Create, requireAccess)
	garments.PUT("/:id", garmentHandler.Update, requireAccess)
	garments.DELETE("/:id", garmentHandler.Delete, requireAccess)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
