package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthHandler reports liveness and store connectivity.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// @Summary Liveness and database connectivity check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status":   "unhealthy",
			"message":  "Database connection failed",
			"database": "disconnected",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":   "healthy",
		"message":  "Application is running and database is connected",
		"database": "connected",
	})
}

// Index godoc
// @Summary API endpoint directory
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Avatar Setup Backend API",
		"version": "1.0.0",
		"endpoints": echo.Map{
			"health": "/health",
			"root":   "/",
			"auth": echo.Map{
				"register":        "POST /api/auth/register",
				"login":           "POST /api/auth/login",
				"logout":          "POST /api/auth/logout",
				"refresh":         "POST /api/auth/refresh",
				"me":              "GET /api/auth/me",
				"change_password": "POST /api/auth/change-password",
			},
			"avatar": echo.Map{
				"setup":               "POST /api/avatar/setup",
				"get_profile":         "GET /api/avatar/profile",
				"update_profile":      "PUT /api/avatar/profile",
				"delete_profile":      "DELETE /api/avatar/profile",
				"update_measurements": "PUT /api/avatar/measurements",
				"add_garment":         "POST /api/avatar/garments",
				"remove_garment":      "DELETE /api/avatar/garments/{id}",
				"get_wardrobe":        "GET /api/avatar/garments",
				"get_public_avatars":  "GET /api/avatar/public",
				"get_avatar_by_id":    "GET /api/avatar/{id}",
			},
			"garments": echo.Map{
				"list":        "GET /api/garments/",
				"get":         "GET /api/garments/{id}",
				"search":      "GET /api/garments/search?q={query}",
				"by_brand":    "GET /api/garments/brands/{brand}",
				"by_category": "GET /api/garments/categories/{category}",
				"top_rated":   "GET /api/garments/top-rated",
				"create":      "POST /api/garments/",
				"update":      "PUT /api/garments/{id}",
				"delete":      "DELETE /api/garments/{id}",
			},
		},
	})
}
