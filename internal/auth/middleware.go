package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "fitcloset/internal/errors"
)

// ClaimsContextKey is where verified claims are stored on the request context.
const ClaimsContextKey = "claims"

// Middleware returns an echo middleware that requires a valid access token.
// Verification failures are rejected with 401 before any store operation runs,
// with distinct messages for missing, expired and malformed tokens.
func Middleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: ClaimsContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwtService.Verify(auth, KindAccess)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			switch {
			case errors.Is(err, ErrTokenExpired):
				return apperrors.NewHTTP(http.StatusUnauthorized, "Token has expired",
					"The token has expired. Please login again.")
			case errors.Is(err, ErrWrongTokenKind):
				return apperrors.NewHTTP(http.StatusUnauthorized, "Invalid token",
					"An access token is required for this route.")
			case errors.Is(err, ErrTokenMalformed):
				return apperrors.NewHTTP(http.StatusUnauthorized, "Invalid token",
					"Signature verification failed or token is malformed.")
			default:
				return apperrors.NewHTTP(http.StatusUnauthorized, "Authorization required",
					"Request does not contain a valid access token.")
			}
		},
	})
}

// CurrentClaims extracts the verified claims set by Middleware.
func CurrentClaims(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*Claims)
	return claims, ok
}

// CurrentUserID returns the authenticated caller's user ID.
func CurrentUserID(c echo.Context) (uint, bool) {
	claims, ok := CurrentClaims(c)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
