package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error kinds used in the standard response body.
const (
	KindValidation   = "Validation Error"
	KindConflict     = "Conflict"
	KindNotFound     = "Not Found"
	KindUnauthorized = "Unauthorized"
	KindForbidden    = "Forbidden"
	KindInternal     = "Internal Server Error"
)

// ErrorResponse is the standard error body: {"error": <kind>, "message"?: <detail>}.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ValidationError reports malformed or missing input. It is detected before
// any store mutation and maps to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation creates a ValidationError with the given detail message.
func Validation(message string) error {
	return &ValidationError{Message: message}
}

// NewHTTP builds an echo HTTP error carrying the standard body.
func NewHTTP(status int, kind, message string) *echo.HTTPError {
	return echo.NewHTTPError(status, ErrorResponse{Error: kind, Message: message})
}

// BadRequest is a 400 with a validation kind.
func BadRequest(message string) *echo.HTTPError {
	return NewHTTP(http.StatusBadRequest, KindValidation, message)
}

// Conflict is a 409.
func Conflict(message string) *echo.HTTPError {
	return NewHTTP(http.StatusConflict, KindConflict, message)
}

// NotFound is a 404.
func NotFound(message string) *echo.HTTPError {
	return NewHTTP(http.StatusNotFound, KindNotFound, message)
}

// Unauthorized is a 401.
func Unauthorized(message string) *echo.HTTPError {
	return NewHTTP(http.StatusUnauthorized, KindUnauthorized, message)
}

// Forbidden is a 403.
func Forbidden(message string) *echo.HTTPError {
	return NewHTTP(http.StatusForbidden, KindForbidden, message)
}

// Internal is a 500 with a generic message. Internal detail is never leaked.
func Internal() *echo.HTTPError {
	return NewHTTP(http.StatusInternalServerError, KindInternal, "An unexpected error occurred")
}

// HTTPErrorHandler normalizes every error into the standard body. Handlers
// that already produced an ErrorResponse pass through; plain echo errors
// (unknown route, method not allowed, panics recovered to 500) are shaped
// into the same format.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := ErrorResponse{Error: KindInternal, Message: "An unexpected error occurred"}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch m := he.Message.(type) {
		case ErrorResponse:
			body = m
		case string:
			body = ErrorResponse{Error: kindForStatus(status), Message: m}
		default:
			body = ErrorResponse{Error: kindForStatus(status)}
		}
		if status == http.StatusInternalServerError {
			// production posture: never expose internal detail
			body = ErrorResponse{Error: KindInternal, Message: "An unexpected error occurred"}
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	default:
		return KindInternal
	}
}
