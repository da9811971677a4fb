package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedError   string
		expectedMessage string
	}{
		{
			name:            "standard body passes through",
			err:             Conflict("Email already registered"),
			expectedStatus:  http.StatusConflict,
			expectedError:   KindConflict,
			expectedMessage: "Email already registered",
		},
		{
			name:           "plain echo error is shaped",
			err:            echo.NewHTTPError(http.StatusNotFound, "Not Found"),
			expectedStatus: http.StatusNotFound,
			expectedError:  KindNotFound,
		},
		{
			name:            "internal detail never leaks",
			err:             echo.NewHTTPError(http.StatusInternalServerError, "dsn user:pass@tcp(db)/app"),
			expectedStatus:  http.StatusInternalServerError,
			expectedError:   KindInternal,
			expectedMessage: "An unexpected error occurred",
		},
		{
			name:            "unwrapped error becomes generic 500",
			err:             errors.New("sql: connection refused"),
			expectedStatus:  http.StatusInternalServerError,
			expectedError:   KindInternal,
			expectedMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			HTTPErrorHandler(tt.err, c)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body ErrorResponse
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedError, body.Error)
			if tt.expectedMessage != "" {
				assert.Equal(t, tt.expectedMessage, body.Message)
			}
			assert.NotContains(t, rec.Body.String(), "dsn")
			assert.NotContains(t, rec.Body.String(), "sql:")
		})
	}
}

func TestValidation(t *testing.T) {
	err := Validation("Password must be at least 8 characters long")

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Password must be at least 8 characters long", validationErr.Message)
	assert.Equal(t, "Password must be at least 8 characters long", err.Error())
}
