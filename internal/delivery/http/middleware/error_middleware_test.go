package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "inventory/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHandleHTTPError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "app error",
			err:      domainerrors.ErrInvalidCredentials,
			wantCode: http.StatusUnauthorized,
			wantBody: `{"message":"Invalid username or password","code":"INVALID_CREDENTIALS"}`,
		},
		{
			name:     "wrapped app error",
			err:      errors.Wrap(domainerrors.ErrSKUAlreadyExists, "failed to create product"),
			wantCode: http.StatusConflict,
			wantBody: `{"message":"A product with this SKU already exists","code":"SKU_ALREADY_EXISTS"}`,
		},
		{
			name:     "database error hides driver message",
			err:      domainerrors.NewDatabaseExecuteError(errors.New("pq: connection refused"), "failed to list products"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"message":"Internal server error","code":"DATABASE_EXECUTE_FAILED"}`,
		},
		{
			name:     "echo http error",
			err:      echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request Entity Too Large"),
			wantCode: http.StatusRequestEntityTooLarge,
			wantBody: `{"message":"Request Entity Too Large","code":"HTTP_ERROR"}`,
		},
		{
			name:     "echo not found",
			err:      echo.ErrNotFound,
			wantCode: http.StatusNotFound,
			wantBody: `{"message":"Not Found","code":"HTTP_ERROR"}`,
		},
		{
			name:     "unknown error",
			err:      errors.New("nil pointer somewhere"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"message":"Internal server error","code":"INTERNAL_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewErrorMiddleware(discardLogger()).HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHandleHTTPError_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewErrorMiddleware(discardLogger()).HandleHTTPError(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
