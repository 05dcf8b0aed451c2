package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "inventory/internal/delivery/context"
	"inventory/internal/delivery/http/response"
	"inventory/internal/domain/service"
	"inventory/internal/infra/metrics"
	mockSvc "inventory/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serveProtected runs a request through a server whose only route is guarded by the middleware.
func serveProtected(t *testing.T, tokenSvc service.TokenService, m *metrics.Metrics, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(discardLogger()).HandleHTTPError

	handlerRan := false
	auth := NewAuthMiddleware(tokenSvc, m, discardLogger())
	e.GET("/protected", func(c echo.Context) error {
		handlerRan = true
		userID, ok := deliverycontext.GetUserID(c)
		require.True(t, ok)

		return c.JSON(http.StatusOK, map[string]int64{"user_id": userID})
	}, auth.Authenticate)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec, handlerRan
}

func TestAuthenticate_ValidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Verify("good.token.value").Return(int64(7), nil)

	rec, ran := serveProtected(t, tokenSvc, metrics.New(), "Bearer good.token.value")

	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":7}`, rec.Body.String())
}

func TestAuthenticate_SchemeIsCaseInsensitive(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Verify("tok").Return(int64(1), nil)

	rec, ran := serveProtected(t, tokenSvc, metrics.New(), "bearer tok")

	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifyErr  error
		wantReason string
	}{
		{name: "no header", header: "", wantReason: ReasonMissing},
		{name: "scheme only", header: "Bearer", wantReason: ReasonMissing},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantReason: ReasonMalformed},
		{name: "token without scheme", header: "abc.def.ghi", wantReason: ReasonMalformed},
		{name: "expired", header: "Bearer expired", verifyErr: service.ErrTokenExpired, wantReason: ReasonExpired},
		{name: "bad signature", header: "Bearer forged", verifyErr: service.ErrTokenInvalidSignature, wantReason: ReasonInvalidSignature},
		{name: "garbage", header: "Bearer garbage", verifyErr: service.ErrTokenMalformed, wantReason: ReasonMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := mockSvc.NewMockTokenService(t)
			if tt.verifyErr != nil {
				tokenSvc.EXPECT().Verify(tt.header[len("Bearer "):]).Return(int64(0), tt.verifyErr)
			}
			m := metrics.New()

			rec, ran := serveProtected(t, tokenSvc, m, tt.header)

			assert.False(t, ran)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Unauthorized", body.Message)
			assert.Equal(t, "UNAUTHORIZED", body.Code)

			assert.Equal(t, float64(1), testutil.ToFloat64(m.AuthFailures.WithLabelValues(tt.wantReason)))
		})
	}
}

func TestAuthenticate_RejectionBodiesAreIdentical(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Verify("expired").Return(int64(0), service.ErrTokenExpired)

	missing, _ := serveProtected(t, tokenSvc, metrics.New(), "")
	expired, _ := serveProtected(t, tokenSvc, metrics.New(), "Bearer expired")

	assert.Equal(t, missing.Body.String(), expired.Body.String())
}
