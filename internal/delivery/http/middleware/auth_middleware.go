package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "inventory/internal/delivery/context"
	domainerrors "inventory/internal/domain/errors"
	"inventory/internal/domain/service"
	"inventory/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const bearerScheme = "Bearer"

// Reasons recorded for rejected tokens.
const (
	ReasonMissing          = "missing"
	ReasonMalformed        = "malformed"
	ReasonExpired          = "expired"
	ReasonInvalidSignature = "invalid_signature"
	ReasonUnknown          = "unknown"
)

// AuthMiddleware rejects requests without a valid bearer token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, m *metrics.Metrics, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: tokenSvc,
		metrics:  m,
		logger:   logger,
	}
}

// Authenticate verifies the Authorization header and stores the user id on the
// context. Every failure yields the same 401 body; the handler never runs.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := m.verify(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			reason := failureReason(err)
			m.metrics.AuthFailures.WithLabelValues(reason).Inc()
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Info("Rejected bearer token", slog.String("reason", reason))

			return domainerrors.ErrUnauthorized
		}

		deliverycontext.SetUserID(c, userID)

		return next(c)
	}
}

func (m *AuthMiddleware) verify(header string) (int64, error) {
	token, err := bearerToken(header)
	if err != nil {
		return 0, err
	}

	return m.tokenSvc.Verify(token)
}

// bearerToken extracts the credentials of an "Authorization: Bearer <token>"
// header. The scheme is case-insensitive.
func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", service.ErrTokenMissing
	}

	scheme, token, found := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, bearerScheme) {
		return "", service.ErrTokenMalformed
	}

	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", service.ErrTokenMissing
	}

	return token, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenMissing):
		return ReasonMissing
	case errors.Is(err, service.ErrTokenMalformed):
		return ReasonMalformed
	case errors.Is(err, service.ErrTokenExpired):
		return ReasonExpired
	case errors.Is(err, service.ErrTokenInvalidSignature):
		return ReasonInvalidSignature
	default:
		return ReasonUnknown
	}
}
