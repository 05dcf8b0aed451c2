package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"inventory/config"
	"inventory/internal/domain/service"
	"inventory/internal/errors"
)

// DefaultTokenTTL is the lifetime of an access token.
const DefaultTokenTTL = time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewJWTService builds the token service from the process configuration.
// An empty secret is a fatal configuration error.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg == nil || cfg.SecretKey.Access == "" {
		return nil, service.ErrSigningKeyMissing
	}

	ttl := DefaultTokenTTL
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return newJWTService(cfg.SecretKey.Access, ttl, time.Now), nil
}

func newJWTService(secret string, ttl time.Duration, now func() time.Time) *jwtService {
	return &jwtService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(now),
		),
	}
}

// Issue signs {userId, iat, exp} with exp exactly ttl after iat.
// iat is truncated to whole seconds, the precision of JWT numeric dates.
func (s *jwtService) Issue(userID int64) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, service.ErrSigningKeyMissing
	}

	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	claims := &service.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign token")
	}

	return token, expiresAt, nil
}

// Verify parses the token and maps every failure onto one of the service.ErrToken* values.
func (s *jwtService) Verify(tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, service.ErrTokenMissing
	}
	if len(s.secret) == 0 {
		return 0, service.ErrSigningKeyMissing
	}

	claims := &service.Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}

		return s.secret, nil
	})
	if err != nil {
		return 0, classifyParseError(err)
	}
	if !token.Valid || claims.UserID <= 0 {
		return 0, service.ErrTokenMalformed
	}

	return claims.UserID, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Wrap(service.ErrTokenExpired, err.Error())
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return errors.Wrap(service.ErrTokenInvalidSignature, err.Error())
	default:
		return errors.Wrap(service.ErrTokenMalformed, err.Error())
	}
}
