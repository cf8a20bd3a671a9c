package identity

import (
	"errors"
	"fmt"
	"time"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/user"
	"localeats/internal/core/ports"
	"localeats/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultTokenTTL = 24 * time.Hour
	tokenIssuer     = "localeats"
)

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

// Claims is the token payload.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if len(secret) < 16 {
		return nil, errs.NewValueIsOutOfRangeError("jwt secret length", len(secret), 16, nil)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock replaces the time source, for tests.
func (i *JWTIssuer) WithClock(now func() time.Time) *JWTIssuer {
	i.now = now
	return i
}

func (i *JWTIssuer) Issue(userID kernel.UUID, role user.Role) (string, time.Time, error) {
	if err := userID.Validate(); err != nil {
		return "", time.Time{}, errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	if err := role.Validate(); err != nil {
		return "", time.Time{}, err
	}

	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)
	claims := Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, issuer and expiry and returns the token's
// subject and role. Every failure is an UnauthorizedError.
func (i *JWTIssuer) Verify(token string) (kernel.UUID, user.Role, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return kernel.UUID{}, user.UnknownRole, errs.NewUnauthorizedError("token expired")
		}
		return kernel.UUID{}, user.UnknownRole, errs.NewUnauthorizedError("invalid token")
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.UUID{}, user.UnknownRole, errs.NewUnauthorizedError("invalid token subject")
	}
	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return kernel.UUID{}, user.UnknownRole, errs.NewUnauthorizedError("invalid token role")
	}
	return id, role, nil
}
