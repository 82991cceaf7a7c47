package utils

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// context key
type ctxKey string

const CtxUserIDKey ctxKey = "user_id"

var ErrSecretNotConfigured = errors.New("secret not configured")

// AccessClaims is the payload of an access token. The subject is the
// user id in decimal.
type AccessClaims struct {
	Type  string `json:"type"`
	Fresh bool   `json:"fresh"`
	jwt.RegisteredClaims
}

// safer subject helper
func (c *AccessClaims) SubjectInt() int64 {
	v, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// GenerateToken signs an HS256 access token for userID valid for ttl.
func GenerateToken(userID int64, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrSecretNotConfigured
	}

	now := time.Now()

	claims := AccessClaims{
		Type:  "access",
		Fresh: false,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken checks signature, algorithm and expiry and returns the claims.
func VerifyToken(tokenStr, secret string) (*AccessClaims, error) {
	if secret == "" {
		return nil, ErrSecretNotConfigured
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	)

	var claims AccessClaims

	_, err := parser.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	return &claims, nil
}

// UserIDFromContext returns the id pushed by the auth middleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	uid, ok := ctx.Value(CtxUserIDKey).(int64)
	return uid, ok
}
