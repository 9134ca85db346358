// internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"emptrack_backend/internals/configs"
	userModel "emptrack_backend/internals/features/users/user/model"
)

const accessTTLDefault = 24 * time.Hour

var ErrMissingSecret = errors.New("JWT_SECRET is not set")

func nowUTC() time.Time { return time.Now().UTC() }

func accessTTL() time.Duration {
	if h := configs.GetEnvInt("JWT_TTL_HOURS", 0); h > 0 {
		return time.Duration(h) * time.Hour
	}
	return accessTTLDefault
}

// BuildAccessClaims: claims read back by the auth middleware (id/sub, role, user_name)
func BuildAccessClaims(user userModel.UserModel, now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":       "access",
		"sub":       user.ID.String(),
		"id":        user.ID.String(),
		"role":      user.Role,
		"user_name": user.Name,
		"email":     user.Email,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
}

// SignAccessToken signs an HS256 access token for user.
func SignAccessToken(user userModel.UserModel, secret string, now time.Time, ttl time.Duration) (string, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", ErrMissingSecret
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, BuildAccessClaims(user, now, ttl)).SignedString([]byte(secret))
}

// RemainingTTL: time left before the token expires, plus a minute of slack.
// Unparseable tokens get the fallback.
func RemainingTTL(rawToken, secret string, fallback time.Duration) time.Duration {
	if rawToken == "" || secret == "" {
		return fallback
	}
	tok, err := jwt.Parse(rawToken, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return fallback
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return fallback
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return fallback
	}
	until := time.Until(time.Unix(int64(exp), 0))
	if until <= 0 {
		return time.Minute
	}
	return until + time.Minute
}
