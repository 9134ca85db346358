package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	userModel "emptrack_backend/internals/features/users/user/model"
)

func TestSignAccessToken(t *testing.T) {
	user := userModel.UserModel{ID: uuid.New(), Name: "Rina", Email: "rina@emptrack.io", Role: "employee"}
	now := time.Now().UTC()

	tok, err := SignAccessToken(user, "secret", now, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return []byte("secret"), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Method.Alg() != "HS256" {
		t.Fatalf("alg = %s", parsed.Method.Alg())
	}
	if claims["id"] != user.ID.String() || claims["sub"] != user.ID.String() || claims["role"] != "employee" {
		t.Fatalf("claims = %v", claims)
	}
	if int64(claims["exp"].(float64)) != now.Add(time.Hour).Unix() {
		t.Fatalf("exp = %v", claims["exp"])
	}

	if _, err := SignAccessToken(user, "  ", now, time.Hour); err != ErrMissingSecret {
		t.Fatalf("empty secret err = %v", err)
	}
}

func TestRemainingTTL(t *testing.T) {
	user := userModel.UserModel{ID: uuid.New(), Role: "employee"}
	tok, err := SignAccessToken(user, "secret", time.Now().UTC(), 2*time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	got := RemainingTTL(tok, "secret", 5*time.Minute)
	if got < 2*time.Hour-time.Minute || got > 2*time.Hour+time.Minute {
		t.Fatalf("RemainingTTL = %s", got)
	}

	if got := RemainingTTL(tok, "wrong", 5*time.Minute); got != 5*time.Minute {
		t.Fatalf("wrong secret = %s", got)
	}
	if got := RemainingTTL("", "secret", 5*time.Minute); got != 5*time.Minute {
		t.Fatalf("empty token = %s", got)
	}
}
