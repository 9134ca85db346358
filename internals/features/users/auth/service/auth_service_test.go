package service

import (
	"errors"
	"testing"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"golang.org/x/oauth2/jws"

	authHelper "emptrack_backend/internals/features/users/auth/helper"
	userModel "emptrack_backend/internals/features/users/user/model"
)

func TestAuthenticateChecksPasswordFirst(t *testing.T) {
	hashed, err := authHelper.HashPassword("kopi2026pagi")
	if err != nil {
		t.Fatal(err)
	}
	active := &userModel.UserModel{Password: hashed, IsActive: true}
	inactive := &userModel.UserModel{Password: hashed, IsActive: false}

	cases := []struct {
		name     string
		user     *userModel.UserModel
		password string
		want     error
	}{
		{"active, right password", active, "kopi2026pagi", nil},
		{"active, wrong password", active, "nope12345", ErrInvalidCredentials},
		{"inactive, wrong password", inactive, "nope12345", ErrInvalidCredentials},
		{"inactive, right password", inactive, "kopi2026pagi", ErrAccountInactive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := authenticate(tc.user, tc.password); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestGoogleIdentityRequiresVerifiedEmail(t *testing.T) {
	unverified := &googleAuthIDTokenVerifier.ClaimSet{ClaimSet: jws.ClaimSet{Sub: "1089"}, Email: "rina@emptrack.io", EmailVerified: false}
	if _, _, err := googleIdentity(unverified); !errors.Is(err, ErrGoogleEmailUnverified) {
		t.Fatalf("unverified email accepted: %v", err)
	}
	if _, _, err := googleIdentity(nil); !errors.Is(err, ErrGoogleEmailUnverified) {
		t.Fatalf("nil claims accepted: %v", err)
	}
	if _, _, err := googleIdentity(&googleAuthIDTokenVerifier.ClaimSet{EmailVerified: true, Email: "rina@emptrack.io"}); err == nil {
		t.Fatal("claims without subject accepted")
	}

	email, sub, err := googleIdentity(&googleAuthIDTokenVerifier.ClaimSet{ClaimSet: jws.ClaimSet{Sub: " 1089 "}, Email: " Rina@EmpTrack.io ", EmailVerified: true})
	if err != nil || email != "rina@emptrack.io" || sub != "1089" {
		t.Fatalf("identity = %q %q %v", email, sub, err)
	}
}
