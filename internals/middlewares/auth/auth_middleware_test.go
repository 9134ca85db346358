package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helpers "emptrack_backend/internals/helpers"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func validClaims(id uuid.UUID, role string) jwt.MapClaims {
	return jwt.MapClaims{
		"id":        id.String(),
		"role":      role,
		"user_name": "Rina",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
}

func newTestApp(opts AuthJWTOpts, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helpers.ErrorHandler})
	handlers := append([]fiber.Handler{AuthJWT(opts)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(helpers.LocUserID).(string) + "|" + helpers.GetUserRole(c) + "|" + helpers.GetRawAccessToken(c))
	})
	app.Get("/private", handlers...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestAuthJWTValidTokenSetsLocals(t *testing.T) {
	id := uuid.New()
	tok := signToken(t, validClaims(id, "Employee"))
	app := newTestApp(AuthJWTOpts{Secret: testSecret})

	status, body := doRequest(t, app, tok)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d body=%s", status, body)
	}
	want := id.String() + "|employee|" + tok
	if body != want {
		t.Fatalf("body = %q, want %q", body, want)
	}
}

func TestAuthJWTRejects(t *testing.T) {
	id := uuid.New()
	expired := validClaims(id, "employee")
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	noID := validClaims(id, "employee")
	delete(noID, "id")

	wrongKey, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims(id, "employee")).SignedString([]byte("other"))

	cases := []struct {
		name  string
		token string
		opts  AuthJWTOpts
		want  int
	}{
		{"missing token", "", AuthJWTOpts{Secret: testSecret}, fiber.StatusUnauthorized},
		{"expired", signToken(t, expired), AuthJWTOpts{Secret: testSecret}, fiber.StatusUnauthorized},
		{"wrong key", wrongKey, AuthJWTOpts{Secret: testSecret}, fiber.StatusUnauthorized},
		{"no user id", signToken(t, noID), AuthJWTOpts{Secret: testSecret}, fiber.StatusUnauthorized},
		{"blacklisted", signToken(t, validClaims(id, "employee")), AuthJWTOpts{
			Secret:           testSecret,
			BlacklistChecker: func(context.Context, string) (bool, error) { return true, nil },
		}, fiber.StatusUnauthorized},
		{"blacklist lookup fails", signToken(t, validClaims(id, "employee")), AuthJWTOpts{
			Secret:           testSecret,
			BlacklistChecker: func(context.Context, string) (bool, error) { return false, errors.New("db down") },
		}, fiber.StatusInternalServerError},
		{"unknown user", signToken(t, validClaims(id, "employee")), AuthJWTOpts{
			Secret:        testSecret,
			ActiveChecker: func(context.Context, uuid.UUID) error { return gorm.ErrRecordNotFound },
		}, fiber.StatusUnauthorized},
		{"inactive user", signToken(t, validClaims(id, "employee")), AuthJWTOpts{
			Secret:        testSecret,
			ActiveChecker: func(context.Context, uuid.UUID) error { return ErrUserInactive },
		}, fiber.StatusForbidden},
		{"missing secret", signToken(t, validClaims(id, "employee")), AuthJWTOpts{}, fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doRequest(t, newTestApp(tc.opts), tc.token)
			if status != tc.want {
				t.Fatalf("status = %d, want %d (body=%s)", status, tc.want, body)
			}
			if !strings.Contains(body, `"success":false`) {
				t.Fatalf("body is not an error envelope: %s", body)
			}
		})
	}
}

func TestAuthJWTCookieFallback(t *testing.T) {
	tok := signToken(t, validClaims(uuid.New(), "admin"))
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})

	resp, err := newTestApp(AuthJWTOpts{Secret: testSecret, AllowCookieFallback: true}).Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	resp, err = newTestApp(AuthJWTOpts{Secret: testSecret}).Test(httptest.NewRequest(http.MethodGet, "/private", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status without cookie fallback = %d", resp.StatusCode)
	}
}

func TestOnlyRoles(t *testing.T) {
	adminOnly := OnlyRoles("Only admins can access users.", "admin")

	status, body := doRequest(t, newTestApp(AuthJWTOpts{Secret: testSecret}, adminOnly), signToken(t, validClaims(uuid.New(), "employee")))
	if status != fiber.StatusForbidden || !strings.Contains(body, "Only admins can access users.") {
		t.Fatalf("employee: status = %d body=%s", status, body)
	}

	status, _ = doRequest(t, newTestApp(AuthJWTOpts{Secret: testSecret}, adminOnly), signToken(t, validClaims(uuid.New(), "ADMIN")))
	if status != fiber.StatusOK {
		t.Fatalf("admin: status = %d", status)
	}
}

func TestExtractBearerToken(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		tok, err := extractBearerToken(c, false)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString(err.Error())
		}
		return c.SendString(tok)
	})

	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer   abc": "abc",
		`Bearer "abc"`: "abc",
		"Token abc":    "",
		"Bearer":       "",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		if want == "" {
			if resp.StatusCode != fiber.StatusUnauthorized {
				t.Errorf("%q: status = %d", header, resp.StatusCode)
			}
			continue
		}
		if string(body) != want {
			t.Errorf("%q: token = %q, want %q", header, body, want)
		}
	}
}
