package helper

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestResolvePaging(t *testing.T) {
	app := fiber.New()
	var got Paging
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 100)
		return nil
	})

	cases := []struct {
		query string
		want  Paging
	}{
		{"", Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}},
		{"?page=3&per_page=10", Paging{Page: 3, PerPage: 10, Offset: 20, Limit: 10}},
		{"?page=2&limit=15", Paging{Page: 2, PerPage: 15, Offset: 15, Limit: 15}},
		{"?page=-1&per_page=500", Paging{Page: 1, PerPage: 100, Offset: 0, Limit: 100}},
		{"?per_page=abc", Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}},
	}
	for _, tc := range cases {
		if _, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+tc.query, nil)); err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.query, got, tc.want)
		}
	}
}

func TestJsonErrorCode(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/custom", func(c *fiber.Ctx) error {
		return JsonErrorCode(c, fiber.StatusBadRequest, "DUPLICATE_CHECK_IN", "already checked in")
	})
	app.Get("/default", func(c *fiber.Ctx) error {
		return JsonError(c, fiber.StatusConflict, "")
	})
	app.Get("/fiber", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - No token")
	})

	cases := []struct {
		path   string
		status int
		code   string
		msg    string
	}{
		{"/custom", 400, "DUPLICATE_CHECK_IN", "already checked in"},
		{"/default", 409, "CONFLICT", "Conflict"},
		{"/fiber", 401, "UNAUTHORIZED", "Unauthorized - No token"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: status = %d", tc.path, resp.StatusCode)
		}
		raw, _ := io.ReadAll(resp.Body)
		var body ErrorResponse
		if err := sonic.Unmarshal(raw, &body); err != nil {
			t.Fatalf("%s: decode: %v", tc.path, err)
		}
		if body.Success || body.ErrorCode != tc.code || body.Message != tc.msg {
			t.Errorf("%s: body = %+v", tc.path, body)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true},
		{"pg 23505", &pgconn.PgError{Code: "23505"}, true},
		{"pg other", &pgconn.PgError{Code: "23503", Message: "violates foreign key"}, false},
		{"message only", errors.New(`ERROR: duplicate key value violates unique constraint "uq_attendance_user_date"`), true},
		{"unrelated", errors.New("connection reset"), false},
	}
	for _, tc := range cases {
		if got := IsUniqueViolation(tc.err); got != tc.want {
			t.Errorf("%s: got %v", tc.name, got)
		}
	}
}
