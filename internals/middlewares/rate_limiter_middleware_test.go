package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	helpers "emptrack_backend/internals/helpers"
)

func attendanceApp() *fiber.App {
	app := fiber.New()
	app.Post("/attendance",
		func(c *fiber.Ctx) error {
			if id := c.Get("X-User"); id != "" {
				c.Locals(helpers.LocUserID, id)
			}
			return c.Next()
		},
		AttendanceRateLimiter(),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) },
	)
	return app
}

func postAttendance(t *testing.T, app *fiber.App, user string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/attendance", nil)
	if user != "" {
		req.Header.Set("X-User", user)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode
}

func TestAttendanceRateLimiterIsPerUser(t *testing.T) {
	app := attendanceApp()

	// one office network: every request comes from the same address
	for i := 0; i < 15; i++ {
		user := "employee-" + string(rune('a'+i))
		if status := postAttendance(t, app, user); status != fiber.StatusCreated {
			t.Fatalf("%s: status = %d", user, status)
		}
	}

	for i := 0; i < 10; i++ {
		if status := postAttendance(t, app, "rina"); status != fiber.StatusCreated {
			t.Fatalf("request %d: status = %d", i+1, status)
		}
	}
	if status := postAttendance(t, app, "rina"); status != fiber.StatusTooManyRequests {
		t.Fatalf("11th request from one user: status = %d", status)
	}
}

func TestAttendanceRateLimiterFallsBackToIP(t *testing.T) {
	app := attendanceApp()
	for i := 0; i < 10; i++ {
		postAttendance(t, app, "")
	}
	if status := postAttendance(t, app, ""); status != fiber.StatusTooManyRequests {
		t.Fatalf("anonymous 11th request: status = %d", status)
	}
}
