package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"emptrack_backend/internals/features/attendance/attendance_records/repository"
	"emptrack_backend/internals/features/attendance/attendance_records/service"
	helper "emptrack_backend/internals/helpers"
)

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T, now time.Time) (*fiber.App, uuid.UUID) {
	t.Helper()
	loc := time.FixedZone("WIB", 7*3600)
	svc := service.New(repository.NewMemoryAttendanceStore(), loc)
	svc.Now = func() time.Time { return now }
	ctrl := NewAttendanceController(svc, 20)

	user := uuid.New()
	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: helper.ErrorHandler,
	})
	// stands in for the JWT middleware
	app.Use(func(c *fiber.Ctx) error {
		if c.Get("X-Test-User") == "none" {
			return c.Next()
		}
		c.Locals(helper.LocUserID, user.String())
		return c.Next()
	})
	app.Get("/api/attendance", ctrl.List)
	app.Post("/api/attendance", ctrl.Record)
	app.Get("/api/attendance/today", ctrl.Today)
	app.Get("/api/attendance/summary", ctrl.Summary)
	app.Get("/api/attendance/export", ctrl.Export)
	app.Get("/api/admin/attendance", ctrl.AdminList)
	app.Post("/api/admin/attendance", ctrl.AdminMark)
	app.Patch("/api/admin/attendance/:id", ctrl.AdminPatch)
	return app, user
}

func do(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (int, envelope, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	_ = sonic.Unmarshal(raw, &env)
	return resp.StatusCode, env, raw
}

func TestUnauthenticated(t *testing.T) {
	app, _ := newTestApp(t, time.Now())

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/attendance", ""},
		{http.MethodPost, "/api/attendance", `{"type":"check-in"}`},
	} {
		status, env, _ := do(t, app, tc.method, tc.path, tc.body, "X-Test-User", "none")
		if status != fiber.StatusUnauthorized || env.Success {
			t.Errorf("%s %s: status = %d, env = %+v", tc.method, tc.path, status, env)
		}
	}
}

func TestRecordFlow(t *testing.T) {
	app, user := newTestApp(t, time.Date(2026, 3, 2, 9, 5, 0, 0, time.UTC))

	status, env, _ := do(t, app, http.MethodPost, "/api/attendance", `{"type":"check-in","notes":"wfh"}`)
	if status != fiber.StatusOK || !env.Success {
		t.Fatalf("check-in: %d %+v", status, env)
	}
	var rec struct {
		UserID   string  `json:"user_id"`
		Date     string  `json:"date"`
		Status   string  `json:"status"`
		CheckIn  *string `json:"check_in"`
		CheckOut *string `json:"check_out"`
		Notes    *string `json:"notes"`
	}
	if err := sonic.Unmarshal(env.Data, &rec); err != nil {
		t.Fatal(err)
	}
	if rec.UserID != user.String() || rec.Date != "2026-03-02" || rec.Status != "present" || rec.CheckIn == nil || rec.CheckOut != nil {
		t.Fatalf("record = %+v", rec)
	}

	status, env, _ = do(t, app, http.MethodPost, "/api/attendance", `{"type":"check-in"}`)
	if status != fiber.StatusBadRequest || env.ErrorCode != CodeDuplicateCheckIn {
		t.Fatalf("duplicate: %d %+v", status, env)
	}

	status, env, _ = do(t, app, http.MethodPost, "/api/attendance", `{"type":"check-out","notes":"done"}`)
	if status != fiber.StatusOK {
		t.Fatalf("check-out: %d %+v", status, env)
	}
	if err := sonic.Unmarshal(env.Data, &rec); err != nil {
		t.Fatal(err)
	}
	if rec.CheckOut == nil || rec.Notes == nil || *rec.Notes != "wfh | done" {
		t.Fatalf("after check-out = %+v", rec)
	}

	status, env, _ = do(t, app, http.MethodGet, "/api/attendance?limit=5", "")
	if status != fiber.StatusOK {
		t.Fatalf("list: %d", status)
	}
	var list []map[string]any
	if err := sonic.Unmarshal(env.Data, &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("list len = %d", len(list))
	}
}

func TestRecordErrors(t *testing.T) {
	app, _ := newTestApp(t, time.Now())

	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"unknown type", `{"type":"lunch"}`, fiber.StatusBadRequest, CodeInvalidType},
		{"missing type", `{}`, fiber.StatusBadRequest, CodeInvalidType},
		{"check-out first", `{"type":"check-out"}`, fiber.StatusBadRequest, CodeNoCheckIn},
		{"bad json", `{"type":`, fiber.StatusBadRequest, "BAD_REQUEST"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, env, _ := do(t, app, http.MethodPost, "/api/attendance", tc.body)
			if status != tc.status || env.ErrorCode != tc.code || env.Success {
				t.Fatalf("got %d %+v, want %d %s", status, env, tc.status, tc.code)
			}
		})
	}
}

func TestTodayAndSummary(t *testing.T) {
	app, _ := newTestApp(t, time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)) // 09:00 WIB

	_, env, _ := do(t, app, http.MethodGet, "/api/attendance/today", "")
	if string(env.Data) != "null" {
		t.Fatalf("today before check-in = %s", env.Data)
	}

	do(t, app, http.MethodPost, "/api/attendance", `{"type":"check-in"}`)

	_, env, _ = do(t, app, http.MethodGet, "/api/attendance/today", "")
	if string(env.Data) == "null" {
		t.Fatal("today after check-in is null")
	}

	status, env, _ := do(t, app, http.MethodGet, "/api/attendance/summary", "")
	if status != fiber.StatusOK {
		t.Fatalf("summary: %d", status)
	}
	var sum service.Summary
	if err := sonic.Unmarshal(env.Data, &sum); err != nil {
		t.Fatal(err)
	}
	if sum.Total != 1 || sum.AverageCheckIn != "09:00" || sum.AttendanceRate != 5 || sum.WorkingDays != 20 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestExport(t *testing.T) {
	app, _ := newTestApp(t, time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC))
	do(t, app, http.MethodPost, "/api/attendance", `{"type":"check-in"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/attendance/export?from=2026-03-01&to=2026-03-31", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attendance_2026-03-01_2026-03-31.xlsx") {
		t.Fatalf("content-disposition = %q", cd)
	}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) < 4 || string(raw[:2]) != "PK" {
		t.Fatal("body is not an xlsx (zip) file")
	}

	status, env, _ := do(t, app, http.MethodGet, "/api/attendance/export?from=2026-03-31&to=2026-03-01", "")
	if status != fiber.StatusBadRequest || env.Success {
		t.Fatalf("reversed range: %d", status)
	}
}

func TestAdminMarkAndPatch(t *testing.T) {
	app, _ := newTestApp(t, time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC))
	employee := uuid.New()

	body := `{"user_id":"` + employee.String() + `","date":"2026-02-27","status":"on_leave","notes":"sick"}`
	status, env, _ := do(t, app, http.MethodPost, "/api/admin/attendance", body)
	if status != fiber.StatusCreated {
		t.Fatalf("mark: %d %+v", status, env)
	}
	var rec struct {
		ID   string `json:"id"`
		Date string `json:"date"`
	}
	if err := sonic.Unmarshal(env.Data, &rec); err != nil {
		t.Fatal(err)
	}
	if rec.Date != "2026-02-27" {
		t.Fatalf("date = %s", rec.Date)
	}

	status, env, _ = do(t, app, http.MethodPost, "/api/admin/attendance", body)
	if status != fiber.StatusConflict || env.ErrorCode != CodeDuplicateRecord {
		t.Fatalf("duplicate mark: %d %+v", status, env)
	}

	status, env, _ = do(t, app, http.MethodPost, "/api/admin/attendance", `{"status":"present"}`)
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("missing user_id: %d %+v", status, env)
	}

	status, env, _ = do(t, app, http.MethodPatch, "/api/admin/attendance/"+rec.ID, `{"status":"absent"}`)
	if status != fiber.StatusOK {
		t.Fatalf("patch: %d %+v", status, env)
	}

	status, env, _ = do(t, app, http.MethodPatch, "/api/admin/attendance/"+rec.ID, `{"status":"asleep"}`)
	if status != fiber.StatusBadRequest || env.ErrorCode != CodeInvalidStatus {
		t.Fatalf("bad status: %d %+v", status, env)
	}

	status, _, _ = do(t, app, http.MethodPatch, "/api/admin/attendance/"+uuid.NewString(), `{"status":"absent"}`)
	if status != fiber.StatusNotFound {
		t.Fatalf("patch missing: %d", status)
	}

	status, env, _ = do(t, app, http.MethodGet, "/api/admin/attendance?user_id="+employee.String(), "")
	if status != fiber.StatusOK {
		t.Fatalf("admin list: %d", status)
	}
	var rows []map[string]any
	if err := sonic.Unmarshal(env.Data, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0]["status"] != "absent" {
		t.Fatalf("rows = %v", rows)
	}
}
