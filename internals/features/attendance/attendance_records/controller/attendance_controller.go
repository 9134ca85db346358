package controller

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"emptrack_backend/internals/features/attendance/attendance_records/dto"
	"emptrack_backend/internals/features/attendance/attendance_records/repository"
	"emptrack_backend/internals/features/attendance/attendance_records/service"
	helper "emptrack_backend/internals/helpers"
	"emptrack_backend/internals/helpers/dbtime"
)

const (
	CodeDuplicateCheckIn = "DUPLICATE_CHECK_IN"
	CodeNoCheckIn        = "NO_CHECK_IN"
	CodeInvalidType      = "INVALID_TYPE"
	CodeInvalidStatus    = "INVALID_STATUS"
	CodeDuplicateRecord  = "DUPLICATE_RECORD"
)

type AttendanceController struct {
	Svc         *service.Service
	Validator   *validator.Validate
	WorkingDays int
}

func NewAttendanceController(svc *service.Service, workingDays int) *AttendanceController {
	return &AttendanceController{Svc: svc, Validator: helper.NewValidator(), WorkingDays: workingDays}
}

/* ===================== USER ===================== */

// GET /api/attendance?limit=N
func (ac *AttendanceController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	rows, err := ac.Svc.List(c.UserContext(), userID, c.QueryInt("limit", service.DefaultListLimit))
	if err != nil {
		return ac.serviceError(c, err)
	}
	return helper.JsonOK(c, "Attendance records", dto.FromModels(rows))
}

// POST /api/attendance {type, notes?}
func (ac *AttendanceController) Record(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.RecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}

	rec, err := ac.Svc.Record(c.UserContext(), userID, req.Type, req.Notes)
	if err != nil {
		return ac.serviceError(c, err)
	}

	msg := "Checked in"
	if rec.CheckOut != nil {
		msg = "Checked out"
	}
	return helper.JsonOK(c, msg, dto.FromModel(rec))
}

// GET /api/attendance/today
func (ac *AttendanceController) Today(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	rec, err := ac.Svc.TodayRecord(c.UserContext(), userID)
	if err != nil {
		return ac.serviceError(c, err)
	}
	if rec == nil {
		return helper.JsonOK(c, "Not checked in today", nil)
	}
	return helper.JsonOK(c, "Today's attendance", dto.FromModel(rec))
}

// GET /api/attendance/summary?limit=N
func (ac *AttendanceController) Summary(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	limit := service.ClampLimit(c.QueryInt("limit", 30))
	rows, err := ac.Svc.List(c.UserContext(), userID, limit)
	if err != nil {
		return ac.serviceError(c, err)
	}

	sum := service.Summarize(rows, service.SummaryOptions{
		WorkingDays: ac.WorkingDays,
		Limit:       limit,
		Loc:         ac.Svc.Loc,
	})
	return helper.JsonOK(c, "Attendance summary", sum)
}

// GET /api/attendance/export?from=YYYY-MM-DD&to=YYYY-MM-DD
// Defaults to the current month.
func (ac *AttendanceController) Export(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	from, to, err := ac.parseRange(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if from.IsZero() {
		today := ac.Svc.Today()
		from = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, ac.Svc.Loc)
	}
	if to.IsZero() {
		to = ac.Svc.Today()
	}

	rows, _, err := ac.Svc.ListRange(c.UserContext(), repository.ListFilter{UserID: &userID, From: from, To: to})
	if err != nil {
		return ac.serviceError(c, err)
	}

	sum := service.Summarize(rows, service.SummaryOptions{WorkingDays: ac.WorkingDays, Loc: ac.Svc.Loc})
	buf, err := service.BuildWorkbook(rows, sum, ac.Svc.Loc)
	if err != nil {
		log.Printf("[ERROR] attendance export user=%s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build report")
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", from.Format(dbtime.DateLayout), to.Format(dbtime.DateLayout))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

/* ===================== ADMIN ===================== */

// GET /api/admin/attendance?user_id=&from=&to=&page=&per_page=
func (ac *AttendanceController) AdminList(c *fiber.Ctx) error {
	f := repository.ListFilter{}
	if s := strings.TrimSpace(c.Query("user_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "user_id is not a valid UUID")
		}
		f.UserID = &id
	}
	from, to, err := ac.parseRange(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	f.From, f.To = from, to

	p := helper.ResolvePaging(c, 20, service.MaxListLimit)
	f.Limit, f.Offset = p.Limit, p.Offset

	rows, total, err := ac.Svc.ListRange(c.UserContext(), f)
	if err != nil {
		return ac.serviceError(c, err)
	}
	return helper.JsonList(c, "Attendance records", dto.FromModels(rows), fiber.Map{
		"page":     p.Page,
		"per_page": p.PerPage,
		"total":    total,
	})
}

// POST /api/admin/attendance
func (ac *AttendanceController) AdminMark(c *fiber.Ctx) error {
	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}
	day, err := dbtime.ParseDate(req.Date, ac.Svc.Loc)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	rec, err := ac.Svc.Mark(c.UserContext(), service.MarkInput{
		UserID:   req.UserID,
		Date:     day,
		Status:   req.Status,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Notes:    req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCheckIn) {
			return helper.JsonErrorCode(c, fiber.StatusConflict, CodeDuplicateRecord, "Attendance already recorded for this day")
		}
		return ac.serviceError(c, err)
	}
	return helper.JsonCreated(c, "Attendance recorded", dto.FromModel(rec))
}

// PATCH /api/admin/attendance/:id
func (ac *AttendanceController) AdminPatch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attendance id")
	}

	var req dto.PatchAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFieldErrors(err))
	}
	if req.Status == nil && req.Notes == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	rec, err := ac.Svc.Patch(c.UserContext(), id, service.PatchInput{Status: req.Status, Notes: req.Notes})
	if err != nil {
		return ac.serviceError(c, err)
	}
	return helper.JsonUpdated(c, "Attendance updated", dto.FromModel(rec))
}

/* ===================== HELPERS ===================== */

// serviceError maps service errors to status + error_code.
func (ac *AttendanceController) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrDuplicateCheckIn):
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, CodeDuplicateCheckIn, "You have already checked in today")
	case errors.Is(err, service.ErrNoCheckIn):
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, CodeNoCheckIn, "No check-in found for today")
	case errors.Is(err, service.ErrInvalidAction):
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, CodeInvalidType, `type must be "check-in" or "check-out"`)
	case errors.Is(err, service.ErrInvalidStatus):
		return helper.JsonErrorCode(c, fiber.StatusBadRequest, CodeInvalidStatus, "status must be one of present, late, absent, half_day, on_leave")
	case errors.Is(err, service.ErrInvalidTimes):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRecordNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Attendance record not found")
	default:
		log.Printf("[ERROR] attendance: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process attendance")
	}
}

func (ac *AttendanceController) parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, err := dbtime.ParseDate(c.Query("from"), ac.Svc.Loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("from must be YYYY-MM-DD")
	}
	to, err := dbtime.ParseDate(c.Query("to"), ac.Svc.Loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("to must be YYYY-MM-DD")
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to must not be before from")
	}
	return from, to, nil
}
