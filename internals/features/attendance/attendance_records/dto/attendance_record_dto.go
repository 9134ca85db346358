package dto

import (
	"time"

	"github.com/google/uuid"

	"emptrack_backend/internals/features/attendance/attendance_records/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// RecordAttendanceRequest: POST /api/attendance
type RecordAttendanceRequest struct {
	Type  string `json:"type"`
	Notes string `json:"notes" validate:"max=1000"`
}

// MarkAttendanceRequest: POST /api/admin/attendance
type MarkAttendanceRequest struct {
	UserID   uuid.UUID  `json:"user_id" validate:"required"`
	Date     string     `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status   string     `json:"status" validate:"required"`
	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`
	Notes    string     `json:"notes" validate:"max=1000"`
}

// PatchAttendanceRequest: PATCH /api/admin/attendance/:id
type PatchAttendanceRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes" validate:"omitempty,max=1000"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type AttendanceRecordResponse struct {
	ID       uuid.UUID  `json:"id"`
	UserID   uuid.UUID  `json:"user_id"`
	Date     string     `json:"date"`
	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`
	Status   string     `json:"status"`
	Notes    *string    `json:"notes"`
}

func FromModel(m *model.AttendanceRecordModel) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		Date:     m.Day().Format("2006-01-02"),
		CheckIn:  m.CheckIn,
		CheckOut: m.CheckOut,
		Status:   m.Status,
		Notes:    m.Notes,
	}
}

func FromModels(in []model.AttendanceRecordModel) []AttendanceRecordResponse {
	out := make([]AttendanceRecordResponse, 0, len(in))
	for i := range in {
		out = append(out, FromModel(&in[i]))
	}
	return out
}
