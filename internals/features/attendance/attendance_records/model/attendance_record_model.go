// file: internals/features/attendance/attendance_records/model/attendance_record_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
	StatusHalfDay = "half_day"
	StatusOnLeave = "on_leave"
)

// Statuses in display order
var Statuses = []string{StatusPresent, StatusLate, StatusAbsent, StatusHalfDay, StatusOnLeave}

// NormalizeStatus accepts "half-day"/"HALF_DAY" style input. Returns "" when unknown.
func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	for _, v := range Statuses {
		if s == v {
			return v
		}
	}
	return ""
}

// AttendanceRecordModel represents the `attendance_records` table.
// One row per (user, calendar day), enforced by uq_attendance_user_date.
type AttendanceRecordModel struct {
	ID uuid.UUID `json:"attendance_record_id" gorm:"column:attendance_record_id;type:uuid;default:gen_random_uuid();primaryKey"`

	UserID uuid.UUID `json:"attendance_record_user_id" gorm:"column:attendance_record_user_id;type:uuid;not null;uniqueIndex:uq_attendance_user_date,priority:1"`

	// Calendar day in the business timezone
	Date datatypes.Date `json:"attendance_record_date" gorm:"column:attendance_record_date;type:date;not null;uniqueIndex:uq_attendance_user_date,priority:2;index:idx_attendance_records_date"`

	CheckIn  *time.Time `json:"attendance_record_check_in"  gorm:"column:attendance_record_check_in;type:timestamptz"`
	CheckOut *time.Time `json:"attendance_record_check_out" gorm:"column:attendance_record_check_out;type:timestamptz"`

	Status string  `json:"attendance_record_status" gorm:"column:attendance_record_status;type:varchar(16);not null;default:'present'"`
	Notes  *string `json:"attendance_record_notes"  gorm:"column:attendance_record_notes;type:text"`

	CreatedAt time.Time `json:"attendance_record_created_at" gorm:"column:attendance_record_created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `json:"attendance_record_updated_at" gorm:"column:attendance_record_updated_at;not null;autoUpdateTime"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }

// Day returns the calendar date as a time.Time.
func (m AttendanceRecordModel) Day() time.Time { return time.Time(m.Date) }
