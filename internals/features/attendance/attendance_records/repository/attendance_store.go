package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("attendance record not found")
	ErrDuplicate = errors.New("attendance record already exists for this day")
)

// ListFilter narrows admin listings. Zero values mean "no bound".
type ListFilter struct {
	UserID *uuid.UUID
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

const DateLayout = "2006-01-02"

// dayKey keeps the calendar date of day and drops its zone.
func dayKey(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
