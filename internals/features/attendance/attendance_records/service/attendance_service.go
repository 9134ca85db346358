package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"emptrack_backend/internals/features/attendance/attendance_records/model"
	"emptrack_backend/internals/features/attendance/attendance_records/repository"
	"emptrack_backend/internals/helpers/dbtime"
)

const (
	ActionCheckIn  = "check-in"
	ActionCheckOut = "check-out"

	NotesDelimiter = " | "

	DefaultListLimit = 10
	MaxListLimit     = 100
)

var (
	ErrDuplicateCheckIn = errors.New("already checked in today")
	ErrNoCheckIn        = errors.New("no check-in found for today")
	ErrInvalidAction    = errors.New("invalid attendance type")
	ErrInvalidStatus    = errors.New("invalid attendance status")
	ErrInvalidTimes     = errors.New("check_out must not be before check_in")
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrPersistence      = errors.New("attendance store failure")
)

// Store is the persistence the service needs. See repository for the
// Postgres, MongoDB and in-memory implementations.
type Store interface {
	FindForDay(ctx context.Context, userID uuid.UUID, day time.Time) (*model.AttendanceRecordModel, error)
	FindOpenForDay(ctx context.Context, userID uuid.UUID, day time.Time) (*model.AttendanceRecordModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AttendanceRecordModel, error)
	Create(ctx context.Context, rec *model.AttendanceRecordModel) error
	SaveCheckOut(ctx context.Context, rec *model.AttendanceRecordModel) error
	Update(ctx context.Context, rec *model.AttendanceRecordModel) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.AttendanceRecordModel, error)
	ListRange(ctx context.Context, f repository.ListFilter) ([]model.AttendanceRecordModel, int64, error)
}

type Service struct {
	Store Store
	Loc   *time.Location
	Now   func() time.Time
}

func New(store Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{Store: store, Loc: loc, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().In(s.Loc)
	}
	return time.Now().In(s.Loc)
}

// Today is midnight of the current day in the business timezone.
func (s *Service) Today() time.Time {
	return dbtime.StartOfDay(s.now(), s.Loc)
}

// ================== WRITE ==================

// Record dispatches a check-in / check-out action.
func (s *Service) Record(ctx context.Context, userID uuid.UUID, action string, notes string) (*model.AttendanceRecordModel, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case ActionCheckIn:
		return s.CheckIn(ctx, userID, notes)
	case ActionCheckOut:
		return s.CheckOut(ctx, userID, notes)
	default:
		return nil, ErrInvalidAction
	}
}

// CheckIn opens today's record. A second call on the same day fails with
// ErrDuplicateCheckIn, whether caught by the lookup or by the unique index.
func (s *Service) CheckIn(ctx context.Context, userID uuid.UUID, notes string) (*model.AttendanceRecordModel, error) {
	now := s.now()
	today := dbtime.StartOfDay(now, s.Loc)

	_, err := s.Store.FindForDay(ctx, userID, today)
	switch {
	case err == nil:
		return nil, ErrDuplicateCheckIn
	case !errors.Is(err, repository.ErrNotFound):
		return nil, persistence(err)
	}

	checkIn := now
	rec := &model.AttendanceRecordModel{
		ID:      uuid.New(),
		UserID:  userID,
		Date:    datatypes.Date(today),
		CheckIn: &checkIn,
		Status:  model.StatusPresent,
		Notes:   cleanNotes(notes),
	}
	if err := s.Store.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateCheckIn
		}
		return nil, persistence(err)
	}
	return rec, nil
}

// CheckOut closes today's open record and appends notes.
func (s *Service) CheckOut(ctx context.Context, userID uuid.UUID, notes string) (*model.AttendanceRecordModel, error) {
	now := s.now()
	today := dbtime.StartOfDay(now, s.Loc)

	rec, err := s.Store.FindOpenForDay(ctx, userID, today)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoCheckIn
		}
		return nil, persistence(err)
	}

	checkOut := now
	if rec.CheckIn != nil && checkOut.Before(*rec.CheckIn) {
		checkOut = *rec.CheckIn
	}
	rec.CheckOut = &checkOut
	rec.Notes = AppendNotes(rec.Notes, notes)

	if err := s.Store.SaveCheckOut(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// closed by a concurrent request
			return nil, ErrNoCheckIn
		}
		return nil, persistence(err)
	}
	return rec, nil
}

// ================== READ ==================

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit int) ([]model.AttendanceRecordModel, error) {
	rows, err := s.Store.ListByUser(ctx, userID, ClampLimit(limit))
	if err != nil {
		return nil, persistence(err)
	}
	return rows, nil
}

// TodayRecord returns nil, nil when the caller has not checked in today.
func (s *Service) TodayRecord(ctx context.Context, userID uuid.UUID) (*model.AttendanceRecordModel, error) {
	rec, err := s.Store.FindForDay(ctx, userID, s.Today())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence(err)
	}
	return rec, nil
}

func (s *Service) ListRange(ctx context.Context, f repository.ListFilter) ([]model.AttendanceRecordModel, int64, error) {
	rows, total, err := s.Store.ListRange(ctx, f)
	if err != nil {
		return nil, 0, persistence(err)
	}
	return rows, total, nil
}

// ================== ADMIN ==================

type MarkInput struct {
	UserID   uuid.UUID
	Date     time.Time
	Status   string
	CheckIn  *time.Time
	CheckOut *time.Time
	Notes    string
}

// Mark creates a record for any day and status (absences, leave, corrections).
func (s *Service) Mark(ctx context.Context, in MarkInput) (*model.AttendanceRecordModel, error) {
	status := model.NormalizeStatus(in.Status)
	if status == "" {
		return nil, ErrInvalidStatus
	}
	day := in.Date
	if day.IsZero() {
		day = s.Today()
	} else {
		day = dbtime.StartOfDay(day, s.Loc)
	}
	if in.CheckIn != nil && in.CheckOut != nil && in.CheckOut.Before(*in.CheckIn) {
		return nil, ErrInvalidTimes
	}

	rec := &model.AttendanceRecordModel{
		ID:       uuid.New(),
		UserID:   in.UserID,
		Date:     datatypes.Date(day),
		CheckIn:  in.CheckIn,
		CheckOut: in.CheckOut,
		Status:   status,
		Notes:    cleanNotes(in.Notes),
	}
	if err := s.Store.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateCheckIn
		}
		return nil, persistence(err)
	}
	return rec, nil
}

type PatchInput struct {
	Status *string
	Notes  *string
}

// Patch changes status and/or replaces notes of an existing record.
func (s *Service) Patch(ctx context.Context, id uuid.UUID, in PatchInput) (*model.AttendanceRecordModel, error) {
	rec, err := s.Store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, persistence(err)
	}
	if in.Status != nil {
		st := model.NormalizeStatus(*in.Status)
		if st == "" {
			return nil, ErrInvalidStatus
		}
		rec.Status = st
	}
	if in.Notes != nil {
		rec.Notes = cleanNotes(*in.Notes)
	}
	if err := s.Store.Update(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, persistence(err)
	}
	return rec, nil
}

// ================== HELPERS ==================

// AppendNotes joins existing and added notes with NotesDelimiter.
// Blank additions leave existing untouched.
func AppendNotes(existing *string, add string) *string {
	add = strings.TrimSpace(add)
	if add == "" {
		return existing
	}
	if existing == nil || strings.TrimSpace(*existing) == "" {
		return &add
	}
	joined := *existing + NotesDelimiter + add
	return &joined
}

func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func cleanNotes(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func persistence(err error) error {
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
