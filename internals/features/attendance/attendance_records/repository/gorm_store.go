package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"emptrack_backend/internals/features/attendance/attendance_records/model"
	helpers "emptrack_backend/internals/helpers"
)

// GormAttendanceStore keeps attendance in Postgres.
type GormAttendanceStore struct {
	DB *gorm.DB
}

func NewGormAttendanceStore(db *gorm.DB) *GormAttendanceStore {
	return &GormAttendanceStore{DB: db}
}

func (s *GormAttendanceStore) FindForDay(ctx context.Context, userID uuid.UUID, day time.Time) (*model.AttendanceRecordModel, error) {
	var rec model.AttendanceRecordModel
	err := s.DB.WithContext(ctx).
		Where("attendance_record_user_id = ? AND attendance_record_date = ?", userID, day.Format(DateLayout)).
		Take(&rec).Error
	return found(&rec, err)
}

func (s *GormAttendanceStore) FindOpenForDay(ctx context.Context, userID uuid.UUID, day time.Time) (*model.AttendanceRecordModel, error) {
	var rec model.AttendanceRecordModel
	err := s.DB.WithContext(ctx).
		Where("attendance_record_user_id = ? AND attendance_record_date = ?", userID, day.Format(DateLayout)).
		Where("attendance_record_check_out IS NULL").
		Take(&rec).Error
	return found(&rec, err)
}

func (s *GormAttendanceStore) FindByID(ctx context.Context, id uuid.UUID) (*model.AttendanceRecordModel, error) {
	var rec model.AttendanceRecordModel
	err := s.DB.WithContext(ctx).Where("attendance_record_id = ?", id).Take(&rec).Error
	return found(&rec, err)
}

func (s *GormAttendanceStore) Create(ctx context.Context, rec *model.AttendanceRecordModel) error {
	if err := s.DB.WithContext(ctx).Create(rec).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// SaveCheckOut only touches a row that is still open, so two concurrent
// check-outs cannot both succeed.
func (s *GormAttendanceStore) SaveCheckOut(ctx context.Context, rec *model.AttendanceRecordModel) error {
	res := s.DB.WithContext(ctx).
		Model(&model.AttendanceRecordModel{}).
		Where("attendance_record_id = ? AND attendance_record_check_out IS NULL", rec.ID).
		Updates(map[string]any{
			"attendance_record_check_out":  rec.CheckOut,
			"attendance_record_notes":      rec.Notes,
			"attendance_record_updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormAttendanceStore) Update(ctx context.Context, rec *model.AttendanceRecordModel) error {
	res := s.DB.WithContext(ctx).
		Model(rec).
		Select("attendance_record_status", "attendance_record_notes", "attendance_record_check_in", "attendance_record_check_out").
		Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormAttendanceStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.AttendanceRecordModel, error) {
	var rows []model.AttendanceRecordModel
	q := s.DB.WithContext(ctx).
		Where("attendance_record_user_id = ?", userID).
		Order("attendance_record_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormAttendanceStore) ListRange(ctx context.Context, f ListFilter) ([]model.AttendanceRecordModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.AttendanceRecordModel{})
	if f.UserID != nil {
		q = q.Where("attendance_record_user_id = ?", *f.UserID)
	}
	if !f.From.IsZero() {
		q = q.Where("attendance_record_date >= ?", f.From.Format(DateLayout))
	}
	if !f.To.IsZero() {
		q = q.Where("attendance_record_date <= ?", f.To.Format(DateLayout))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.AttendanceRecordModel
	q = q.Order("attendance_record_date DESC").Order("attendance_record_created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func found(rec *model.AttendanceRecordModel, err error) (*model.AttendanceRecordModel, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}
