package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"emptrack_backend/internals/features/attendance/attendance_records/model"
)

// MemoryAttendanceStore is a process-local store (ATTENDANCE_STORE=memory)
// for running the API without a database. Records are lost on restart.
type MemoryAttendanceStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]model.AttendanceRecordModel
}

func NewMemoryAttendanceStore() *MemoryAttendanceStore {
	return &MemoryAttendanceStore{records: map[uuid.UUID]model.AttendanceRecordModel{}}
}

func (s *MemoryAttendanceStore) FindForDay(_ context.Context, userID uuid.UUID, day time.Time) (*model.AttendanceRecordModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(func(r model.AttendanceRecordModel) bool {
		return r.UserID == userID && dayKey(r.Day()).Equal(dayKey(day))
	})
}

func (s *MemoryAttendanceStore) FindOpenForDay(_ context.Context, userID uuid.UUID, day time.Time) (*model.AttendanceRecordModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(func(r model.AttendanceRecordModel) bool {
		return r.UserID == userID && dayKey(r.Day()).Equal(dayKey(day)) && r.CheckOut == nil
	})
}

func (s *MemoryAttendanceStore) FindByID(_ context.Context, id uuid.UUID) (*model.AttendanceRecordModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

// Create enforces the (user, day) uniqueness like the database index does.
func (s *MemoryAttendanceStore) Create(_ context.Context, rec *model.AttendanceRecordModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.UserID == rec.UserID && dayKey(r.Day()).Equal(dayKey(rec.Day())) {
			return ErrDuplicate
		}
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	s.records[rec.ID] = *rec
	return nil
}

func (s *MemoryAttendanceStore) SaveCheckOut(_ context.Context, rec *model.AttendanceRecordModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.records[rec.ID]
	if !ok || cur.CheckOut != nil {
		return ErrNotFound
	}
	cur.CheckOut = rec.CheckOut
	cur.Notes = rec.Notes
	cur.UpdatedAt = time.Now().UTC()
	s.records[rec.ID] = cur
	return nil
}

func (s *MemoryAttendanceStore) Update(_ context.Context, rec *model.AttendanceRecordModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.records[rec.ID]
	if !ok {
		return ErrNotFound
	}
	cur.Status = rec.Status
	cur.Notes = rec.Notes
	cur.CheckIn = rec.CheckIn
	cur.CheckOut = rec.CheckOut
	cur.UpdatedAt = time.Now().UTC()
	s.records[rec.ID] = cur
	return nil
}

func (s *MemoryAttendanceStore) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]model.AttendanceRecordModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.filter(func(r model.AttendanceRecordModel) bool { return r.UserID == userID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryAttendanceStore) ListRange(_ context.Context, f ListFilter) ([]model.AttendanceRecordModel, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.filter(func(r model.AttendanceRecordModel) bool {
		if f.UserID != nil && r.UserID != *f.UserID {
			return false
		}
		d := dayKey(r.Day())
		if !f.From.IsZero() && d.Before(dayKey(f.From)) {
			return false
		}
		if !f.To.IsZero() && d.After(dayKey(f.To)) {
			return false
		}
		return true
	})
	total := int64(len(out))
	if f.Limit > 0 {
		if f.Offset >= len(out) {
			return []model.AttendanceRecordModel{}, total, nil
		}
		out = out[f.Offset:]
		if len(out) > f.Limit {
			out = out[:f.Limit]
		}
	}
	return out, total, nil
}

// Count is the number of stored records.
func (s *MemoryAttendanceStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *MemoryAttendanceStore) lookup(match func(model.AttendanceRecordModel) bool) (*model.AttendanceRecordModel, error) {
	for _, r := range s.records {
		if match(r) {
			r := r
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

// filter returns matches newest day first
func (s *MemoryAttendanceStore) filter(match func(model.AttendanceRecordModel) bool) []model.AttendanceRecordModel {
	out := make([]model.AttendanceRecordModel, 0, len(s.records))
	for _, r := range s.records {
		if match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := dayKey(out[i].Day()), dayKey(out[j].Day())
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
