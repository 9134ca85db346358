package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"emptrack_backend/internals/features/meetings/meetings/model"
)

const (
	ScopeUpcoming = "upcoming"
	ScopePast     = "past"
	ScopeAll      = "all"
)

// ParseScope: empty → upcoming
func ParseScope(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", ScopeUpcoming:
		return ScopeUpcoming, nil
	case ScopePast:
		return ScopePast, nil
	case ScopeAll:
		return ScopeAll, nil
	}
	return "", fmt.Errorf("scope must be upcoming, past or all")
}

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateMeetingRequest struct {
	Title       string      `json:"title" validate:"required,min=2,max=200"`
	Description *string     `json:"description" validate:"omitempty,max=5000"`
	StartTime   time.Time   `json:"start_time" validate:"required"`
	EndTime     time.Time   `json:"end_time" validate:"required,gtfield=StartTime"`
	MeetingLink *string     `json:"meeting_link" validate:"omitempty,url"`
	AttendeeIDs []uuid.UUID `json:"attendee_ids" validate:"max=200"`
}

func (r *CreateMeetingRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = trimOpt(r.Description)
	r.MeetingLink = trimOpt(r.MeetingLink)
}

// ToModel builds the meeting and its pending attendees. The organizer is
// never an attendee of their own meeting and duplicates are dropped.
func (r *CreateMeetingRequest) ToModel(organizer uuid.UUID) model.MeetingModel {
	m := model.MeetingModel{
		ID:          uuid.New(),
		Title:       r.Title,
		Description: r.Description,
		StartTime:   r.StartTime.UTC(),
		EndTime:     r.EndTime.UTC(),
		MeetingLink: r.MeetingLink,
		OrganizerID: organizer,
	}
	for _, id := range UniqueAttendees(r.AttendeeIDs, organizer) {
		m.Attendees = append(m.Attendees, model.MeetingAttendeeModel{
			ID:        uuid.New(),
			MeetingID: m.ID,
			UserID:    id,
			Status:    model.AttendeePending,
		})
	}
	return m
}

func UniqueAttendees(ids []uuid.UUID, organizer uuid.UUID) []uuid.UUID {
	seen := map[uuid.UUID]struct{}{organizer: {}, uuid.Nil: {}}
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

type RSVPRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted declined"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type AttendeeResponse struct {
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name,omitempty"`
	Email       string     `json:"email,omitempty"`
	Status      string     `json:"status"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

type MeetingResponse struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Description *string            `json:"description,omitempty"`
	StartTime   time.Time          `json:"start_time"`
	EndTime     time.Time          `json:"end_time"`
	MeetingLink *string            `json:"meeting_link,omitempty"`
	OrganizerID uuid.UUID          `json:"organizer_id"`
	IsOrganizer bool               `json:"is_organizer"`
	MyStatus    string             `json:"my_status,omitempty"`
	Attendees   []AttendeeResponse `json:"attendees"`
}

// UserLite: name/email lookup for attendee rows
type UserLite struct {
	Name  string
	Email string
}

func FromModel(m *model.MeetingModel, viewer uuid.UUID, users map[uuid.UUID]UserLite) MeetingResponse {
	out := MeetingResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		MeetingLink: m.MeetingLink,
		OrganizerID: m.OrganizerID,
		IsOrganizer: m.OrganizerID == viewer,
		Attendees:   make([]AttendeeResponse, 0, len(m.Attendees)),
	}
	for _, a := range m.Attendees {
		u := users[a.UserID]
		out.Attendees = append(out.Attendees, AttendeeResponse{
			UserID:      a.UserID,
			Name:        u.Name,
			Email:       u.Email,
			Status:      a.Status,
			RespondedAt: a.RespondedAt,
		})
		if a.UserID == viewer {
			out.MyStatus = a.Status
		}
	}
	return out
}

func trimOpt(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}
