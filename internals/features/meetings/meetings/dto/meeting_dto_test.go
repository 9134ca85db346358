package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"emptrack_backend/internals/features/meetings/meetings/model"
	helper "emptrack_backend/internals/helpers"
)

func TestParseScope(t *testing.T) {
	for in, want := range map[string]string{"": ScopeUpcoming, "PAST": ScopePast, " all ": ScopeAll, "upcoming": ScopeUpcoming} {
		got, err := ParseScope(in)
		if err != nil || got != want {
			t.Errorf("ParseScope(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseScope("tomorrow"); err == nil {
		t.Error("expected error for unknown scope")
	}
}

func TestToModelDropsOrganizerAndDuplicates(t *testing.T) {
	organizer, a, b := uuid.New(), uuid.New(), uuid.New()
	req := CreateMeetingRequest{
		Title:       "Retro",
		StartTime:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		AttendeeIDs: []uuid.UUID{a, organizer, b, a, uuid.Nil},
	}
	m := req.ToModel(organizer)

	if len(m.Attendees) != 2 || m.Attendees[0].UserID != a || m.Attendees[1].UserID != b {
		t.Fatalf("attendees = %+v", m.Attendees)
	}
	for _, at := range m.Attendees {
		if at.Status != model.AttendeePending || at.MeetingID != m.ID {
			t.Fatalf("attendee = %+v", at)
		}
	}

	resp := FromModel(&m, a, map[uuid.UUID]UserLite{a: {Name: "Ana", Email: "ana@example.com"}})
	if resp.IsOrganizer || resp.MyStatus != model.AttendeePending || resp.Attendees[0].Name != "Ana" {
		t.Fatalf("response = %+v", resp)
	}
	if !FromModel(&m, organizer, nil).IsOrganizer {
		t.Fatal("organizer view must be flagged")
	}
}

func TestCreateMeetingValidation(t *testing.T) {
	v := helper.NewValidator()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	bad := "not a url"

	cases := []struct {
		name  string
		req   CreateMeetingRequest
		field string
	}{
		{"missing title", CreateMeetingRequest{StartTime: start, EndTime: start.Add(time.Hour)}, "title"},
		{"end before start", CreateMeetingRequest{Title: "x1", StartTime: start, EndTime: start.Add(-time.Hour)}, "end_time"},
		{"end equals start", CreateMeetingRequest{Title: "x1", StartTime: start, EndTime: start}, "end_time"},
		{"bad link", CreateMeetingRequest{Title: "x1", StartTime: start, EndTime: start.Add(time.Hour), MeetingLink: &bad}, "meeting_link"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(&tc.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if _, ok := helper.ValidationFieldErrors(err)[tc.field]; !ok {
				t.Fatalf("errors = %v, want field %s", helper.ValidationFieldErrors(err), tc.field)
			}
		})
	}

	ok := CreateMeetingRequest{Title: "Standup", StartTime: start, EndTime: start.Add(15 * time.Minute)}
	if err := v.Struct(&ok); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}
