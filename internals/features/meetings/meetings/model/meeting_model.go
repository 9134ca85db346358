package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	AttendeePending  = "pending"
	AttendeeAccepted = "accepted"
	AttendeeDeclined = "declined"
)

// MeetingModel represents the `meetings` table
type MeetingModel struct {
	ID          uuid.UUID `json:"meeting_id" gorm:"column:meeting_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `json:"meeting_title" gorm:"column:meeting_title;type:varchar(200);not null"`
	Description *string   `json:"meeting_description" gorm:"column:meeting_description;type:text"`
	StartTime   time.Time `json:"meeting_start_time" gorm:"column:meeting_start_time;type:timestamptz;not null;index:idx_meetings_start"`
	EndTime     time.Time `json:"meeting_end_time" gorm:"column:meeting_end_time;type:timestamptz;not null"`
	MeetingLink *string   `json:"meeting_link" gorm:"column:meeting_link;type:text"`
	OrganizerID uuid.UUID `json:"meeting_organizer_id" gorm:"column:meeting_organizer_id;type:uuid;not null;index:idx_meetings_organizer"`

	CreatedAt time.Time `json:"meeting_created_at" gorm:"column:meeting_created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `json:"meeting_updated_at" gorm:"column:meeting_updated_at;not null;autoUpdateTime"`

	Attendees []MeetingAttendeeModel `json:"attendees,omitempty" gorm:"foreignKey:MeetingID;references:ID;constraint:OnDelete:CASCADE"`
}

func (MeetingModel) TableName() string { return "meetings" }

// MeetingAttendeeModel represents `meeting_attendees`, one row per (meeting, user)
type MeetingAttendeeModel struct {
	ID          uuid.UUID  `json:"meeting_attendee_id" gorm:"column:meeting_attendee_id;type:uuid;default:gen_random_uuid();primaryKey"`
	MeetingID   uuid.UUID  `json:"meeting_attendee_meeting_id" gorm:"column:meeting_attendee_meeting_id;type:uuid;not null;uniqueIndex:uq_meeting_attendee,priority:1"`
	UserID      uuid.UUID  `json:"meeting_attendee_user_id" gorm:"column:meeting_attendee_user_id;type:uuid;not null;uniqueIndex:uq_meeting_attendee,priority:2;index:idx_meeting_attendees_user"`
	Status      string     `json:"meeting_attendee_status" gorm:"column:meeting_attendee_status;type:varchar(16);not null;default:'pending'"`
	RespondedAt *time.Time `json:"meeting_attendee_responded_at" gorm:"column:meeting_attendee_responded_at;type:timestamptz"`
	CreatedAt   time.Time  `json:"meeting_attendee_created_at" gorm:"column:meeting_attendee_created_at;not null;autoCreateTime"`
}

func (MeetingAttendeeModel) TableName() string { return "meeting_attendees" }
