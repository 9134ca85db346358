package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TypeCommit      = "commit"
	TypePullRequest = "pull_request"
	TypeIssue       = "issue"
	TypeReview      = "review"
	TypeOther       = "other"
)

var ActivityTypes = []string{TypeCommit, TypePullRequest, TypeIssue, TypeReview, TypeOther}

// GithubActivityModel represents `github_activities`. ExternalID (commit sha or
// event id) is unique per user so repeated syncs do not duplicate rows.
type GithubActivityModel struct {
	ID         uuid.UUID      `json:"github_activity_id" gorm:"column:github_activity_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID      `json:"github_activity_user_id" gorm:"column:github_activity_user_id;type:uuid;not null;uniqueIndex:uq_github_activity_user_external,priority:1;index:idx_github_activity_user_time,priority:1"`
	Type       string         `json:"github_activity_type" gorm:"column:github_activity_type;type:varchar(20);not null"`
	Repository string         `json:"github_activity_repository" gorm:"column:github_activity_repository;type:varchar(200);not null"`
	Title      string         `json:"github_activity_title" gorm:"column:github_activity_title;type:text;not null"`
	URL        *string        `json:"github_activity_url" gorm:"column:github_activity_url;type:text"`
	OccurredAt time.Time      `json:"github_activity_occurred_at" gorm:"column:github_activity_occurred_at;type:timestamptz;not null;index:idx_github_activity_user_time,priority:2,sort:desc"`
	ExternalID string         `json:"github_activity_external_id" gorm:"column:github_activity_external_id;type:varchar(100);not null;uniqueIndex:uq_github_activity_user_external,priority:2"`
	Payload    datatypes.JSON `json:"-" gorm:"column:github_activity_payload;type:jsonb"`
	CreatedAt  time.Time      `json:"github_activity_created_at" gorm:"column:github_activity_created_at;not null;autoCreateTime"`
}

func (GithubActivityModel) TableName() string { return "github_activities" }
