package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the users table
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	GoogleID       *string   `gorm:"size:255;uniqueIndex" json:"google_id,omitempty"`
	Role           string    `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	Position       *string   `gorm:"size:100" json:"position,omitempty"`
	Department     *string   `gorm:"size:100" json:"department,omitempty"`
	GithubUsername *string   `gorm:"size:100" json:"github_username,omitempty"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}
