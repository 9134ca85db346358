package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	uModel "emptrack_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// UpdateMeRequest: partial update of the caller's own profile
type UpdateMeRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Position       *string `json:"position,omitempty" validate:"omitempty,max=100"`
	Department     *string `json:"department,omitempty" validate:"omitempty,max=100"`
	GithubUsername *string `json:"github_username,omitempty" validate:"omitempty,max=100"`
}

// ToUpdateMap: only fields that were sent; blank optional strings clear the column
func (r *UpdateMeRequest) ToUpdateMap() map[string]any {
	out := map[string]any{}
	if r.Name != nil {
		out["name"] = strings.TrimSpace(*r.Name)
	}
	setOpt := func(col string, v *string) {
		if v == nil {
			return
		}
		s := strings.TrimSpace(*v)
		if s == "" {
			out[col] = nil
			return
		}
		out[col] = s
	}
	setOpt("position", r.Position)
	setOpt("department", r.Department)
	setOpt("github_username", r.GithubUsername)
	return out
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Position       *string   `json:"position,omitempty"`
	Department     *string   `json:"department,omitempty"`
	GithubUsername *string   `json:"github_username,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromModel(u *uModel.UserModel) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		Position:       u.Position,
		Department:     u.Department,
		GithubUsername: u.GithubUsername,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
}

func FromModels(in []uModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(in))
	for i := range in {
		out = append(out, FromModel(&in[i]))
	}
	return out
}
