package dto

import (
	"time"

	"github.com/google/uuid"

	"drama-llm-be/internal/entity"
)

// UserResponse is the sanitized user projection. The password hash never
// leaves the server.
type UserResponse struct {
	Id        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Username  *string    `json:"username"`
	LastLogin *time.Time `json:"last_login"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		Id:        u.Id,
		Email:     u.Email,
		Username:  u.Username,
		LastLogin: u.LastLogin,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
}
