package dto

import (
	"time"

	"coindex/internal/api/models"
)

type RegisterDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenPairResponse is returned by login and refresh.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"` // always "bearer"
	ExpiresIn    int64  `json:"expires_in"` // access token lifetime, seconds
}

type UpdateProfileDTO struct {
	Nickname  *string `json:"nickname,omitempty" binding:"omitempty,min=3,max=100"`
	AvatarURL *string `json:"avatar_url,omitempty" binding:"omitempty,url"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Nickname  string     `json:"nickname"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

func FromUserToResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

// UserFilterParams is for the admin user listing.
type UserFilterParams struct {
	Email    string
	Nickname string
	Role     string
}
