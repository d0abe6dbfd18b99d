package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string     `gorm:"primaryKey;type:uuid" json:"id"`
	Email     string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Nickname  string     `gorm:"uniqueIndex;size:100;not null" json:"nickname"`
	AvatarURL *string    `gorm:"size:512" json:"avatar_url,omitempty"`
	Password  string     `gorm:"column:password_hash;size:255;not null" json:"-"`
	Role      string     `gorm:"size:16;default:'user';not null" json:"role"` // "user" or "admin"
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

// IsAdmin reports whether the user holds the admin role.
func (user *User) IsAdmin() bool {
	return user.Role == "admin"
}

func (User) TableName() string {
	return "users"
}
