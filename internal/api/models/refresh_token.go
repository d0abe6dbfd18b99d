package models

import "time"

// RefreshToken tracks an issued refresh token id so rotation can revoke the
// token that was just redeemed.
type RefreshToken struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
