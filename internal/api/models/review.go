package models

import "time"

// ModerationStatus is the lifecycle state of a review.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// Valid reports whether s is one of the known moderation states.
func (s ModerationStatus) Valid() bool {
	switch s {
	case ModerationPending, ModerationApproved, ModerationRejected:
		return true
	}
	return false
}

// Review belongs to exactly one Item and to either a registered user or a
// guest name, never both. Only approved reviews contribute to the item
// aggregates.
type Review struct {
	ID        int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	ItemID    int64   `json:"item_id" gorm:"not null;index:idx_reviews_item_status,priority:1"`
	UserID    *string `json:"user_id,omitempty" gorm:"type:uuid;index"`
	GuestName *string `json:"guest_name,omitempty" gorm:"size:100"`

	Rating  int16   `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment *string `json:"comment,omitempty" gorm:"type:text"`

	ModerationStatus  ModerationStatus `json:"moderation_status" gorm:"size:16;not null;default:'pending';index:idx_reviews_item_status,priority:2"`
	ModeratorNotes    *string          `json:"moderator_notes,omitempty" gorm:"type:text"`
	ModeratedByUserID *string          `json:"moderated_by_user_id,omitempty" gorm:"type:uuid"`
	ModeratedAt       *time.Time       `json:"moderated_at,omitempty"`

	UsefulVotesCount    int `json:"useful_votes_count" gorm:"not null;default:0"`
	NotUsefulVotesCount int `json:"not_useful_votes_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User        *User              `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Moderator   *User              `json:"moderator,omitempty" gorm:"foreignKey:ModeratedByUserID;constraint:OnDelete:SET NULL;"`
	Item        *Item              `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	Screenshots []ReviewScreenshot `json:"screenshots,omitempty" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}

type ReviewScreenshot struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewID      int64     `json:"review_id" gorm:"not null;index"`
	FileURL       string    `json:"file_url" gorm:"size:512;not null"`
	FileSizeBytes *int64    `json:"file_size_bytes,omitempty"`
	MimeType      *string   `json:"mime_type,omitempty" gorm:"size:50"`
	UploadedAt    time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}

func (ReviewScreenshot) TableName() string {
	return "review_screenshots"
}

// ReviewUsefulnessVote records one vote per (review, user) pair.
type ReviewUsefulnessVote struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewID int64     `json:"review_id" gorm:"not null;index:idx_vote_review_user,unique"`
	UserID   string    `json:"user_id" gorm:"type:uuid;not null;index:idx_vote_review_user,unique"`
	IsUseful bool      `json:"is_useful" gorm:"not null"`
	VotedAt  time.Time `json:"voted_at" gorm:"autoCreateTime"`
}

func (ReviewUsefulnessVote) TableName() string {
	return "review_usefulness_votes"
}
