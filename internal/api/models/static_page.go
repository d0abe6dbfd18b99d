package models

import "time"

// StaticPage holds editorial content like "about" or "faq", addressed by slug.
type StaticPage struct {
	ID                  int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug                string    `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	Title               string    `json:"title" gorm:"size:255;not null"`
	Content             string    `json:"content" gorm:"type:text;not null"`
	LastUpdatedByUserID *string   `json:"last_updated_by_user_id,omitempty" gorm:"type:uuid"`
	CreatedAt           time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	LastUpdatedBy *User `json:"last_updated_by,omitempty" gorm:"foreignKey:LastUpdatedByUserID;constraint:OnDelete:SET NULL;"`
}

func (StaticPage) TableName() string {
	return "static_pages"
}
