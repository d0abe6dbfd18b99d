package models

import "time"

// GuideItem is a how-to article written by a user, optionally tied to an
// exchange.
type GuideItem struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string    `json:"title" gorm:"size:512;not null"`
	Content         *string   `json:"content,omitempty" gorm:"type:text"`
	CreatedByUserID *string   `json:"created_by_user_id,omitempty" gorm:"type:uuid"`
	ExchangeID      *int64    `json:"exchange_id,omitempty" gorm:"index"`
	PublishedAt     time.Time `json:"published_at" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Creator  *User     `json:"creator,omitempty" gorm:"foreignKey:CreatedByUserID;constraint:OnDelete:SET NULL;"`
	Exchange *Exchange `json:"exchange,omitempty" gorm:"foreignKey:ExchangeID;constraint:OnDelete:SET NULL;"`
}

func (GuideItem) TableName() string {
	return "guide_items"
}
