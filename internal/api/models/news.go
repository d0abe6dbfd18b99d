package models

import "time"

// NewsItem is an independent content entity, optionally linked to one or more
// exchanges.
type NewsItem struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string    `json:"title" gorm:"size:512;not null"`
	Content         *string   `json:"content,omitempty" gorm:"type:text"`
	SourceName      *string   `json:"source_name,omitempty" gorm:"size:255"`
	SourceURL       *string   `json:"source_url,omitempty" gorm:"size:512"`
	PublishedAt     time.Time `json:"published_at" gorm:"not null;index"`
	CreatedByUserID *string   `json:"created_by_user_id,omitempty" gorm:"type:uuid"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Creator   *User      `json:"creator,omitempty" gorm:"foreignKey:CreatedByUserID;constraint:OnDelete:SET NULL;"`
	Exchanges []Exchange `json:"exchanges,omitempty" gorm:"many2many:news_item_exchanges;constraint:OnDelete:CASCADE;"`
}

func (NewsItem) TableName() string {
	return "news_items"
}
