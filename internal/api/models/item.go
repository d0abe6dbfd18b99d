package models

import "time"

// ItemType discriminates the concrete kind of a listed item.
type ItemType string

const (
	ItemTypeExchange ItemType = "exchange"
	ItemTypeBook     ItemType = "book"
)

// Item is the shared base entity for anything rankable/reviewable (exchanges,
// books). Concrete kinds keep their own table joined on the item id.
//
// The three aggregate fields are derived from approved reviews and recomputed
// by the review service; they are never written directly by handlers.
type Item struct {
	ID       int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	ItemType ItemType `json:"item_type" gorm:"column:item_type;size:16;not null;index"`

	Name               string  `json:"name" gorm:"size:255;not null;index"`
	Slug               string  `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Overview           *string `json:"overview,omitempty" gorm:"type:text"`
	Description        *string `json:"description,omitempty" gorm:"type:text"`
	LogoURL            *string `json:"logo_url,omitempty" gorm:"size:512"`
	WebsiteURL         *string `json:"website_url,omitempty" gorm:"size:512"`
	ReferralLink       *string `json:"referral_link,omitempty" gorm:"size:512"`
	ReviewsPageContent *string `json:"reviews_page_content,omitempty" gorm:"type:text"`

	OverallAverageRating float64 `json:"overall_average_rating" gorm:"type:decimal(3,2);default:0;index"`
	TotalReviewCount     int64   `json:"total_review_count" gorm:"default:0;index"`
	TotalRatingCount     int64   `json:"total_rating_count" gorm:"default:0;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Tags    []Tag    `json:"tags,omitempty" gorm:"many2many:item_tags;constraint:OnDelete:CASCADE;"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE;"`
}

func (Item) TableName() string {
	return "items"
}
