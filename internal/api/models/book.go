package models

// Book carries the book-specific payload for an Item of type "book".
// Item.Name serves as the title and Item.LogoURL as the cover image.
type Book struct {
	ID   int64 `json:"id" gorm:"column:item_id;primaryKey"`
	Item Item  `json:"item" gorm:"foreignKey:ID;references:ID;constraint:OnDelete:CASCADE;"`

	Year      *int16  `json:"year,omitempty"`
	Author    *string `json:"author,omitempty" gorm:"size:255"`
	Publisher *string `json:"publisher,omitempty" gorm:"size:255"`
	Pages     *int    `json:"pages,omitempty"`
	Number    *string `json:"number,omitempty" gorm:"size:50;index"` // ISBN, ASIN or similar
}

func (Book) TableName() string {
	return "books"
}
