package models

type Tag struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Description *string `json:"description,omitempty" gorm:"type:text"`
}

func (Tag) TableName() string {
	return "tags"
}
