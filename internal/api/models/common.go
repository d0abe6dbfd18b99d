package models

// Reference data: countries, languages and fiat currencies. Seeded offline,
// read-only at request time.

type Country struct {
	ID            int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	CodeISOAlpha2 string `json:"code_iso_alpha2" gorm:"column:code_iso_alpha2;uniqueIndex;size:2;not null"`
}

func (Country) TableName() string {
	return "countries"
}

type Language struct {
	ID         int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	CodeISO639 string `json:"code_iso_639_1" gorm:"column:code_iso_639_1;uniqueIndex;size:2;not null"`
}

func (Language) TableName() string {
	return "languages"
}

type FiatCurrency struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	CodeISO4217 string `json:"code_iso_4217" gorm:"column:code_iso_4217;uniqueIndex;size:3;not null"`
}

func (FiatCurrency) TableName() string {
	return "fiat_currencies"
}
