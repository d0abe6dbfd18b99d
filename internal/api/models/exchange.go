package models

import "time"

// Exchange carries the exchange-specific payload for an Item of type
// "exchange". The row shares its primary key with the items table.
type Exchange struct {
	ID   int64 `json:"id" gorm:"column:item_id;primaryKey"`
	Item Item  `json:"item" gorm:"foreignKey:ID;references:ID;constraint:OnDelete:CASCADE;"`

	YearFounded             *int16 `json:"year_founded,omitempty"`
	RegistrationCountryID   *int64 `json:"registration_country_id,omitempty"`
	HeadquartersCountryID   *int64 `json:"headquarters_country_id,omitempty"`

	HasKYC         *bool `json:"has_kyc,omitempty"`
	HasP2P         *bool `json:"has_p2p,omitempty"`
	HasCopyTrading *bool `json:"has_copy_trading,omitempty"`
	HasStaking     *bool `json:"has_staking,omitempty"`
	HasFutures     *bool `json:"has_futures,omitempty"`
	HasSpotTrading *bool `json:"has_spot_trading,omitempty"`
	HasDemoTrading *bool `json:"has_demo_trading,omitempty"`

	TradingVolume24h *float64 `json:"trading_volume_24h,omitempty" gorm:"type:decimal(20,2);index"`

	SpotMakerFee    *float64 `json:"spot_maker_fee,omitempty" gorm:"type:decimal(8,5)"`
	SpotTakerFee    *float64 `json:"spot_taker_fee,omitempty" gorm:"type:decimal(8,5)"`
	FuturesMakerFee *float64 `json:"futures_maker_fee,omitempty" gorm:"type:decimal(8,5)"`
	FuturesTakerFee *float64 `json:"futures_taker_fee,omitempty" gorm:"type:decimal(8,5)"`

	FeeStructureSummary *string `json:"fee_structure_summary,omitempty" gorm:"type:text"`
	SecurityDetails     *string `json:"security_details,omitempty" gorm:"type:text"`
	KYCAMLPolicy        *string `json:"kyc_aml_policy,omitempty" gorm:"column:kyc_aml_policy;type:text"`

	LiquidityScore          *float64 `json:"liquidity_score,omitempty" gorm:"type:decimal(5,2)"`
	NewbieFriendlinessScore *float64 `json:"newbie_friendliness_score,omitempty" gorm:"type:decimal(3,2)"`

	// Associations
	RegistrationCountry  *Country       `json:"registration_country,omitempty" gorm:"foreignKey:RegistrationCountryID"`
	HeadquartersCountry  *Country       `json:"headquarters_country,omitempty" gorm:"foreignKey:HeadquartersCountryID"`
	AvailableInCountries []Country      `json:"available_in_countries,omitempty" gorm:"many2many:exchange_availability;constraint:OnDelete:CASCADE;"`
	Languages            []Language     `json:"languages,omitempty" gorm:"many2many:exchange_languages;constraint:OnDelete:CASCADE;"`
	FiatCurrencies       []FiatCurrency `json:"supported_fiat_currencies,omitempty" gorm:"many2many:exchange_fiat_support;constraint:OnDelete:CASCADE;"`
	Licenses             []License      `json:"licenses,omitempty" gorm:"foreignKey:ExchangeID;constraint:OnDelete:CASCADE;"`
	SocialLinks          []SocialLink   `json:"social_links,omitempty" gorm:"foreignKey:ExchangeID;constraint:OnDelete:CASCADE;"`
}

func (Exchange) TableName() string {
	return "exchanges"
}

type License struct {
	ID                    int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	ExchangeID            int64      `json:"exchange_id" gorm:"not null;index"`
	JurisdictionCountryID int64      `json:"jurisdiction_country_id" gorm:"not null"`
	LicenseNumber         *string    `json:"license_number,omitempty" gorm:"size:255"`
	Status                *string    `json:"status,omitempty" gorm:"size:50"`
	IssueDate             *time.Time `json:"issue_date,omitempty"`
	ExpiryDate            *time.Time `json:"expiry_date,omitempty"`
	CreatedAt             time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	JurisdictionCountry *Country `json:"jurisdiction_country,omitempty" gorm:"foreignKey:JurisdictionCountryID"`
}

func (License) TableName() string {
	return "licenses"
}

type SocialLink struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	ExchangeID   int64  `json:"exchange_id" gorm:"not null;index:idx_social_exchange_platform,unique"`
	PlatformName string `json:"platform_name" gorm:"size:50;not null;index:idx_social_exchange_platform,unique"`
	URL          string `json:"url" gorm:"size:512;not null"`
}

func (SocialLink) TableName() string {
	return "exchange_social_links"
}
