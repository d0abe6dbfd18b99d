package dto

import (
	"time"

	"coindex/internal/api/models"
)

// ExchangeFilterParams enumerates the optional query filters for exchange
// listings. Relationship filters (country, license, fiat, language) require
// joins and de-duplication in the repository.
type ExchangeFilterParams struct {
	Name                string
	HasKYC              *bool
	HasP2P              *bool
	MinTotalReviewCount *int64
	MaxTotalReviewCount *int64
	MinTotalRatingCount *int64
	MaxTotalRatingCount *int64
	CountryID           *int64 // registered in OR available in
	HasLicenseInCountry *int64
	SupportsFiatID      *int64
	SupportsLanguageID  *int64
}

// ExchangeSortBy is a whitelisted sort field plus direction.
type ExchangeSortBy struct {
	Field     string
	Direction SortDirection
}

// ExchangeSortFields maps accepted sort names to their SQL columns.
var ExchangeSortFields = map[string]string{
	"name":                   "items.name",
	"overall_average_rating": "items.overall_average_rating",
	"total_review_count":     "items.total_review_count",
	"total_rating_count":     "items.total_rating_count",
	"trading_volume_24h":     "exchanges.trading_volume_24h",
	"year_founded":           "exchanges.year_founded",
	"created_at":             "items.created_at",
}

// CreateExchangeDTO used for POST /admin/exchanges
type CreateExchangeDTO struct {
	Name               string  `json:"name" binding:"required,min=2,max=255"`
	Slug               *string `json:"slug,omitempty"`
	Overview           *string `json:"overview,omitempty"`
	Description        *string `json:"description,omitempty"`
	LogoURL            *string `json:"logo_url,omitempty"`
	WebsiteURL         *string `json:"website_url,omitempty"`
	ReferralLink       *string `json:"referral_link,omitempty"`
	ReviewsPageContent *string `json:"reviews_page_content,omitempty"`

	YearFounded           *int16 `json:"year_founded,omitempty"`
	RegistrationCountryID *int64 `json:"registration_country_id,omitempty"`
	HeadquartersCountryID *int64 `json:"headquarters_country_id,omitempty"`

	HasKYC         *bool `json:"has_kyc,omitempty"`
	HasP2P         *bool `json:"has_p2p,omitempty"`
	HasCopyTrading *bool `json:"has_copy_trading,omitempty"`
	HasStaking     *bool `json:"has_staking,omitempty"`
	HasFutures     *bool `json:"has_futures,omitempty"`
	HasSpotTrading *bool `json:"has_spot_trading,omitempty"`
	HasDemoTrading *bool `json:"has_demo_trading,omitempty"`

	TradingVolume24h *float64 `json:"trading_volume_24h,omitempty" binding:"omitempty,gte=0"`
	SpotMakerFee     *float64 `json:"spot_maker_fee,omitempty" binding:"omitempty,gte=0"`
	SpotTakerFee     *float64 `json:"spot_taker_fee,omitempty" binding:"omitempty,gte=0"`
	FuturesMakerFee  *float64 `json:"futures_maker_fee,omitempty" binding:"omitempty,gte=0"`
	FuturesTakerFee  *float64 `json:"futures_taker_fee,omitempty" binding:"omitempty,gte=0"`

	FeeStructureSummary *string `json:"fee_structure_summary,omitempty"`
	SecurityDetails     *string `json:"security_details,omitempty"`
	KYCAMLPolicy        *string `json:"kyc_aml_policy,omitempty"`

	AvailableInCountryIDs []int64 `json:"available_in_country_ids,omitempty"`
	LanguageIDs           []int64 `json:"language_ids,omitempty"`
	FiatCurrencyIDs       []int64 `json:"supported_fiat_currency_ids,omitempty"`
	TagIDs                []int64 `json:"tag_ids,omitempty"`
}

// UpdateExchangeDTO used for PUT /admin/exchanges/:slug (partial updates)
type UpdateExchangeDTO struct {
	Name               *string `json:"name,omitempty" binding:"omitempty,min=2,max=255"`
	Slug               *string `json:"slug,omitempty"`
	Overview           *string `json:"overview,omitempty"`
	Description        *string `json:"description,omitempty"`
	LogoURL            *string `json:"logo_url,omitempty"`
	WebsiteURL         *string `json:"website_url,omitempty"`
	ReferralLink       *string `json:"referral_link,omitempty"`
	ReviewsPageContent *string `json:"reviews_page_content,omitempty"`

	YearFounded           *int16 `json:"year_founded,omitempty"`
	RegistrationCountryID *int64 `json:"registration_country_id,omitempty"`
	HeadquartersCountryID *int64 `json:"headquarters_country_id,omitempty"`

	HasKYC         *bool `json:"has_kyc,omitempty"`
	HasP2P         *bool `json:"has_p2p,omitempty"`
	HasCopyTrading *bool `json:"has_copy_trading,omitempty"`
	HasStaking     *bool `json:"has_staking,omitempty"`
	HasFutures     *bool `json:"has_futures,omitempty"`
	HasSpotTrading *bool `json:"has_spot_trading,omitempty"`
	HasDemoTrading *bool `json:"has_demo_trading,omitempty"`

	TradingVolume24h *float64 `json:"trading_volume_24h,omitempty" binding:"omitempty,gte=0"`
	SpotMakerFee     *float64 `json:"spot_maker_fee,omitempty" binding:"omitempty,gte=0"`
	SpotTakerFee     *float64 `json:"spot_taker_fee,omitempty" binding:"omitempty,gte=0"`
	FuturesMakerFee  *float64 `json:"futures_maker_fee,omitempty" binding:"omitempty,gte=0"`
	FuturesTakerFee  *float64 `json:"futures_taker_fee,omitempty" binding:"omitempty,gte=0"`

	FeeStructureSummary *string `json:"fee_structure_summary,omitempty"`
	SecurityDetails     *string `json:"security_details,omitempty"`
	KYCAMLPolicy        *string `json:"kyc_aml_policy,omitempty"`

	AvailableInCountryIDs []int64 `json:"available_in_country_ids,omitempty"`
	LanguageIDs           []int64 `json:"language_ids,omitempty"`
	FiatCurrencyIDs       []int64 `json:"supported_fiat_currency_ids,omitempty"`
	TagIDs                []int64 `json:"tag_ids,omitempty"`
}

// ToModel builds the Item + Exchange pair from the creation payload.
// M2M id lists are resolved by the service.
func (d CreateExchangeDTO) ToModel() models.Exchange {
	slug := ""
	if d.Slug != nil {
		slug = *d.Slug
	}
	return models.Exchange{
		Item: models.Item{
			ItemType:           models.ItemTypeExchange,
			Name:               d.Name,
			Slug:               slug,
			Overview:           d.Overview,
			Description:        d.Description,
			LogoURL:            d.LogoURL,
			WebsiteURL:         d.WebsiteURL,
			ReferralLink:       d.ReferralLink,
			ReviewsPageContent: d.ReviewsPageContent,
		},
		YearFounded:           d.YearFounded,
		RegistrationCountryID: d.RegistrationCountryID,
		HeadquartersCountryID: d.HeadquartersCountryID,
		HasKYC:                d.HasKYC,
		HasP2P:                d.HasP2P,
		HasCopyTrading:        d.HasCopyTrading,
		HasStaking:            d.HasStaking,
		HasFutures:            d.HasFutures,
		HasSpotTrading:        d.HasSpotTrading,
		HasDemoTrading:        d.HasDemoTrading,
		TradingVolume24h:      d.TradingVolume24h,
		SpotMakerFee:          d.SpotMakerFee,
		SpotTakerFee:          d.SpotTakerFee,
		FuturesMakerFee:       d.FuturesMakerFee,
		FuturesTakerFee:       d.FuturesTakerFee,
		FeeStructureSummary:   d.FeeStructureSummary,
		SecurityDetails:       d.SecurityDetails,
		KYCAMLPolicy:          d.KYCAMLPolicy,
	}
}

// ApplyTo copies the provided fields onto an existing exchange.
func (d UpdateExchangeDTO) ApplyTo(e *models.Exchange) {
	if d.Name != nil {
		e.Item.Name = *d.Name
	}
	if d.Slug != nil {
		e.Item.Slug = *d.Slug
	}
	if d.Overview != nil {
		e.Item.Overview = d.Overview
	}
	if d.Description != nil {
		e.Item.Description = d.Description
	}
	if d.LogoURL != nil {
		e.Item.LogoURL = d.LogoURL
	}
	if d.WebsiteURL != nil {
		e.Item.WebsiteURL = d.WebsiteURL
	}
	if d.ReferralLink != nil {
		e.Item.ReferralLink = d.ReferralLink
	}
	if d.ReviewsPageContent != nil {
		e.Item.ReviewsPageContent = d.ReviewsPageContent
	}
	if d.YearFounded != nil {
		e.YearFounded = d.YearFounded
	}
	if d.RegistrationCountryID != nil {
		e.RegistrationCountryID = d.RegistrationCountryID
	}
	if d.HeadquartersCountryID != nil {
		e.HeadquartersCountryID = d.HeadquartersCountryID
	}
	if d.HasKYC != nil {
		e.HasKYC = d.HasKYC
	}
	if d.HasP2P != nil {
		e.HasP2P = d.HasP2P
	}
	if d.HasCopyTrading != nil {
		e.HasCopyTrading = d.HasCopyTrading
	}
	if d.HasStaking != nil {
		e.HasStaking = d.HasStaking
	}
	if d.HasFutures != nil {
		e.HasFutures = d.HasFutures
	}
	if d.HasSpotTrading != nil {
		e.HasSpotTrading = d.HasSpotTrading
	}
	if d.HasDemoTrading != nil {
		e.HasDemoTrading = d.HasDemoTrading
	}
	if d.TradingVolume24h != nil {
		e.TradingVolume24h = d.TradingVolume24h
	}
	if d.SpotMakerFee != nil {
		e.SpotMakerFee = d.SpotMakerFee
	}
	if d.SpotTakerFee != nil {
		e.SpotTakerFee = d.SpotTakerFee
	}
	if d.FuturesMakerFee != nil {
		e.FuturesMakerFee = d.FuturesMakerFee
	}
	if d.FuturesTakerFee != nil {
		e.FuturesTakerFee = d.FuturesTakerFee
	}
	if d.FeeStructureSummary != nil {
		e.FeeStructureSummary = d.FeeStructureSummary
	}
	if d.SecurityDetails != nil {
		e.SecurityDetails = d.SecurityDetails
	}
	if d.KYCAMLPolicy != nil {
		e.KYCAMLPolicy = d.KYCAMLPolicy
	}
}

// ExchangeBriefResponse is the list-view projection.
type ExchangeBriefResponse struct {
	ID                   int64           `json:"id"`
	Name                 string          `json:"name"`
	Slug                 string          `json:"slug"`
	LogoURL              *string         `json:"logo_url,omitempty"`
	OverallAverageRating float64         `json:"overall_average_rating"`
	TotalReviewCount     int64           `json:"total_review_count"`
	TotalRatingCount     int64           `json:"total_rating_count"`
	TradingVolume24h     *float64        `json:"trading_volume_24h,omitempty"`
	YearFounded          *int16          `json:"year_founded,omitempty"`
	HasKYC               *bool           `json:"has_kyc,omitempty"`
	HasP2P               *bool           `json:"has_p2p,omitempty"`
	RegistrationCountry  *models.Country `json:"registration_country,omitempty"`
}

// ExchangeResponse is the detail-view projection, flattening Item fields.
type ExchangeResponse struct {
	ExchangeBriefResponse

	Overview           *string `json:"overview,omitempty"`
	Description        *string `json:"description,omitempty"`
	WebsiteURL         *string `json:"website_url,omitempty"`
	ReferralLink       *string `json:"referral_link,omitempty"`
	ReviewsPageContent *string `json:"reviews_page_content,omitempty"`

	HasCopyTrading *bool `json:"has_copy_trading,omitempty"`
	HasStaking     *bool `json:"has_staking,omitempty"`
	HasFutures     *bool `json:"has_futures,omitempty"`
	HasSpotTrading *bool `json:"has_spot_trading,omitempty"`
	HasDemoTrading *bool `json:"has_demo_trading,omitempty"`

	SpotMakerFee    *float64 `json:"spot_maker_fee,omitempty"`
	SpotTakerFee    *float64 `json:"spot_taker_fee,omitempty"`
	FuturesMakerFee *float64 `json:"futures_maker_fee,omitempty"`
	FuturesTakerFee *float64 `json:"futures_taker_fee,omitempty"`

	FeeStructureSummary *string  `json:"fee_structure_summary,omitempty"`
	SecurityDetails     *string  `json:"security_details,omitempty"`
	KYCAMLPolicy        *string  `json:"kyc_aml_policy,omitempty"`
	LiquidityScore      *float64 `json:"liquidity_score,omitempty"`

	HeadquartersCountry  *models.Country       `json:"headquarters_country,omitempty"`
	AvailableInCountries []models.Country      `json:"available_in_countries,omitempty"`
	Languages            []models.Language     `json:"languages,omitempty"`
	FiatCurrencies       []models.FiatCurrency `json:"supported_fiat_currencies,omitempty"`
	Licenses             []models.License      `json:"licenses,omitempty"`
	SocialLinks          []models.SocialLink   `json:"social_links,omitempty"`
	Tags                 []models.Tag          `json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromExchangeToBriefResponse(e models.Exchange) ExchangeBriefResponse {
	return ExchangeBriefResponse{
		ID:                   e.ID,
		Name:                 e.Item.Name,
		Slug:                 e.Item.Slug,
		LogoURL:              e.Item.LogoURL,
		OverallAverageRating: e.Item.OverallAverageRating,
		TotalReviewCount:     e.Item.TotalReviewCount,
		TotalRatingCount:     e.Item.TotalRatingCount,
		TradingVolume24h:     e.TradingVolume24h,
		YearFounded:          e.YearFounded,
		HasKYC:               e.HasKYC,
		HasP2P:               e.HasP2P,
		RegistrationCountry:  e.RegistrationCountry,
	}
}

func FromExchangeToResponse(e models.Exchange) ExchangeResponse {
	return ExchangeResponse{
		ExchangeBriefResponse: FromExchangeToBriefResponse(e),
		Overview:              e.Item.Overview,
		Description:           e.Item.Description,
		WebsiteURL:            e.Item.WebsiteURL,
		ReferralLink:          e.Item.ReferralLink,
		ReviewsPageContent:    e.Item.ReviewsPageContent,
		HasCopyTrading:        e.HasCopyTrading,
		HasStaking:            e.HasStaking,
		HasFutures:            e.HasFutures,
		HasSpotTrading:        e.HasSpotTrading,
		HasDemoTrading:        e.HasDemoTrading,
		SpotMakerFee:          e.SpotMakerFee,
		SpotTakerFee:          e.SpotTakerFee,
		FuturesMakerFee:       e.FuturesMakerFee,
		FuturesTakerFee:       e.FuturesTakerFee,
		FeeStructureSummary:   e.FeeStructureSummary,
		SecurityDetails:       e.SecurityDetails,
		KYCAMLPolicy:          e.KYCAMLPolicy,
		LiquidityScore:        e.LiquidityScore,
		HeadquartersCountry:   e.HeadquartersCountry,
		AvailableInCountries:  e.AvailableInCountries,
		Languages:             e.Languages,
		FiatCurrencies:        e.FiatCurrencies,
		Licenses:              e.Licenses,
		SocialLinks:           e.SocialLinks,
		Tags:                  e.Item.Tags,
		CreatedAt:             e.Item.CreatedAt,
		UpdatedAt:             e.Item.UpdatedAt,
	}
}
