package repository

import (
	"context"
	"fmt"

	"coindex/internal/api/models"

	"gorm.io/gorm"
)

// ReferenceRepo serves the read-only lookup tables: countries, languages
// and fiat currencies.
type ReferenceRepo struct {
	db *gorm.DB
}

func NewReferenceRepo(db *gorm.DB) *ReferenceRepo {
	return &ReferenceRepo{db: db}
}

func (r *ReferenceRepo) ListCountries(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	if err := r.db.WithContext(ctx).Order("name asc").Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return countries, nil
}

func (r *ReferenceRepo) ListLanguages(ctx context.Context) ([]models.Language, error) {
	var languages []models.Language
	if err := r.db.WithContext(ctx).Order("name asc").Find(&languages).Error; err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return languages, nil
}

func (r *ReferenceRepo) ListFiatCurrencies(ctx context.Context) ([]models.FiatCurrency, error) {
	var currencies []models.FiatCurrency
	if err := r.db.WithContext(ctx).Order("code_iso_4217 asc").Find(&currencies).Error; err != nil {
		return nil, fmt.Errorf("list fiat currencies: %w", err)
	}
	return currencies, nil
}

func (r *ReferenceRepo) GetCountryByID(ctx context.Context, id int64) (*models.Country, error) {
	var country models.Country
	if err := r.db.WithContext(ctx).First(&country, id).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *ReferenceRepo) GetFiatCurrencyByID(ctx context.Context, id int64) (*models.FiatCurrency, error) {
	var currency models.FiatCurrency
	if err := r.db.WithContext(ctx).First(&currency, id).Error; err != nil {
		return nil, err
	}
	return &currency, nil
}

// FindCountryByAlpha2 resolves an ISO 3166-1 alpha-2 code, used by the
// market sync job to map provider country strings to our rows.
func (r *ReferenceRepo) FindCountryByAlpha2(ctx context.Context, code string) (*models.Country, error) {
	var country models.Country
	if err := r.db.WithContext(ctx).Where("code_iso_alpha2 = ?", code).First(&country).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

// FindCountryByName resolves a country by exact name, case-insensitive.
func (r *ReferenceRepo) FindCountryByName(ctx context.Context, name string) (*models.Country, error) {
	var country models.Country
	if err := r.db.WithContext(ctx).Where("name ILIKE ?", name).First(&country).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

// GetCountriesByIDs loads the given countries, erroring when any id is
// unknown.
func (r *ReferenceRepo) GetCountriesByIDs(ctx context.Context, ids []int64) ([]models.Country, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var countries []models.Country
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("load countries: %w", err)
	}
	if len(countries) != len(ids) {
		return nil, gorm.ErrRecordNotFound
	}
	return countries, nil
}

func (r *ReferenceRepo) GetLanguagesByIDs(ctx context.Context, ids []int64) ([]models.Language, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var languages []models.Language
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&languages).Error; err != nil {
		return nil, fmt.Errorf("load languages: %w", err)
	}
	if len(languages) != len(ids) {
		return nil, gorm.ErrRecordNotFound
	}
	return languages, nil
}

func (r *ReferenceRepo) GetFiatCurrenciesByIDs(ctx context.Context, ids []int64) ([]models.FiatCurrency, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var currencies []models.FiatCurrency
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&currencies).Error; err != nil {
		return nil, fmt.Errorf("load fiat currencies: %w", err)
	}
	if len(currencies) != len(ids) {
		return nil, gorm.ErrRecordNotFound
	}
	return currencies, nil
}
