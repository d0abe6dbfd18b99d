package service

import (
	"context"

	"coindex/internal/api/models"
	"coindex/internal/api/repository"
)

// ReferenceService serves the lookup tables used by filters and forms.
type ReferenceService interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	GetCountry(ctx context.Context, id int64) (*models.Country, error)
	ListLanguages(ctx context.Context) ([]models.Language, error)
	ListFiatCurrencies(ctx context.Context) ([]models.FiatCurrency, error)
	GetFiatCurrency(ctx context.Context, id int64) (*models.FiatCurrency, error)
}

type referenceService struct {
	referenceRepo *repository.ReferenceRepo
}

func NewReferenceService(referenceRepo *repository.ReferenceRepo) ReferenceService {
	return &referenceService{referenceRepo: referenceRepo}
}

func (s *referenceService) ListCountries(ctx context.Context) ([]models.Country, error) {
	return s.referenceRepo.ListCountries(ctx)
}

func (s *referenceService) GetCountry(ctx context.Context, id int64) (*models.Country, error) {
	country, err := s.referenceRepo.GetCountryByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}
	return country, nil
}

func (s *referenceService) ListLanguages(ctx context.Context) ([]models.Language, error) {
	return s.referenceRepo.ListLanguages(ctx)
}

func (s *referenceService) ListFiatCurrencies(ctx context.Context) ([]models.FiatCurrency, error) {
	return s.referenceRepo.ListFiatCurrencies(ctx)
}

func (s *referenceService) GetFiatCurrency(ctx context.Context, id int64) (*models.FiatCurrency, error) {
	currency, err := s.referenceRepo.GetFiatCurrencyByID(ctx, id)
	if err != nil {
		return nil, translateDBError(err)
	}
	return currency, nil
}
