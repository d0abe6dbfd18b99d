package service

import (
	"context"
	"errors"
	"strings"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"
	"coindex/internal/api/repository"
	"coindex/internal/cache"
)

var ErrSlugTaken = errors.New("slug already in use")

// overviewFallback is where the redirect endpoint sends visitors when an
// exchange has no website on file.
const overviewFallback = "/exchange/overview.html?slug="

type ExchangeService interface {
	List(ctx context.Context, f dto.ExchangeFilterParams, sort dto.ExchangeSortBy, page dto.PageParams) (*dto.Paginated[dto.ExchangeBriefResponse], error)
	GetBySlug(ctx context.Context, slug string) (*dto.ExchangeResponse, error)
	RedirectTarget(ctx context.Context, slug string) (string, error)
	Create(ctx context.Context, in dto.CreateExchangeDTO) (*dto.ExchangeResponse, error)
	Update(ctx context.Context, slug string, in dto.UpdateExchangeDTO) (*dto.ExchangeResponse, error)
	Delete(ctx context.Context, slug string) error
}

type exchangeService struct {
	exchangeRepo  *repository.ExchangeRepo
	referenceRepo *repository.ReferenceRepo
	tagRepo       *repository.TagRepo
	itemCache     *cache.ItemCache
}

func NewExchangeService(
	exchangeRepo *repository.ExchangeRepo,
	referenceRepo *repository.ReferenceRepo,
	tagRepo *repository.TagRepo,
	itemCache *cache.ItemCache,
) ExchangeService {
	return &exchangeService{
		exchangeRepo:  exchangeRepo,
		referenceRepo: referenceRepo,
		tagRepo:       tagRepo,
		itemCache:     itemCache,
	}
}

func (s *exchangeService) List(ctx context.Context, f dto.ExchangeFilterParams, sort dto.ExchangeSortBy, page dto.PageParams) (*dto.Paginated[dto.ExchangeBriefResponse], error) {
	exchanges, total, err := s.exchangeRepo.List(ctx, f, sort, page)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.ExchangeBriefResponse, 0, len(exchanges))
	for _, e := range exchanges {
		responses = append(responses, dto.FromExchangeToBriefResponse(e))
	}
	paginated := dto.NewPaginated(responses, total, page)
	return &paginated, nil
}

func (s *exchangeService) GetBySlug(ctx context.Context, slug string) (*dto.ExchangeResponse, error) {
	var cached dto.ExchangeResponse
	if s.itemCache.Get(ctx, "exchange", slug, &cached) {
		return &cached, nil
	}

	e, err := s.exchangeRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, translateDBError(err)
	}
	resp := dto.FromExchangeToResponse(*e)
	s.itemCache.Set(ctx, "exchange", slug, resp)
	return &resp, nil
}

// RedirectTarget resolves the outbound link for an exchange: the referral
// link when set, else the website, else the internal overview page.
func (s *exchangeService) RedirectTarget(ctx context.Context, slug string) (string, error) {
	e, err := s.exchangeRepo.GetBySlug(ctx, slug)
	if err != nil {
		return "", translateDBError(err)
	}
	if e.Item.ReferralLink != nil && *e.Item.ReferralLink != "" {
		return *e.Item.ReferralLink, nil
	}
	if e.Item.WebsiteURL != nil && *e.Item.WebsiteURL != "" {
		return *e.Item.WebsiteURL, nil
	}
	return overviewFallback + slug, nil
}

func (s *exchangeService) Create(ctx context.Context, in dto.CreateExchangeDTO) (*dto.ExchangeResponse, error) {
	e := in.ToModel()
	if e.Item.Slug == "" {
		e.Item.Slug = Slugify(e.Item.Name)
	}

	if _, err := s.exchangeRepo.GetBySlug(ctx, e.Item.Slug); err == nil {
		return nil, ErrSlugTaken
	}

	assoc, err := s.resolveAssociations(ctx, in.AvailableInCountryIDs, in.LanguageIDs, in.FiatCurrencyIDs)
	if err != nil {
		return nil, err
	}
	e.AvailableInCountries = assoc.countries
	e.Languages = assoc.languages
	e.FiatCurrencies = assoc.fiats

	tags, err := s.tagRepo.GetByIDs(ctx, in.TagIDs)
	if err != nil {
		return nil, translateDBError(err)
	}
	e.Item.Tags = tags

	if err := s.exchangeRepo.Create(ctx, &e); err != nil {
		return nil, translateDBError(err)
	}
	return s.reload(ctx, e.ID)
}

func (s *exchangeService) Update(ctx context.Context, slug string, in dto.UpdateExchangeDTO) (*dto.ExchangeResponse, error) {
	e, err := s.exchangeRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, translateDBError(err)
	}

	if in.Slug != nil && *in.Slug != e.Item.Slug {
		if _, err := s.exchangeRepo.GetBySlug(ctx, *in.Slug); err == nil {
			return nil, ErrSlugTaken
		}
	}
	in.ApplyTo(e)

	if err := s.exchangeRepo.Update(ctx, e); err != nil {
		return nil, translateDBError(err)
	}

	if in.AvailableInCountryIDs != nil {
		countries, err := s.referenceRepo.GetCountriesByIDs(ctx, in.AvailableInCountryIDs)
		if err != nil {
			return nil, translateDBError(err)
		}
		if err := s.exchangeRepo.ReplaceAssociation(ctx, e, "AvailableInCountries", &countries); err != nil {
			return nil, err
		}
	}
	if in.LanguageIDs != nil {
		languages, err := s.referenceRepo.GetLanguagesByIDs(ctx, in.LanguageIDs)
		if err != nil {
			return nil, translateDBError(err)
		}
		if err := s.exchangeRepo.ReplaceAssociation(ctx, e, "Languages", &languages); err != nil {
			return nil, err
		}
	}
	if in.FiatCurrencyIDs != nil {
		fiats, err := s.referenceRepo.GetFiatCurrenciesByIDs(ctx, in.FiatCurrencyIDs)
		if err != nil {
			return nil, translateDBError(err)
		}
		if err := s.exchangeRepo.ReplaceAssociation(ctx, e, "FiatCurrencies", &fiats); err != nil {
			return nil, err
		}
	}
	if in.TagIDs != nil {
		tags, err := s.tagRepo.GetByIDs(ctx, in.TagIDs)
		if err != nil {
			return nil, translateDBError(err)
		}
		if err := s.exchangeRepo.ReplaceTags(ctx, e, tags); err != nil {
			return nil, err
		}
	}

	// the old slug entry dies either way; a renamed slug never had one
	s.itemCache.Invalidate(ctx, "exchange", slug)
	return s.reload(ctx, e.ID)
}

func (s *exchangeService) Delete(ctx context.Context, slug string) error {
	e, err := s.exchangeRepo.GetBySlug(ctx, slug)
	if err != nil {
		return translateDBError(err)
	}
	if err := s.exchangeRepo.Delete(ctx, e.ID); err != nil {
		return translateDBError(err)
	}
	s.itemCache.Invalidate(ctx, "exchange", slug)
	return nil
}

func (s *exchangeService) reload(ctx context.Context, id int64) (*dto.ExchangeResponse, error) {
	e, err := s.exchangeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromExchangeToResponse(*e)
	return &resp, nil
}

type exchangeAssociations struct {
	countries []models.Country
	languages []models.Language
	fiats     []models.FiatCurrency
}

func (s *exchangeService) resolveAssociations(ctx context.Context, countryIDs, languageIDs, fiatIDs []int64) (*exchangeAssociations, error) {
	countries, err := s.referenceRepo.GetCountriesByIDs(ctx, countryIDs)
	if err != nil {
		return nil, translateDBError(err)
	}
	languages, err := s.referenceRepo.GetLanguagesByIDs(ctx, languageIDs)
	if err != nil {
		return nil, translateDBError(err)
	}
	fiats, err := s.referenceRepo.GetFiatCurrenciesByIDs(ctx, fiatIDs)
	if err != nil {
		return nil, translateDBError(err)
	}
	return &exchangeAssociations{countries: countries, languages: languages, fiats: fiats}, nil
}

// Slugify lowercases the name and collapses runs of non-alphanumerics into
// single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
