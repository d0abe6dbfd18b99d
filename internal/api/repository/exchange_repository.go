package repository

import (
	"context"
	"fmt"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"

	"gorm.io/gorm"
)

type ExchangeRepo struct {
	db *gorm.DB
}

func NewExchangeRepo(db *gorm.DB) *ExchangeRepo {
	return &ExchangeRepo{db: db}
}

// filtered builds the base exchange query with all filters applied.
// Relationship filters use EXISTS subqueries so joined rows never multiply
// and no DISTINCT is needed, which keeps ORDER BY on joined columns legal.
func (r *ExchangeRepo) filtered(ctx context.Context, f dto.ExchangeFilterParams) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Exchange{}).
		Joins("JOIN items ON items.id = exchanges.item_id")

	if f.Name != "" {
		q = q.Where("items.name ILIKE ?", "%"+f.Name+"%")
	}
	if f.HasKYC != nil {
		q = q.Where("exchanges.has_kyc = ?", *f.HasKYC)
	}
	if f.HasP2P != nil {
		q = q.Where("exchanges.has_p2p = ?", *f.HasP2P)
	}
	if f.MinTotalReviewCount != nil {
		q = q.Where("items.total_review_count >= ?", *f.MinTotalReviewCount)
	}
	if f.MaxTotalReviewCount != nil {
		q = q.Where("items.total_review_count <= ?", *f.MaxTotalReviewCount)
	}
	if f.MinTotalRatingCount != nil {
		q = q.Where("items.total_rating_count >= ?", *f.MinTotalRatingCount)
	}
	if f.MaxTotalRatingCount != nil {
		q = q.Where("items.total_rating_count <= ?", *f.MaxTotalRatingCount)
	}
	if f.CountryID != nil {
		q = q.Where(
			"(exchanges.registration_country_id = ? OR EXISTS (SELECT 1 FROM exchange_availability ea WHERE ea.exchange_id = exchanges.item_id AND ea.country_id = ?))",
			*f.CountryID, *f.CountryID,
		)
	}
	if f.HasLicenseInCountry != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM licenses l WHERE l.exchange_id = exchanges.item_id AND l.jurisdiction_country_id = ?)",
			*f.HasLicenseInCountry,
		)
	}
	if f.SupportsFiatID != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM exchange_fiat_support efs WHERE efs.exchange_id = exchanges.item_id AND efs.fiat_currency_id = ?)",
			*f.SupportsFiatID,
		)
	}
	if f.SupportsLanguageID != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM exchange_languages el WHERE el.exchange_id = exchanges.item_id AND el.language_id = ?)",
			*f.SupportsLanguageID,
		)
	}
	return q
}

// List returns one page of exchanges matching the filters plus the total
// count, which is computed by an independent query.
func (r *ExchangeRepo) List(ctx context.Context, f dto.ExchangeFilterParams, sort dto.ExchangeSortBy, page dto.PageParams) ([]models.Exchange, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count exchanges: %w", err)
	}

	column, ok := dto.ExchangeSortFields[sort.Field]
	if !ok {
		column = "items.name"
	}
	dir := "asc"
	if sort.Direction == dto.SortDesc {
		dir = "desc"
	}

	var list []models.Exchange
	err := r.filtered(ctx, f).
		Preload("Item").
		Preload("RegistrationCountry").
		Order(fmt.Sprintf("%s %s NULLS LAST, exchanges.item_id asc", column, dir)).
		Limit(page.Limit).
		Offset(page.Skip).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list exchanges: %w", err)
	}
	return list, total, nil
}

func (r *ExchangeRepo) preloadAll(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Item").
		Preload("Item.Tags").
		Preload("RegistrationCountry").
		Preload("HeadquartersCountry").
		Preload("AvailableInCountries").
		Preload("Languages").
		Preload("FiatCurrencies").
		Preload("Licenses").
		Preload("Licenses.JurisdictionCountry").
		Preload("SocialLinks")
}

func (r *ExchangeRepo) GetByID(ctx context.Context, id int64) (*models.Exchange, error) {
	var e models.Exchange
	if err := r.preloadAll(r.db.WithContext(ctx)).First(&e, "item_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExchangeRepo) GetBySlug(ctx context.Context, slug string) (*models.Exchange, error) {
	var e models.Exchange
	err := r.preloadAll(r.db.WithContext(ctx)).
		Joins("JOIN items ON items.id = exchanges.item_id").
		Where("items.slug = ?", slug).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts the items row and the exchanges row in one transaction.
// M2M associations present on the model are saved by GORM along the way.
func (r *ExchangeRepo) Create(ctx context.Context, e *models.Exchange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&e.Item).Error; err != nil {
			return fmt.Errorf("create item: %w", err)
		}
		e.ID = e.Item.ID
		if err := tx.Omit("Item", "RegistrationCountry", "HeadquartersCountry").Create(e).Error; err != nil {
			return fmt.Errorf("create exchange: %w", err)
		}
		return nil
	})
}

// Update saves the items row and the exchanges row. Associations are
// replaced separately via ReplaceAssociation.
func (r *ExchangeRepo) Update(ctx context.Context, e *models.Exchange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Reviews").Save(&e.Item).Error; err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		err := tx.Omit("Item", "RegistrationCountry", "HeadquartersCountry",
			"AvailableInCountries", "Languages", "FiatCurrencies", "Licenses", "SocialLinks").
			Save(e).Error
		if err != nil {
			return fmt.Errorf("update exchange: %w", err)
		}
		return nil
	})
}

// ReplaceAssociation swaps the named m2m association to exactly the given
// values. Values only need their primary keys set.
func (r *ExchangeRepo) ReplaceAssociation(ctx context.Context, e *models.Exchange, name string, values any) error {
	if err := r.db.WithContext(ctx).Model(e).Association(name).Replace(values); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

// ReplaceTags swaps the tag set on the underlying item.
func (r *ExchangeRepo) ReplaceTags(ctx context.Context, e *models.Exchange, tags []models.Tag) error {
	if err := r.db.WithContext(ctx).Model(&e.Item).Association("Tags").Replace(&tags); err != nil {
		return fmt.Errorf("replace tags: %w", err)
	}
	return nil
}

// Delete removes the items row; the exchanges row and join rows cascade.
func (r *ExchangeRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Item{}, "id = ? AND item_type = ?", id, models.ItemTypeExchange)
	if result.Error != nil {
		return fmt.Errorf("delete exchange: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertMarketData updates the volatile market fields of an exchange matched
// by slug, creating a minimal listing when the slug is unknown. Used by the
// market sync job.
func (r *ExchangeRepo) UpsertMarketData(ctx context.Context, slug, name string, volume24h *float64, countryID *int64, yearFounded *int16) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Item
		err := tx.Where("slug = ? AND item_type = ?", slug, models.ItemTypeExchange).First(&item).Error
		if err == nil {
			updates := map[string]any{}
			if volume24h != nil {
				updates["trading_volume_24h"] = *volume24h
			}
			if yearFounded != nil {
				updates["year_founded"] = *yearFounded
			}
			if countryID != nil {
				updates["registration_country_id"] = *countryID
			}
			if len(updates) == 0 {
				return nil
			}
			return tx.Model(&models.Exchange{}).Where("item_id = ?", item.ID).Updates(updates).Error
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("lookup exchange %q: %w", slug, err)
		}

		e := models.Exchange{
			Item: models.Item{
				ItemType: models.ItemTypeExchange,
				Name:     name,
				Slug:     slug,
			},
			TradingVolume24h:      volume24h,
			RegistrationCountryID: countryID,
			YearFounded:           yearFounded,
		}
		if err := tx.Create(&e.Item).Error; err != nil {
			return fmt.Errorf("create item %q: %w", slug, err)
		}
		e.ID = e.Item.ID
		if err := tx.Omit("Item", "RegistrationCountry", "HeadquartersCountry").Create(&e).Error; err != nil {
			return fmt.Errorf("create exchange %q: %w", slug, err)
		}
		return nil
	})
}
