package repository

import (
	"context"
	"fmt"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"

	"gorm.io/gorm"
)

type NewsRepo struct {
	db *gorm.DB
}

func NewNewsRepo(db *gorm.DB) *NewsRepo {
	return &NewsRepo{db: db}
}

// List returns one page of news ordered newest first, optionally restricted
// to items linked to the given exchange.
func (r *NewsRepo) List(ctx context.Context, exchangeID *int64, page dto.PageParams) ([]models.NewsItem, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.NewsItem{})
	if exchangeID != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM news_item_exchanges nie WHERE nie.news_item_id = news_items.id AND nie.exchange_id = ?)",
			*exchangeID,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count news: %w", err)
	}

	var list []models.NewsItem
	err := q.Preload("Exchanges").
		Preload("Exchanges.Item").
		Order("published_at desc, id desc").
		Limit(page.Limit).
		Offset(page.Skip).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list news: %w", err)
	}
	return list, total, nil
}

func (r *NewsRepo) GetByID(ctx context.Context, id int64) (*models.NewsItem, error) {
	var item models.NewsItem
	err := r.db.WithContext(ctx).
		Preload("Exchanges").
		Preload("Exchanges.Item").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *NewsRepo) Create(ctx context.Context, item *models.NewsItem) error {
	if err := r.db.WithContext(ctx).Omit("Creator", "Exchanges").Create(item).Error; err != nil {
		return fmt.Errorf("create news item: %w", err)
	}
	return nil
}

func (r *NewsRepo) Update(ctx context.Context, item *models.NewsItem) error {
	if err := r.db.WithContext(ctx).Omit("Creator", "Exchanges").Save(item).Error; err != nil {
		return fmt.Errorf("update news item: %w", err)
	}
	return nil
}

// ReplaceExchanges swaps the linked exchange set to exactly the given ids.
func (r *NewsRepo) ReplaceExchanges(ctx context.Context, item *models.NewsItem, exchangeIDs []int64) error {
	exchanges := make([]models.Exchange, 0, len(exchangeIDs))
	for _, id := range exchangeIDs {
		exchanges = append(exchanges, models.Exchange{ID: id})
	}
	if err := r.db.WithContext(ctx).Model(item).Association("Exchanges").Replace(&exchanges); err != nil {
		return fmt.Errorf("replace news exchanges: %w", err)
	}
	return nil
}

func (r *NewsRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.NewsItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete news item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
