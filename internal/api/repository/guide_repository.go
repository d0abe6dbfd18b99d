package repository

import (
	"context"
	"fmt"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"

	"gorm.io/gorm"
)

type GuideRepo struct {
	db *gorm.DB
}

func NewGuideRepo(db *gorm.DB) *GuideRepo {
	return &GuideRepo{db: db}
}

func (r *GuideRepo) List(ctx context.Context, exchangeID *int64, page dto.PageParams) ([]models.GuideItem, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.GuideItem{})
	if exchangeID != nil {
		q = q.Where("exchange_id = ?", *exchangeID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count guides: %w", err)
	}

	var list []models.GuideItem
	err := q.Preload("Creator").
		Order("published_at desc, id desc").
		Limit(page.Limit).
		Offset(page.Skip).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list guides: %w", err)
	}
	return list, total, nil
}

func (r *GuideRepo) GetByID(ctx context.Context, id int64) (*models.GuideItem, error) {
	var guide models.GuideItem
	if err := r.db.WithContext(ctx).Preload("Creator").First(&guide, id).Error; err != nil {
		return nil, err
	}
	return &guide, nil
}

func (r *GuideRepo) Create(ctx context.Context, guide *models.GuideItem) error {
	if err := r.db.WithContext(ctx).Omit("Creator", "Exchange").Create(guide).Error; err != nil {
		return fmt.Errorf("create guide: %w", err)
	}
	return nil
}

func (r *GuideRepo) Update(ctx context.Context, guide *models.GuideItem) error {
	if err := r.db.WithContext(ctx).Omit("Creator", "Exchange").Save(guide).Error; err != nil {
		return fmt.Errorf("update guide: %w", err)
	}
	return nil
}

func (r *GuideRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.GuideItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete guide: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
