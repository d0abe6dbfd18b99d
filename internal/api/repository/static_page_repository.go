package repository

import (
	"context"
	"fmt"

	"coindex/internal/api/models"

	"gorm.io/gorm"
)

type StaticPageRepo struct {
	db *gorm.DB
}

func NewStaticPageRepo(db *gorm.DB) *StaticPageRepo {
	return &StaticPageRepo{db: db}
}

func (r *StaticPageRepo) GetAll(ctx context.Context) ([]models.StaticPage, error) {
	var pages []models.StaticPage
	if err := r.db.WithContext(ctx).Order("slug asc").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("list static pages: %w", err)
	}
	return pages, nil
}

func (r *StaticPageRepo) GetBySlug(ctx context.Context, slug string) (*models.StaticPage, error) {
	var page models.StaticPage
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *StaticPageRepo) Create(ctx context.Context, page *models.StaticPage) error {
	if err := r.db.WithContext(ctx).Omit("LastUpdatedBy").Create(page).Error; err != nil {
		return fmt.Errorf("create static page: %w", err)
	}
	return nil
}

func (r *StaticPageRepo) Update(ctx context.Context, page *models.StaticPage) error {
	if err := r.db.WithContext(ctx).Omit("LastUpdatedBy").Save(page).Error; err != nil {
		return fmt.Errorf("update static page: %w", err)
	}
	return nil
}

func (r *StaticPageRepo) Delete(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.StaticPage{})
	if result.Error != nil {
		return fmt.Errorf("delete static page: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
