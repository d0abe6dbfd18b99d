package repository

import (
	"context"

	"coindex/internal/api/models"

	"gorm.io/gorm"
)

// ItemRepo reads the polymorphic base rows directly, for endpoints that do
// not care which concrete kind an item is.
type ItemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).Preload("Tags").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepo) GetBySlug(ctx context.Context, slug string) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).Preload("Tags").Where("slug = ?", slug).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Exists reports whether an item with the given id is present.
func (r *ItemRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
