package repository

import (
	"context"
	"fmt"

	"coindex/internal/api/dto"
	"coindex/internal/api/models"

	"gorm.io/gorm"
)

type BookRepo struct {
	db *gorm.DB
}

func NewBookRepo(db *gorm.DB) *BookRepo {
	return &BookRepo{db: db}
}

func (r *BookRepo) filtered(ctx context.Context, f dto.BookFilterParams) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Book{}).
		Joins("JOIN items ON items.id = books.item_id")

	if f.Name != "" {
		q = q.Where("items.name ILIKE ?", "%"+f.Name+"%")
	}
	if f.Author != "" {
		q = q.Where("COALESCE(books.author, '') ILIKE ?", "%"+f.Author+"%")
	}
	if f.YearFrom != nil {
		q = q.Where("books.year >= ?", *f.YearFrom)
	}
	if f.YearTo != nil {
		q = q.Where("books.year <= ?", *f.YearTo)
	}
	if f.MinTotalReviewCount != nil {
		q = q.Where("items.total_review_count >= ?", *f.MinTotalReviewCount)
	}
	if f.TagID != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM item_tags it WHERE it.item_id = books.item_id AND it.tag_id = ?)",
			*f.TagID,
		)
	}
	return q
}

func (r *BookRepo) List(ctx context.Context, f dto.BookFilterParams, sort dto.BookSortBy, page dto.PageParams) ([]models.Book, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	column, ok := dto.BookSortFields[sort.Field]
	if !ok {
		column = "items.name"
	}
	dir := "asc"
	if sort.Direction == dto.SortDesc {
		dir = "desc"
	}

	var list []models.Book
	err := r.filtered(ctx, f).
		Preload("Item").
		Order(fmt.Sprintf("%s %s NULLS LAST, books.item_id asc", column, dir)).
		Limit(page.Limit).
		Offset(page.Skip).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	return list, total, nil
}

func (r *BookRepo) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Item.Tags").
		First(&b, "item_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookRepo) GetBySlug(ctx context.Context, slug string) (*models.Book, error) {
	var b models.Book
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Item.Tags").
		Joins("JOIN items ON items.id = books.item_id").
		Where("items.slug = ?", slug).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookRepo) Create(ctx context.Context, b *models.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&b.Item).Error; err != nil {
			return fmt.Errorf("create item: %w", err)
		}
		b.ID = b.Item.ID
		if err := tx.Omit("Item").Create(b).Error; err != nil {
			return fmt.Errorf("create book: %w", err)
		}
		return nil
	})
}

func (r *BookRepo) Update(ctx context.Context, b *models.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Reviews").Save(&b.Item).Error; err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		if err := tx.Omit("Item").Save(b).Error; err != nil {
			return fmt.Errorf("update book: %w", err)
		}
		return nil
	})
}

func (r *BookRepo) ReplaceTags(ctx context.Context, b *models.Book, tags []models.Tag) error {
	if err := r.db.WithContext(ctx).Model(&b.Item).Association("Tags").Replace(&tags); err != nil {
		return fmt.Errorf("replace tags: %w", err)
	}
	return nil
}

func (r *BookRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Item{}, "id = ? AND item_type = ?", id, models.ItemTypeBook)
	if result.Error != nil {
		return fmt.Errorf("delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
